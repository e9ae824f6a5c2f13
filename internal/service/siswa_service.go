package service

import (
	"context"

	"github.com/dapodiksmk/siswa-web/internal/model"
	"github.com/dapodiksmk/siswa-web/internal/repository"
)

// SiswaService handles student record business logic.
type SiswaService struct {
	repo      *repository.SiswaRepository
	validator *SiswaValidator
}

// NewSiswaService creates a new SiswaService.
func NewSiswaService(repo *repository.SiswaRepository) *SiswaService {
	return &SiswaService{
		repo:      repo,
		validator: NewSiswaValidator(repo.ExistsByNISN, repo.ExistsByNIK),
	}
}

// Validate runs the pre-insert validation pipeline over a candidate.
func (s *SiswaService) Validate(ctx context.Context, siswa *model.Siswa) ([]FieldError, error) {
	return s.validator.Validate(ctx, siswa)
}

// GetByNISN retrieves one student by exact NISN match.
func (s *SiswaService) GetByNISN(ctx context.Context, nisn string) (*model.Siswa, error) {
	return s.repo.GetByNISN(ctx, nisn)
}

// ListAll retrieves the entire collection.
func (s *SiswaService) ListAll(ctx context.Context) ([]model.Siswa, error) {
	siswas, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if siswas == nil {
		siswas = []model.Siswa{}
	}
	return siswas, nil
}

// Create inserts one record. The unique indexes back up the validation
// pipeline: a duplicate that slipped past the pre-checks comes back as
// repository.ErrDuplicateNISN / ErrDuplicateNIK.
func (s *SiswaService) Create(ctx context.Context, siswa *model.Siswa) error {
	return s.repo.Create(ctx, siswa)
}

// CreateMany inserts several records in one batch.
func (s *SiswaService) CreateMany(ctx context.Context, siswas []model.Siswa) error {
	return s.repo.CreateMany(ctx, siswas)
}

// Update applies the four mutable fields to the record matched by NISN.
// Matching zero rows is indistinguishable from success to the caller of
// the web flow; the count is returned for logging.
func (s *SiswaService) Update(ctx context.Context, req *model.UpdateSiswaRequest) (int64, error) {
	return s.repo.UpdateByNISN(ctx, req)
}

// Delete removes at most one record by NISN. Idempotent: deleting a
// missing NISN succeeds with a zero count.
func (s *SiswaService) Delete(ctx context.Context, nisn string) (int64, error) {
	return s.repo.DeleteByNISN(ctx, nisn)
}
