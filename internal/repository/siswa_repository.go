package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dapodiksmk/siswa-web/internal/model"
)

// Duplicate-key errors surfaced from the unique indexes on siswa.
// The indexes are the authoritative uniqueness guard; the pre-insert
// checks in the service only exist to produce friendly form errors.
var (
	ErrDuplicateNISN = errors.New("siswa with this NISN already exists")
	ErrDuplicateNIK  = errors.New("siswa with this NIK already exists")
)

const siswaColumns = `id, nama, jk, nisn, nik, nokk, tingkat, rombel, tgl_masuk, terdaftar, ttl, created_at, updated_at`

// SiswaRepository handles student record data access.
type SiswaRepository struct {
	pool *pgxpool.Pool
}

// NewSiswaRepository creates a new SiswaRepository.
func NewSiswaRepository(pool *pgxpool.Pool) *SiswaRepository {
	return &SiswaRepository{pool: pool}
}

func scanSiswa(row pgx.Row) (*model.Siswa, error) {
	s := &model.Siswa{}
	err := row.Scan(&s.ID, &s.Nama, &s.JK, &s.NISN, &s.NIK, &s.NoKK,
		&s.Tingkat, &s.Rombel, &s.TglMasuk, &s.Terdaftar, &s.TTL,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByNISN retrieves a student by their unique NISN.
func (r *SiswaRepository) GetByNISN(ctx context.Context, nisn string) (*model.Siswa, error) {
	return scanSiswa(r.pool.QueryRow(ctx,
		`SELECT `+siswaColumns+` FROM siswa WHERE nisn = $1`, nisn))
}

// ExistsByNISN reports whether any record already carries the given NISN.
func (r *SiswaRepository) ExistsByNISN(ctx context.Context, nisn string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM siswa WHERE nisn = $1)`, nisn,
	).Scan(&exists)
	return exists, err
}

// ExistsByNIK reports whether any record already carries the given NIK.
func (r *SiswaRepository) ExistsByNIK(ctx context.Context, nik string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM siswa WHERE nik = $1)`, nik,
	).Scan(&exists)
	return exists, err
}

// ListAll retrieves the entire collection. The listing page has no
// pagination or filtering.
func (r *SiswaRepository) ListAll(ctx context.Context) ([]model.Siswa, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+siswaColumns+` FROM siswa ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var siswas []model.Siswa
	for rows.Next() {
		s, err := scanSiswa(rows)
		if err != nil {
			return nil, err
		}
		siswas = append(siswas, *s)
	}
	return siswas, rows.Err()
}

// Create inserts a new student record.
func (r *SiswaRepository) Create(ctx context.Context, s *model.Siswa) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO siswa (nama, jk, nisn, nik, nokk, tingkat, rombel, tgl_masuk, terdaftar, ttl)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		s.Nama, s.JK, s.NISN, s.NIK, s.NoKK, s.Tingkat, s.Rombel, s.TglMasuk, s.Terdaftar, s.TTL,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapDuplicate(err)
	}
	return nil
}

// CreateMany inserts several records in one batch round trip.
func (r *SiswaRepository) CreateMany(ctx context.Context, siswas []model.Siswa) error {
	if len(siswas) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range siswas {
		batch.Queue(
			`INSERT INTO siswa (nama, jk, nisn, nik, nokk, tingkat, rombel, tgl_masuk, terdaftar, ttl)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			s.Nama, s.JK, s.NISN, s.NIK, s.NoKK, s.Tingkat, s.Rombel, s.TglMasuk, s.Terdaftar, s.TTL,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range siswas {
		if _, err := results.Exec(); err != nil {
			return mapDuplicate(err)
		}
	}
	return nil
}

// UpdateByNISN sets the four mutable fields on the record matched by NISN.
// Returns the number of matched rows; zero is not an error.
func (r *SiswaRepository) UpdateByNISN(ctx context.Context, req *model.UpdateSiswaRequest) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE siswa
		 SET tingkat = $1, rombel = $2, tgl_masuk = $3, terdaftar = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE nisn = $5`,
		req.Tingkat, req.Rombel, req.TglMasuk, req.Terdaftar, req.NISN,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteByNISN removes at most one record matched by NISN. Deleting a
// missing NISN is a no-op, not an error.
func (r *SiswaRepository) DeleteByNISN(ctx context.Context, nisn string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM siswa WHERE nisn = $1`, nisn)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// mapDuplicate translates unique-violation errors (23505) into the typed
// duplicate errors, keyed by the violated index name.
func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "siswa_nik_key":
			return ErrDuplicateNIK
		default:
			return ErrDuplicateNISN
		}
	}
	return err
}
