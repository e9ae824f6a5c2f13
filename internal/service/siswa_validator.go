package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dapodiksmk/siswa-web/internal/model"
	"github.com/dapodiksmk/siswa-web/internal/repository"
)

// EnrollmentCutoff is the last accepted enrollment date. Submitting a
// later tgl_masuk rejects the record.
var EnrollmentCutoff = time.Date(2024, time.December, 6, 0, 0, 0, 0, time.UTC)

// Field-level validation messages, surfaced on the re-rendered form.
const (
	MsgDuplicateNISN  = "NISN sudah terdaftar!"
	MsgDuplicateNIK   = "NIK sudah terdaftar!"
	MsgLateEnrollment = "Melewati batas tgl pendaftaran!"
)

// FieldError is a typed validation failure for one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ExistsFunc probes the store for an existing record carrying the value.
type ExistsFunc func(ctx context.Context, value string) (bool, error)

// SiswaValidator runs the pre-insert checks over a candidate record.
// The two uniqueness probes are independent store round trips and run
// concurrently; the date ceiling is a pure comparison. Errors come back
// in a fixed order (nisn, nik, tgl_masuk) regardless of completion order.
type SiswaValidator struct {
	nisnExists ExistsFunc
	nikExists  ExistsFunc
}

// NewSiswaValidator creates a validator over the given lookup functions.
func NewSiswaValidator(nisnExists, nikExists ExistsFunc) *SiswaValidator {
	return &SiswaValidator{nisnExists: nisnExists, nikExists: nikExists}
}

// Validate returns the field errors for the candidate, or a non-nil error
// if a store probe failed. An empty slice means the record may be inserted.
func (v *SiswaValidator) Validate(ctx context.Context, s *model.Siswa) ([]FieldError, error) {
	var nisnDup, nikDup bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dup, err := v.nisnExists(gctx, s.NISN)
		nisnDup = dup
		return err
	})
	g.Go(func() error {
		dup, err := v.nikExists(gctx, s.NIK)
		nikDup = dup
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var errs []FieldError
	if nisnDup {
		errs = append(errs, FieldError{Field: "nisn", Message: MsgDuplicateNISN})
	}
	if nikDup {
		errs = append(errs, FieldError{Field: "nik", Message: MsgDuplicateNIK})
	}
	if s.TglMasuk.After(EnrollmentCutoff) {
		errs = append(errs, FieldError{Field: "tgl_masuk", Message: MsgLateEnrollment})
	}
	return errs, nil
}

// DuplicateFieldError translates a write-time unique violation into the
// same field error the pre-insert checks produce. The second return is
// false for any other error.
func DuplicateFieldError(err error) (FieldError, bool) {
	switch {
	case errors.Is(err, repository.ErrDuplicateNISN):
		return FieldError{Field: "nisn", Message: MsgDuplicateNISN}, true
	case errors.Is(err, repository.ErrDuplicateNIK):
		return FieldError{Field: "nik", Message: MsgDuplicateNIK}, true
	}
	return FieldError{}, false
}
