package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dapodiksmk/siswa-web/internal/model"
	"github.com/dapodiksmk/siswa-web/internal/repository"
)

func existsAlways(context.Context, string) (bool, error) { return true, nil }
func existsNever(context.Context, string) (bool, error)  { return false, nil }

func candidate(tglMasuk time.Time) *model.Siswa {
	return &model.Siswa{
		Nama:      "Budi Santoso",
		JK:        "Laki-laki",
		NISN:      "0012345678",
		NIK:       "3578012345678901",
		NoKK:      "3578019876543210",
		Tingkat:   "X",
		Rombel:    "X-1",
		TglMasuk:  tglMasuk,
		Terdaftar: "Ya",
		TTL:       "Surabaya, 01-01-2009",
	}
}

func TestValidatePasses(t *testing.T) {
	v := NewSiswaValidator(existsNever, existsNever)

	errs, err := v.Validate(context.Background(), candidate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateDuplicateNISN(t *testing.T) {
	v := NewSiswaValidator(existsAlways, existsNever)

	errs, err := v.Validate(context.Background(), candidate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "nisn", errs[0].Field)
	assert.Equal(t, MsgDuplicateNISN, errs[0].Message)
}

func TestValidateDuplicateNIK(t *testing.T) {
	v := NewSiswaValidator(existsNever, existsAlways)

	errs, err := v.Validate(context.Background(), candidate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "nik", errs[0].Field)
	assert.Equal(t, MsgDuplicateNIK, errs[0].Message)
}

func TestValidateEnrollmentCutoff(t *testing.T) {
	v := NewSiswaValidator(existsNever, existsNever)

	// The cutoff day itself is still accepted.
	errs, err := v.Validate(context.Background(), candidate(EnrollmentCutoff))
	require.NoError(t, err)
	assert.Empty(t, errs)

	// One day past is rejected.
	errs, err = v.Validate(context.Background(), candidate(EnrollmentCutoff.AddDate(0, 0, 1)))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "tgl_masuk", errs[0].Field)
	assert.Equal(t, MsgLateEnrollment, errs[0].Message)
}

// bindAddForm runs the add form through Gin's form binding the way the
// create handler does.
func bindAddForm(t *testing.T, tglMasuk string) *model.CreateSiswaRequest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	form := url.Values{
		"nama":      {"Budi Santoso"},
		"jk":        {"Laki-laki"},
		"nisn":      {"0012345678"},
		"nik":       {"3578012345678901"},
		"nokk":      {"3578019876543210"},
		"tingkat":   {"X"},
		"rombel":    {"X-1"},
		"tgl_masuk": {tglMasuk},
		"terdaftar": {"Ya"},
		"ttl":       {"Surabaya, 01-01-2009"},
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/siswa", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var req model.CreateSiswaRequest
	require.NoError(t, c.ShouldBind(&req))
	return &req
}

// The HTML date input carries no zone. The bound value must land on UTC
// midnight so the ceiling comparison does not shift with the server's
// local timezone.
func TestEnrollmentCutoffBoundaryFromForm(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })

	v := NewSiswaValidator(existsNever, existsNever)

	req := bindAddForm(t, "2024-12-06")
	assert.True(t, req.TglMasuk.Equal(EnrollmentCutoff), "bound %v, want %v", req.TglMasuk, EnrollmentCutoff)
	errs, err := v.Validate(context.Background(), req.Siswa())
	require.NoError(t, err)
	assert.Empty(t, errs, "cutoff day submitted through the form must be accepted")

	req = bindAddForm(t, "2024-12-07")
	errs, err = v.Validate(context.Background(), req.Siswa())
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, MsgLateEnrollment, errs[0].Message)
}

func TestValidateCollectsAllFailuresInOrder(t *testing.T) {
	v := NewSiswaValidator(existsAlways, existsAlways)

	errs, err := v.Validate(context.Background(), candidate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Len(t, errs, 3)
	assert.Equal(t, "nisn", errs[0].Field)
	assert.Equal(t, "nik", errs[1].Field)
	assert.Equal(t, "tgl_masuk", errs[2].Field)
}

func TestValidateProbeErrorPropagates(t *testing.T) {
	probeErr := errors.New("store unavailable")
	failing := func(context.Context, string) (bool, error) { return false, probeErr }
	v := NewSiswaValidator(failing, existsNever)

	errs, err := v.Validate(context.Background(), candidate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.ErrorIs(t, err, probeErr)
	assert.Nil(t, errs)
}

func TestDuplicateFieldError(t *testing.T) {
	fe, ok := DuplicateFieldError(repository.ErrDuplicateNISN)
	require.True(t, ok)
	assert.Equal(t, MsgDuplicateNISN, fe.Message)

	fe, ok = DuplicateFieldError(repository.ErrDuplicateNIK)
	require.True(t, ok)
	assert.Equal(t, MsgDuplicateNIK, fe.Message)

	_, ok = DuplicateFieldError(errors.New("unrelated"))
	assert.False(t, ok)
}
