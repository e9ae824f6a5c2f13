package handler

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/dapodiksmk/siswa-web/internal/middleware"
	"github.com/dapodiksmk/siswa-web/internal/model"
	"github.com/dapodiksmk/siswa-web/internal/service"
	"github.com/dapodiksmk/siswa-web/internal/validator"
)

// Success flash messages for the student flows.
const (
	MsgSiswaCreated = "Siswa Berhasil Didaftarkan!"
	MsgSiswaUpdated = "Data siswa berhasil diubah!"
	MsgSiswaDeleted = "Data siswa berhasil dihapus!"
)

// SiswaHandler handles the student listing, creation, edit and deletion flows.
type SiswaHandler struct {
	siswaService *service.SiswaService
	log          zerolog.Logger
}

// NewSiswaHandler creates a new SiswaHandler.
func NewSiswaHandler(siswaService *service.SiswaService, log zerolog.Logger) *SiswaHandler {
	return &SiswaHandler{siswaService: siswaService, log: log}
}

// List godoc
// GET /siswa
// Renders the entire collection. No pagination, no filtering.
func (h *SiswaHandler) List(c *gin.Context) {
	sess := middleware.GetSession(c)

	siswas, err := h.siswaService.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Siswa listing failed")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.HTML(http.StatusOK, "siswa", gin.H{
		"title":  "Data | Siswa",
		"siswas": siswas,
		"msg":    sess.PopFlashes(),
	})
}

// ShowAdd godoc
// GET /siswa/add
// Renders the empty add form.
func (h *SiswaHandler) ShowAdd(c *gin.Context) {
	sess := middleware.GetSession(c)

	c.HTML(http.StatusOK, "add-siswa", gin.H{
		"title": "Tambah Data Siswa",
		"msg":   sess.PopFlashes(),
	})
}

// Create godoc
// POST /siswa
// Runs the validation pipeline before inserting. Any failure re-renders
// the form with field errors and persists nothing. The unique indexes
// catch duplicates that race past the pre-checks; those surface as the
// same field errors.
func (h *SiswaHandler) Create(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req model.CreateSiswaRequest
	if fields := validator.Bind(c, &req); fields != nil {
		h.renderAddForm(c, fieldErrorList(fields))
		return
	}

	siswa := req.Siswa()

	errs, err := h.siswaService.Validate(c.Request.Context(), siswa)
	if err != nil {
		h.log.Error().Err(err).Msg("Siswa validation failed")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if len(errs) == 0 {
		if createErr := h.siswaService.Create(c.Request.Context(), siswa); createErr != nil {
			dup, ok := service.DuplicateFieldError(createErr)
			if !ok {
				h.log.Error().Err(createErr).Msg("Siswa insert failed")
				c.String(http.StatusInternalServerError, "Internal Server Error")
				return
			}
			errs = append(errs, dup)
		}
	}

	if len(errs) > 0 {
		h.renderAddForm(c, errs)
		return
	}

	sess.AddFlash(MsgSiswaCreated)
	c.Redirect(http.StatusFound, "/siswa")
}

func (h *SiswaHandler) renderAddForm(c *gin.Context, errs []service.FieldError) {
	c.HTML(http.StatusOK, "add-siswa", gin.H{
		"title":  "Form Tambah Data Siswa",
		"errors": errs,
	})
}

// ShowEdit godoc
// GET /siswa/edit/:nisn
// Renders the edit form pre-filled. A missing record renders the form
// empty rather than raising a not-found page.
func (h *SiswaHandler) ShowEdit(c *gin.Context) {
	siswa, err := h.siswaService.GetByNISN(c.Request.Context(), c.Param("nisn"))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		h.log.Error().Err(err).Msg("Siswa lookup failed")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.HTML(http.StatusOK, "edit-siswa", gin.H{
		"title": "Form Ubah Data Siswa",
		"siswa": siswa,
	})
}

// Update godoc
// PUT /siswa
// Applies exactly the four mutable fields to the record matched by NISN.
// A match count of zero still redirects with the success flash.
func (h *SiswaHandler) Update(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req model.UpdateSiswaRequest
	if fields := validator.Bind(c, &req); fields != nil {
		c.HTML(http.StatusOK, "edit-siswa", gin.H{
			"title":  "Form Ubah Data Siswa",
			"errors": fieldErrorList(fields),
			"siswa":  siswaFromForm(c),
		})
		return
	}

	matched, err := h.siswaService.Update(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Siswa update failed")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if matched == 0 {
		h.log.Debug().Str("nisn", req.NISN).Msg("Update matched no record")
	}

	sess.AddFlash(MsgSiswaUpdated)
	c.Redirect(http.StatusFound, "/siswa")
}

// Delete godoc
// DELETE /siswa
// Deletes at most one record by NISN from the request body. Deleting a
// missing NISN still flashes success.
func (h *SiswaHandler) Delete(c *gin.Context) {
	sess := middleware.GetSession(c)

	deleted, err := h.siswaService.Delete(c.Request.Context(), c.PostForm("nisn"))
	if err != nil {
		h.log.Error().Err(err).Msg("Siswa delete failed")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if deleted == 0 {
		h.log.Debug().Str("nisn", c.PostForm("nisn")).Msg("Delete matched no record")
	}

	sess.AddFlash(MsgSiswaDeleted)
	c.Redirect(http.StatusFound, "/siswa")
}

// fieldErrorList flattens a translated binding error map into the typed
// list the form templates iterate, in field-name order.
func fieldErrorList(fields map[string]string) []service.FieldError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]service.FieldError, 0, len(names))
	for _, name := range names {
		errs = append(errs, service.FieldError{Field: name, Message: fields[name]})
	}
	return errs
}

// siswaFromForm rebuilds a record from raw form values so a failed edit
// re-renders with whatever the user submitted.
func siswaFromForm(c *gin.Context) *model.Siswa {
	tgl, _ := time.Parse("2006-01-02", c.PostForm("tgl_masuk"))
	return &model.Siswa{
		NISN:      c.PostForm("nisn"),
		Tingkat:   c.PostForm("tingkat"),
		Rombel:    c.PostForm("rombel"),
		TglMasuk:  tgl,
		Terdaftar: c.PostForm("terdaftar"),
	}
}
