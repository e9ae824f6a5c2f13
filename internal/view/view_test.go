package view

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dapodiksmk/siswa-web/internal/model"
)

const templateDir = "../../web/templates"

func init() {
	gin.SetMode(gin.TestMode)
}

func renderPage(t *testing.T, page string, data gin.H) *httptest.ResponseRecorder {
	t.Helper()
	renderer, err := NewRenderer(templateDir)
	require.NoError(t, err)

	r := gin.New()
	r.HTMLRender = renderer
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, page, data)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func TestRendererMissingDir(t *testing.T) {
	_, err := NewRenderer(t.TempDir())
	assert.Error(t, err)
}

func TestRenderLoginWithFlashes(t *testing.T) {
	w := renderPage(t, "login", gin.H{
		"title": "Login",
		"msg":   []string{"Silakan login terlebih dahulu"},
	})

	body := w.Body.String()
	assert.Contains(t, body, "<title>Login</title>")
	assert.Contains(t, body, "Silakan login terlebih dahulu")
}

func TestRenderSiswaListing(t *testing.T) {
	w := renderPage(t, "siswa", gin.H{
		"title": "Data | Siswa",
		"siswas": []model.Siswa{{
			Nama:      "Budi Santoso",
			JK:        "Laki-laki",
			NISN:      "0012345678",
			NIK:       "3578012345678901",
			NoKK:      "3578019876543210",
			Tingkat:   "X",
			Rombel:    "X-1",
			TglMasuk:  time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
			Terdaftar: "Ya",
			TTL:       "Surabaya, 01-01-2009",
		}},
		"msg": []string{"Siswa Berhasil Didaftarkan!"},
	})

	body := w.Body.String()
	assert.Contains(t, body, "Budi Santoso")
	assert.Contains(t, body, "15-07-2024")
	assert.Contains(t, body, "/siswa/edit/0012345678")
	assert.Contains(t, body, "Siswa Berhasil Didaftarkan!")
}

func TestRenderEditFormPrefilled(t *testing.T) {
	w := renderPage(t, "edit-siswa", gin.H{
		"title": "Form Ubah Data Siswa",
		"siswa": &model.Siswa{
			NISN:     "0012345678",
			Tingkat:  "XI",
			Rombel:   "XI-2",
			TglMasuk: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		},
	})

	body := w.Body.String()
	assert.Contains(t, body, `value="0012345678"`)
	assert.Contains(t, body, `value="2024-07-15"`)
	assert.Contains(t, body, `name="_method" value="PUT"`)
}

func TestRenderEditFormWithoutRecord(t *testing.T) {
	// A missing record renders the form empty, not an error page.
	var missing *model.Siswa
	w := renderPage(t, "edit-siswa", gin.H{
		"title": "Form Ubah Data Siswa",
		"siswa": missing,
	})

	assert.Contains(t, w.Body.String(), `id="nisn" name="nisn" readonly value=""`)
}
