package model

import "time"

// Siswa represents one student record.
type Siswa struct {
	ID        int       `json:"id"`
	Nama      string    `json:"nama"`
	JK        string    `json:"jk"`
	NISN      string    `json:"nisn"`
	NIK       string    `json:"nik"`
	NoKK      string    `json:"nokk"`
	Tingkat   string    `json:"tingkat"`
	Rombel    string    `json:"rombel"`
	TglMasuk  time.Time `json:"tgl_masuk"`
	Terdaftar string    `json:"terdaftar"`
	TTL       string    `json:"ttl"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSiswaRequest is the add-student form payload. Every field is
// required; tgl_masuk arrives as an HTML date input (YYYY-MM-DD) and is
// parsed as UTC midnight so the enrollment ceiling compares the same
// regardless of server timezone.
type CreateSiswaRequest struct {
	Nama      string    `form:"nama" binding:"required"`
	JK        string    `form:"jk" binding:"required"`
	NISN      string    `form:"nisn" binding:"required"`
	NIK       string    `form:"nik" binding:"required"`
	NoKK      string    `form:"nokk" binding:"required"`
	Tingkat   string    `form:"tingkat" binding:"required"`
	Rombel    string    `form:"rombel" binding:"required"`
	TglMasuk  time.Time `form:"tgl_masuk" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	Terdaftar string    `form:"terdaftar" binding:"required"`
	TTL       string    `form:"ttl" binding:"required"`
}

// Siswa converts the form payload into a record.
func (r *CreateSiswaRequest) Siswa() *Siswa {
	return &Siswa{
		Nama:      r.Nama,
		JK:        r.JK,
		NISN:      r.NISN,
		NIK:       r.NIK,
		NoKK:      r.NoKK,
		Tingkat:   r.Tingkat,
		Rombel:    r.Rombel,
		TglMasuk:  r.TglMasuk,
		Terdaftar: r.Terdaftar,
		TTL:       r.TTL,
	}
}

// UpdateSiswaRequest is the edit form payload. NISN selects the record;
// only the four listed fields are mutable after creation.
type UpdateSiswaRequest struct {
	NISN      string    `form:"nisn" binding:"required"`
	Tingkat   string    `form:"tingkat" binding:"required"`
	Rombel    string    `form:"rombel" binding:"required"`
	TglMasuk  time.Time `form:"tgl_masuk" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	Terdaftar string    `form:"terdaftar" binding:"required"`
}

// DeleteSiswaRequest carries the NISN of the record to delete.
type DeleteSiswaRequest struct {
	NISN string `form:"nisn" binding:"required"`
}
