package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dapodiksmk/siswa-web/internal/config"
	"github.com/dapodiksmk/siswa-web/internal/database"
	"github.com/dapodiksmk/siswa-web/internal/logger"
	"github.com/dapodiksmk/siswa-web/internal/model"
	"github.com/dapodiksmk/siswa-web/internal/repository"
)

// seed-siswa bulk-inserts sample student records through the batch path.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	siswaRepo := repository.NewSiswaRepository(pool)

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
		"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
	}

	enrolled := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

	fmt.Printf("=== Seeding %d Students ===\n", len(names))

	siswas := make([]model.Siswa, 0, len(names))
	for i, name := range names {
		jk := "Laki-laki"
		if i%2 != 0 {
			jk = "Perempuan"
		}

		siswas = append(siswas, model.Siswa{
			Nama:      name,
			JK:        jk,
			NISN:      fmt.Sprintf("00%08d", i+1),
			NIK:       fmt.Sprintf("35%014d", i+1),
			NoKK:      fmt.Sprintf("35%014d", 5000+i),
			Tingkat:   "X",
			Rombel:    fmt.Sprintf("X-%d", i%3+1),
			TglMasuk:  enrolled,
			Terdaftar: "Ya",
			TTL:       fmt.Sprintf("Surabaya, %02d-01-2009", i%28+1),
		})
	}

	if err := siswaRepo.CreateMany(ctx, siswas); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	fmt.Printf("Seeded %d students successfully\n", len(siswas))
}
