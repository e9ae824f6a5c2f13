package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/dapodiksmk/siswa-web/internal/config"
)

// migrate applies the schema for the siswa database (users and siswa
// tables with their unique indexes).
func main() {
	var dir string
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the migration files")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+dir, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Migrate init failed: %v", err)
	}

	if flag.NArg() < 1 {
		usage()
		return
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Up failed: %v", err)
		}
		fmt.Println("Schema is up to date")
	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Down failed: %v", err)
		}
		fmt.Println("Schema rolled back")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Version failed: %v", err)
		}
		fmt.Printf("Schema version %d (dirty: %t)\n", version, dirty)
	case "force":
		if flag.NArg() < 2 {
			log.Fatal("force requires a version argument")
		}
		v, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatalf("Invalid version %q: %v", flag.Arg(1), err)
		}
		if err := m.Force(v); err != nil {
			log.Fatalf("Force failed: %v", err)
		}
		fmt.Printf("Schema version forced to %d\n", v)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: migrate [-dir <path>] <up|down|version|force <version>>")
	flag.PrintDefaults()
}
