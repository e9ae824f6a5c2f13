package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dapodiksmk/siswa-web/internal/config"
	"github.com/dapodiksmk/siswa-web/internal/database"
	"github.com/dapodiksmk/siswa-web/internal/logger"
	"github.com/dapodiksmk/siswa-web/internal/model"
	"github.com/dapodiksmk/siswa-web/internal/repository"
)

// create-user provisions a login account. There is no registration route;
// this is the only way accounts come into existence.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Login User ===")

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if password == "" {
		fmt.Println("Error: Password is required")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	// Stored as plaintext: login compares with direct equality against
	// the legacy dataset.
	user := &model.User{
		Username: username,
		Password: password,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	fmt.Printf("\nSuccess! User '%s' created with ID: %d\n", user.Username, user.ID)
}
