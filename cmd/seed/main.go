package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"wastewise/internal/auth"
	"wastewise/internal/config"
	"wastewise/internal/db"
	apperrors "wastewise/internal/errors"
	"wastewise/internal/repository"
	"wastewise/internal/service"
)

// SeedUserData is one staff account in the seed document.
type SeedUserData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func main() {
	file := flag.String("file", "", "path to a JSON array of users")
	url := flag.String("url", "", "URL serving a JSON array of users")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	_ = godotenv.Load()

	if (*file == "") == (*url == "") {
		logger.Error("exactly one of -file or -url is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, false); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var users []SeedUserData
	if *file != "" {
		users, err = readUsersFromFile(*file)
	} else {
		users, err = fetchUsersFromAPI(*url)
	}
	if err != nil {
		logger.Error("failed to load seed users", "error", err)
		os.Exit(1)
	}
	logger.Info("loaded seed users", "count", len(users))

	tokens, err := auth.NewTokenService(cfg.JWTSecret, auth.WithIssuer(cfg.JWTIssuer))
	if err != nil {
		logger.Error("token service", "error", err)
		os.Exit(1)
	}
	activity := service.NewActivityLogger(repository.NewActivityLogRepository(gormDB))
	authService := service.NewAuthService(
		repository.NewUserRepository(gormDB),
		tokens,
		auth.NewBcryptHasher(auth.DefaultBcryptCost),
		activity,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	created, skipped, err := seedUsers(ctx, authService, users)
	activity.Close()
	if err != nil {
		logger.Error("seed failed", "created", created, "skipped", skipped, "error", err)
		os.Exit(1)
	}
	logger.Info("seed completed", "created", created, "skipped", skipped)
}

func readUsersFromFile(path string) ([]SeedUserData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return decodeUsers(f)
}

// fetchUsersFromAPI fetches the seed document over HTTP.
func fetchUsersFromAPI(url string) ([]SeedUserData, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code: %d", resp.StatusCode)
	}
	return decodeUsers(resp.Body)
}

func decodeUsers(r io.Reader) ([]SeedUserData, error) {
	var users []SeedUserData
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return users, nil
}

// seedUsers registers each user; existing emails and invalid rows are skipped.
func seedUsers(ctx context.Context, svc service.AuthService, users []SeedUserData) (created int, skipped int, err error) {
	for _, u := range users {
		_, err := svc.Signup(ctx, service.SignupInput{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			Role:     u.Role,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrDuplicateEmail), errors.Is(err, apperrors.ErrValidation):
			slog.Warn("skipping seed user", "email", u.Email, "error", err)
			skipped++
		default:
			return created, skipped, fmt.Errorf("error creating user %s: %w", u.Email, err)
		}
	}
	return created, skipped, nil
}
