package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the operator account if it does not exist yet.
// An existing account keeps its password.
func SeedAdmin(ctx context.Context, logger *slog.Logger, store *SQLiteStore, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	created, err := store.EnsureAdmin(ctx, email, string(hash))
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	if created {
		logger.Info("admin account created", "email", email)
	}
	return nil
}
