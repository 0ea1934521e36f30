// Command useradd provisions a user account directly in the configured store.
//
//	useradd -name alice                  # prompts for the password
//	COMPLAINTS_PASSWORD=... useradd -name alice
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
	"github.com/complaintdesk/complaints-api/internal/core/service"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/config"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/db"
	"github.com/complaintdesk/complaints-api/pkg/logger"
)

const passwordEnv = "COMPLAINTS_PASSWORD"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "useradd:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	name := fs.String("name", "", "user name (required)")
	password := fs.String("password", "", "password; falls back to $"+passwordEnv+" or a prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*name) == "" {
		return errors.New("-name is required")
	}

	pw, err := resolvePassword(*password)
	if err != nil {
		return err
	}

	cfg, err := config.LoadForTools(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	store, err := db.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	auth := service.NewAuthService(store.Users(), service.NewBcryptHasher(cfg.Auth.BcryptCost), nil, log)
	user, err := auth.Register(ctx, *name, pw)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return fmt.Errorf("user %q already exists", strings.TrimSpace(*name))
		}
		return err
	}

	fmt.Printf("created user %q with id %d\n", user.Name, user.ID)
	return nil
}

func resolvePassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(passwordEnv); v != "" {
		return v, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password given: use -password, $%s or run from a terminal", passwordEnv)
	}

	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(b) == 0 {
		return "", errors.New("empty password")
	}
	return string(b), nil
}
