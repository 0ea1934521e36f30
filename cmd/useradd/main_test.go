package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolvePassword(t *testing.T) {
	t.Setenv(passwordEnv, "from-env")

	if pw, err := resolvePassword("from-flag"); err != nil || pw != "from-flag" {
		t.Fatalf("flag should win, got %q %v", pw, err)
	}
	if pw, err := resolvePassword(""); err != nil || pw != "from-env" {
		t.Fatalf("env fallback failed, got %q %v", pw, err)
	}
}

func TestRun_CreatesUserOnce(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "complaints.db") + "?_pragma=foreign_keys(1)"
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", dsn)
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "error")

	ctx := context.Background()
	if err := run(ctx, []string{"-name", "alice", "-password", "pw"}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	err := run(ctx, []string{"-name", "alice", "-password", "pw"})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRun_RequiresName(t *testing.T) {
	if err := run(context.Background(), []string{"-password", "pw"}); err == nil {
		t.Fatalf("expected error without -name")
	}
}
