package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCredentialsRoundTrip(t *testing.T) {
	t.Setenv("QD_DIR", t.TempDir())

	if _, err := loadCredentials(); err == nil {
		t.Fatalf("expected error before first save")
	}

	want := credentials{Token: "tok", ExpiresAt: "2026-01-01T00:00:00Z"}
	if err := saveCredentials(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := loadCredentials()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestCredentialsFileMode(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QD_DIR", dir)

	if err := saveCredentials(credentials{Token: "tok"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "credentials.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode=%v", info.Mode().Perm())
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	err := dispatch(cmdContext{HubBase: "http://localhost:8500"}, []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("err=%v", err)
	}
}
