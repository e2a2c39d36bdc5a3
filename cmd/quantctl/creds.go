package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

type credentials struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func credentialsDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("QD_DIR")); v != "" {
		return v, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(h, ".quantdesk"), nil
}

func loadCredentials() (credentials, error) {
	d, err := credentialsDir()
	if err != nil {
		return credentials{}, err
	}
	b, err := os.ReadFile(filepath.Join(d, "credentials.json"))
	if err != nil {
		return credentials{}, err
	}
	var c credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return credentials{}, err
	}
	return c, nil
}

func saveCredentials(c credentials) error {
	d, err := credentialsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d, "credentials.json"), b, 0o600)
}
