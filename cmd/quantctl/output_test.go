package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteAppsTable(t *testing.T) {
	var buf bytes.Buffer
	apps := []appStatus{
		{Name: "quant-a", Title: "Quant A", Status: "ok", PublicURL: "http://localhost:8501"},
		{Name: "quant-b", Title: "Quant B", Status: "unreachable", PublicURL: "http://localhost:8502"},
	}
	if err := writeAppsTable(&buf, apps); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%d out=%q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "STATUS") {
		t.Fatalf("header=%q", lines[0])
	}
	if !strings.Contains(lines[1], "quant-a") || !strings.Contains(lines[1], "ok") {
		t.Fatalf("row=%q", lines[1])
	}
}

func TestWriteDatesTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDatesTable(&buf, []string{"2024-03-05", "2024-03-04"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "DATE\n2024-03-05\n2024-03-04\n"
	if buf.String() != want {
		t.Fatalf("out=%q want=%q", buf.String(), want)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]int{"count": 2}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"count": 2`) {
		t.Fatalf("out=%q", buf.String())
	}
}
