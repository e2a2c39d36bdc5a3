package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2024-03-01_report.json", "{}")
	writeFile(t, dir, "2024-03-03_report.json", "{}")
	writeFile(t, dir, "2024-03-02_report.json", "{}")
	writeFile(t, dir, "notes.txt", "ignore me")
	writeFile(t, dir, "bogus_report.json", "{}")

	dates, err := Dates(dir)
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	want := []string{"2024-03-03", "2024-03-02", "2024-03-01"}
	if len(dates) != len(want) {
		t.Fatalf("dates=%v want=%v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates=%v want=%v", dates, want)
		}
	}
}

func TestDates_MissingDir(t *testing.T) {
	dates, err := Dates(filepath.Join(t.TempDir(), "nope"))
	if err != nil || dates != nil {
		t.Fatalf("got %v,%v want nil,nil", dates, err)
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2024-03-01_report.json", `{"date":"2024-03-01"}`)

	data, err := Read(dir, "2024-03-01")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"date":"2024-03-01"}` {
		t.Fatalf("data=%s", data)
	}

	if _, err := Read(dir, "2024-03-02"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want=ErrNotFound", err)
	}
}

func TestRead_RejectsMalformedDate(t *testing.T) {
	dir := t.TempDir()
	if _, err := Read(dir, "../secrets"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want=ErrNotFound", err)
	}
}
