package thread

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/irahardianto/threadpatch/internal/engine/config"
)

func TestLoad_InlineAndFileMessages(t *testing.T) {
	mockFS := config.NewMockFileSystem()
	mockFS.Files["threads/t.yaml"] = []byte(`
messages:
  - date: 2024-03-01T09:00:00Z
    subject: "[PATCH 1/1] fix parser"
    content: |
      diff --git a/f b/f
      @@ -1 +1 @@
      -a
      +b
  - date: "Sat, 02 Mar 2024 10:30:00 +0100"
    file: v2.patch
`)
	mockFS.Files["threads/v2.patch"] = []byte("diff --git a/f b/f\n@@ -1 +1 @@\n-a\n+c\n")

	patches, err := NewLoader(mockFS).Load(context.Background(), "threads/t.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patches) != 2 {
		t.Fatalf("expected 2 patches, got %d", len(patches))
	}

	if !patches[0].Date.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected first date %v", patches[0].Date)
	}
	if !strings.HasPrefix(patches[0].Content, "diff --git a/f b/f\n") {
		t.Errorf("unexpected inline content %q", patches[0].Content)
	}

	if !patches[1].Date.Equal(time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected second date %v", patches[1].Date)
	}
	if !strings.Contains(patches[1].Content, "+c") {
		t.Errorf("expected file content, got %q", patches[1].Content)
	}
}

func TestLoad_JSON(t *testing.T) {
	mockFS := config.NewMockFileSystem()
	mockFS.Files["t.json"] = []byte(`{"messages": [{"date": "2024-01-02", "content": "hello"}]}`)

	patches, err := NewLoader(mockFS).Load(context.Background(), "t.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patches) != 1 || patches[0].Content != "hello" {
		t.Errorf("unexpected patches: %+v", patches)
	}
}

func TestLoad_Empty(t *testing.T) {
	mockFS := config.NewMockFileSystem()
	mockFS.Files["t.yaml"] = []byte("messages: []\n")

	patches, err := NewLoader(mockFS).Load(context.Background(), "t.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patches) != 0 {
		t.Errorf("expected no patches, got %d", len(patches))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(config.NewMockFileSystem()).Load(context.Background(), "nope.yaml")
	if err == nil {
		t.Fatal("expected error for missing thread file")
	}
}

func TestLoad_MessageErrorsJoined(t *testing.T) {
	mockFS := config.NewMockFileSystem()
	mockFS.Files["t.yaml"] = []byte(`
messages:
  - content: no date here
  - date: yesterday
    content: x
  - date: 2024-01-01
    content: x
    file: y.patch
  - date: 2024-01-01
    file: missing.patch
`)

	_, err := NewLoader(mockFS).Load(context.Background(), "t.yaml")
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	for _, want := range []string{"message 1", "'date'", "message 2", "yesterday", "message 3", "mutually exclusive", "message 4", "missing.patch"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error to mention %q, got:\n%s", want, msg)
		}
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	mockFS := config.NewMockFileSystem()
	mockFS.Files["t.yaml"] = []byte("messages: [\n")

	_, err := NewLoader(mockFS).Load(context.Background(), "t.yaml")
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_ReadErrorWrapped(t *testing.T) {
	mockFS := config.NewMockFileSystem()
	cause := errors.New("disk on fire")
	mockFS.ReadErrors["t.yaml"] = cause

	_, err := NewLoader(mockFS).Load(context.Background(), "t.yaml")
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01T09:00:00Z", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:00:00+01:00", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"Fri, 1 Mar 2024 09:00:00 +0000", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q): unexpected error %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDate("last tuesday"); err == nil {
		t.Error("expected error for unparseable date")
	}
}
