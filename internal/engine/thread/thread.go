// Package thread loads the ordered patch messages of a mailing-list thread
// from a YAML or JSON thread file.
package thread

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/irahardianto/threadpatch/internal/engine/config"
	"github.com/irahardianto/threadpatch/internal/engine/patch"
	"github.com/irahardianto/threadpatch/internal/platform/logger"
)

// File is the on-disk shape of a thread file. JSON is accepted as well.
type File struct {
	Messages []Message `yaml:"messages"`
}

// Message is one email of the thread. Exactly one of Content and File
// carries its diff-bearing text; File is resolved against the thread file's
// directory.
type Message struct {
	Date    string `yaml:"date"`
	Subject string `yaml:"subject,omitempty"`
	Content string `yaml:"content,omitempty"`
	File    string `yaml:"file,omitempty"`
}

// Loader reads thread files.
type Loader struct {
	fs config.FileSystem
}

// NewLoader creates a Loader over fs.
func NewLoader(fs config.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads the thread file at path.
func Load(ctx context.Context, path string) ([]patch.PatchInput, error) {
	return NewLoader(&config.RealFileSystem{}).Load(ctx, path)
}

// Load reads and decodes the thread file at path.
func (l *Loader) Load(ctx context.Context, path string) ([]patch.PatchInput, error) {
	path = filepath.Clean(path)
	logger.FromContext(ctx).Debug("loading thread", "path", path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading thread file: %w", err)
	}

	return l.Parse(ctx, data, filepath.Dir(path))
}

// Parse decodes thread file contents. Problems with individual messages are
// reported together.
func (l *Loader) Parse(ctx context.Context, data []byte, baseDir string) ([]patch.PatchInput, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing thread file: %w", err)
	}

	patches := make([]patch.PatchInput, 0, len(f.Messages))
	var errs []error

	for i, m := range f.Messages {
		p, err := l.message(m, baseDir)
		if err != nil {
			errs = append(errs, fmt.Errorf("message %d: %w", i+1, err))
			continue
		}
		patches = append(patches, p)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("thread loaded", "messages", len(patches))
	return patches, nil
}

func (l *Loader) message(m Message, baseDir string) (patch.PatchInput, error) {
	if m.Date == "" {
		return patch.PatchInput{}, errors.New("missing required field 'date'")
	}
	date, err := ParseDate(m.Date)
	if err != nil {
		return patch.PatchInput{}, err
	}

	switch {
	case m.Content != "" && m.File != "":
		return patch.PatchInput{}, errors.New("'content' and 'file' are mutually exclusive")
	case m.File != "":
		path := m.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := l.fs.ReadFile(filepath.Clean(path))
		if err != nil {
			return patch.PatchInput{}, fmt.Errorf("reading %s: %w", m.File, err)
		}
		return patch.PatchInput{Content: string(data), Date: date}, nil
	default:
		return patch.PatchInput{Content: m.Content, Date: date}, nil
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts ISO-8601 timestamps and RFC 5322 mail dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := mail.ParseDate(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
