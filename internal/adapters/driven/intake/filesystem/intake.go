package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/logger"
)

// Ensure Intake implements the interfaces.
var (
	_ driven.Intake         = (*Intake)(nil)
	_ driven.DocumentReader = (*Intake)(nil)
)

// Intake claims documents from a directory and archives them into another.
type Intake struct {
	intakeDir    string
	processedDir string

	mu sync.Mutex
	// claimed tracks files handed out and not yet archived, keyed by name.
	// A file is claimable again once its modification time changes.
	claimed map[string]time.Time
}

// New creates an intake over intakeDir, archiving into processedDir.
// Both directories are created if absent.
func New(intakeDir, processedDir string) (*Intake, error) {
	if intakeDir == "" || processedDir == "" {
		return nil, fmt.Errorf("%w: intake and processed directories are required", domain.ErrInvalidInput)
	}

	intakeAbs, err := filepath.Abs(intakeDir)
	if err != nil {
		return nil, fmt.Errorf("resolve intake dir: %w", err)
	}
	processedAbs, err := filepath.Abs(processedDir)
	if err != nil {
		return nil, fmt.Errorf("resolve processed dir: %w", err)
	}
	if intakeAbs == processedAbs {
		return nil, fmt.Errorf("%w: intake and processed directories must differ", domain.ErrInvalidInput)
	}

	for _, dir := range []string{intakeAbs, processedAbs} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return &Intake{
		intakeDir:    intakeAbs,
		processedDir: processedAbs,
		claimed:      make(map[string]time.Time),
	}, nil
}

// Dir returns the absolute intake directory.
func (i *Intake) Dir() string {
	return i.intakeDir
}

// ProcessedDir returns the absolute processed directory.
func (i *Intake) ProcessedDir() string {
	return i.processedDir
}

// Claim returns the first regular, non-hidden file in name order that has
// not already been handed out. Returns nil when there is nothing to claim.
func (i *Intake) Claim(ctx context.Context) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// os.ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(i.intakeDir)
	if err != nil {
		return nil, fmt.Errorf("read intake dir: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isHidden(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed between listing and stat, or unreadable
			logger.Error("skipping %s: %v", name, err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if modTime, ok := i.claimed[name]; ok && modTime.Equal(info.ModTime()) {
			continue
		}

		i.claimed[name] = info.ModTime()
		raw := newRawDocument(filepath.Join(i.intakeDir, name), info)
		return &raw, nil
	}
	return nil, nil
}

// Stat builds a document for an explicit path outside the claim loop.
func Stat(path string) (domain.RawDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.RawDocument{}, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return domain.RawDocument{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return domain.RawDocument{}, fmt.Errorf("%w: %s is not a regular file", domain.ErrInvalidInput, path)
	}
	return newRawDocument(abs, info), nil
}

// Read returns the content of a claimed document.
func (i *Intake) Read(ctx context.Context, raw domain.RawDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(raw.URI)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", raw.Filename, err)
	}
	return data, nil
}

// Archive moves the document into the processed directory under its
// original name. An existing target is never overwritten.
func (i *Intake) Archive(ctx context.Context, raw domain.RawDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if raw.Filename == "" || raw.Filename != filepath.Base(raw.Filename) {
		return "", fmt.Errorf("%w: %w: bad filename %q", domain.ErrArchiveFailed, domain.ErrInvalidInput, raw.Filename)
	}

	dest := filepath.Join(i.processedDir, raw.Filename)
	if _, err := os.Lstat(dest); err == nil {
		return "", fmt.Errorf("%w: %w: %s", domain.ErrArchiveFailed, domain.ErrArchiveCollision, dest)
	}

	if err := os.MkdirAll(i.processedDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create processed dir: %w", domain.ErrArchiveFailed, err)
	}
	if err := move(raw.URI, dest); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrArchiveFailed, err)
	}

	i.mu.Lock()
	delete(i.claimed, raw.Filename)
	i.mu.Unlock()

	return dest, nil
}

// move renames src to dest, copying across filesystems when needed.
func move(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return os.Remove(src)
}

func newRawDocument(path string, info os.FileInfo) domain.RawDocument {
	return domain.RawDocument{
		Filename: info.Name(),
		URI:      path,
		MIMEType: detectMIMEType(info.Name()),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}
}

// customMIMETypes covers extensions the mime package does not know on
// every platform.
var customMIMETypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".csv":      "text/csv",
	".log":      "text/plain",
	".yaml":     "text/yaml",
	".yml":      "text/yaml",
	".toml":     "text/toml",
	".pdf":      "application/pdf",
}

// detectMIMEType guesses a content type from the filename extension.
// Files without an extension are treated as plain text.
func detectMIMEType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "text/plain"
	}
	if mt, ok := customMIMETypes[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if idx := strings.Index(mt, ";"); idx != -1 {
			mt = strings.TrimSpace(mt[:idx])
		}
		return mt
	}
	return "application/octet-stream"
}

// isHidden reports whether any path segment starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
