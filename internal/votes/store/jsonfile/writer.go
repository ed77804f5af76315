// Package jsonfile writes the consolidated vote tree as one JSON document.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"rollcall/internal/votes/models"
	"rollcall/pkg/platform/sentinel"
)

// Progress observes bytes written so far out of total. It never sees the
// content.
type Progress func(written, total int64)

// Writer is the single-writer handle for one output path. It is safe for
// concurrent use; writes are serialised.
type Writer struct {
	mu       sync.Mutex
	path     string
	progress Progress
	logger   *slog.Logger
	closed   bool
}

type Option func(*Writer)

func WithProgress(p Progress) Option {
	return func(w *Writer) {
		w.progress = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

var ErrClosed = errors.New("json writer closed")

// outputMode replaces the owner-only mode CreateTemp gives the staging file.
const outputMode fs.FileMode = 0o644

// New returns a Writer targeting path.
func New(path string, opts ...Option) (*Writer, error) {
	if path == "" {
		return nil, errors.New("output path is required")
	}
	w := &Writer{
		path:   path,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Writer) Path() string { return w.path }

// Write serialises root with two-space indentation and replaces the target
// atomically: the document goes to a temporary file in the same directory
// which is then renamed over the target.
func (w *Writer) Write(ctx context.Context, root *models.Root) (err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("%w: %w", sentinel.ErrSinkWrite, ErrClosed)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", sentinel.ErrSinkWrite, err)
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: create %s: %w", sentinel.ErrSinkWrite, dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrSinkWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	total := int64(len(data))
	dst := io.Writer(tmp)
	if w.progress != nil {
		dst = &progressWriter{w: tmp, total: total, report: w.progress}
	}
	if _, err = io.Copy(dst, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: write %s: %w", sentinel.ErrSinkWrite, tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %w", sentinel.ErrSinkWrite, err)
	}
	if err = tmp.Chmod(outputMode); err != nil {
		return fmt.Errorf("%w: chmod: %w", sentinel.ErrSinkWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", sentinel.ErrSinkWrite, err)
	}
	if err = os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("%w: rename: %w", sentinel.ErrSinkWrite, err)
	}

	w.logger.InfoContext(ctx, "vote document written", "path", w.path, "bytes", total)
	return nil
}

// Close releases the handle. Further writes fail.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

type progressWriter struct {
	w       io.Writer
	written int64
	total   int64
	report  Progress
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	p.report(p.written, p.total)
	return n, err
}
