// Package fetcher retrieves a remote object into local scratch storage with
// chunked transfers, transient-error retry and progress observation.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"meeting-insights-go/internal/logger"
	"meeting-insights-go/internal/retry"
	"meeting-insights-go/internal/types"
)

// ErrRetrievalFailed marks a non-transient download failure.
var ErrRetrievalFailed = errors.New("retrieval failed")

// DefaultChunkSize is the transfer chunk size (4 MiB).
const DefaultChunkSize = 4 * 1024 * 1024

const maxNameLen = 120

// BlobStore is the slice of the object store the fetcher consumes.
type BlobStore interface {
	Size(ctx context.Context, objectID string) (int64, error)
	ReadRange(ctx context.Context, objectID string, offset, length int64) ([]byte, error)
}

// Fetcher downloads source objects into Dir.
type Fetcher struct {
	Store     BlobStore
	Dir       string
	ChunkSize int64
	// Transient classifies store errors; non-transient errors abort the
	// transfer immediately.
	Transient func(error) bool
	// Progress observes completion percentage. Failures inside the observer
	// never abort the transfer.
	Progress func(pct float64)
}

// Retrieve downloads the object's full content and returns the local path.
func (f *Fetcher) Retrieve(ctx context.Context, obj types.SourceObject) (string, error) {
	log := logger.New().WithObject(obj.ID, obj.Name).WithField("component", "fetcher")

	chunk := f.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create scratch dir: %v", ErrRetrievalFailed, err)
	}
	localPath := filepath.Join(f.Dir, SanitizeName(obj.Name))

	size, err := f.withRetry(ctx, log, "stat", func() (int64, error) {
		return f.Store.Size(ctx, obj.ID)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: create local file: %v", ErrRetrievalFailed, err)
	}

	// A failed transfer removes the partial file so scratch never accumulates.
	if err := f.transfer(ctx, log, out, obj.ID, size, chunk); err != nil {
		out.Close()
		os.Remove(localPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("%w: close local file: %v", ErrRetrievalFailed, err)
	}

	log.WithField("size_bytes", size).Info("retrieved object")
	return localPath, nil
}

func (f *Fetcher) transfer(ctx context.Context, log *logrus.Entry, out *os.File, objectID string, size, chunk int64) error {
	for offset := int64(0); offset < size; offset += chunk {
		length := chunk
		if offset+length > size {
			length = size - offset
		}
		data, err := f.withRetryBytes(ctx, log, offset, func() ([]byte, error) {
			return f.Store.ReadRange(ctx, objectID, offset, length)
		})
		if err != nil {
			return fmt.Errorf("%w: chunk at %d: %v", ErrRetrievalFailed, offset, err)
		}
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("%w: write local file: %v", ErrRetrievalFailed, err)
		}
		f.observe(float64(offset+length) / float64(size) * 100)
	}
	if size == 0 {
		f.observe(100)
	}
	return nil
}

func (f *Fetcher) withRetry(ctx context.Context, log *logrus.Entry, op string, fn func() (int64, error)) (int64, error) {
	var val int64
	err := backoff.Retry(func() error {
		v, err := fn()
		if err != nil {
			if f.isTransient(err) {
				log.WithError(err).Warn(op + " failed, retrying")
				return err
			}
			return backoff.Permanent(err)
		}
		val = v
		return nil
	}, backoff.WithContext(retry.Transfer(), ctx))
	return val, err
}

func (f *Fetcher) withRetryBytes(ctx context.Context, log *logrus.Entry, offset int64, fn func() ([]byte, error)) ([]byte, error) {
	var data []byte
	err := backoff.Retry(func() error {
		d, err := fn()
		if err != nil {
			if f.isTransient(err) {
				log.WithError(err).WithField("offset", offset).Warn("chunk failed, retrying")
				return err
			}
			return backoff.Permanent(err)
		}
		data = d
		return nil
	}, backoff.WithContext(retry.Transfer(), ctx))
	return data, err
}

func (f *Fetcher) isTransient(err error) bool {
	return f.Transient != nil && f.Transient(err)
}

// observe reports progress, swallowing observer panics: progress is a side
// effect only and must never fail the transfer.
func (f *Fetcher) observe(pct float64) {
	if f.Progress == nil {
		return
	}
	defer func() { _ = recover() }()
	f.Progress(pct)
}

// SanitizeName makes a display name safe for local storage: path separators
// and control characters become underscores, whitespace collapses to single
// spaces, and the result is length-capped.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteByte('_')
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	s := strings.Join(strings.Fields(b.String()), " ")
	if s == "" {
		s = "unnamed"
	}
	runes := []rune(s)
	if len(runes) > maxNameLen {
		s = string(runes[:maxNameLen])
	}
	return s
}
