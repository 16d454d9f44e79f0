package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spboyer/comborank/internal/models"
)

// StdioPath selects stdin for reading or stdout for writing.
const StdioPath = "-"

// Compression identifies how a file's content is encoded on disk.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// DetectCompression picks a compression from the file extension.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Open opens path for reading, transparently decompressing .gz and .zst
// files. StdioPath reads stdin, which is never closed.
func Open(path string) (io.ReadCloser, error) {
	if path == StdioPath {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch DetectCompression(path) {
	case CompressionGzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("reading gzip header: %w", err)
		}
		return &stackedReader{Reader: zr, closers: []func() error{zr.Close, f.Close}}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		closeDecoder := func() error {
			zr.Close()
			return nil
		}
		return &stackedReader{Reader: zr, closers: []func() error{closeDecoder, f.Close}}, nil
	default:
		return f, nil
	}
}

// Create opens path for writing, compressing by extension like Open.
// StdioPath writes to stdout, which is never closed.
func Create(path string) (io.WriteCloser, error) {
	if path == StdioPath {
		return nopWriteCloser{os.Stdout}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	switch DetectCompression(path) {
	case CompressionGzip:
		zw := gzip.NewWriter(f)
		return &stackedWriter{Writer: zw, closers: []func() error{zw.Close, f.Close}}, nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("creating zstd stream: %w", err)
		}
		return &stackedWriter{Writer: zw, closers: []func() error{zw.Close, f.Close}}, nil
	default:
		return f, nil
	}
}

// LoadVariants reads a variants file.
func LoadVariants(path string) ([]models.Variant, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, &ParseError{Kind: "variants", Source: path, Err: err}
	}
	defer rc.Close() //nolint:errcheck

	variants, err := ParseVariants(rc, path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded variants", "path", path, "count", len(variants))
	return variants, nil
}

// LoadRounds reads a rounds file.
func LoadRounds(path string) ([]models.Round, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, &ParseError{Kind: "rounds", Source: path, Err: err}
	}
	defer rc.Close() //nolint:errcheck

	rounds, err := ParseRounds(rc, path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded rounds", "path", path, "count", len(rounds))
	return rounds, nil
}

// stackedReader closes a decompressor and the file beneath it, in order.
type stackedReader struct {
	io.Reader
	closers []func() error
}

func (s *stackedReader) Close() error { return closeAll(s.closers) }

// stackedWriter flushes a compressor before closing the file beneath it.
type stackedWriter struct {
	io.Writer
	closers []func() error
}

func (s *stackedWriter) Close() error { return closeAll(s.closers) }

func closeAll(closers []func() error) error {
	var first error
	for _, c := range closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
