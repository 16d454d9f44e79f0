package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/spboyer/comborank/internal/models"
)

// entryExt is the suffix of every cache entry: zstd-compressed JSON.
const entryExt = ".json.zst"

// keyVersion salts every key. Bump it whenever scoring or the stored
// entry layout changes so stale entries stop matching.
const keyVersion = "comborank-rank-v1"

// Cache stores ranked results on disk, keyed by their inputs.
type Cache struct {
	dir string
	mu  sync.Mutex
}

// New creates a new cache instance with the specified directory.
// An empty dir disables the cache.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Key generates a cache key for a ranking run.
// The key is based on:
// - every variant (ID and numbers, in order)
// - every round (in order)
// - the weights, k and the output count
func Key(variants []models.Variant, rounds []models.Round, weights models.Weights, k, outputCount int) (string, error) {
	return versionedKey(keyVersion, variants, rounds, weights, k, outputCount)
}

func versionedKey(version string, variants []models.Variant, rounds []models.Round, weights models.Weights, k, outputCount int) (string, error) {
	h := sha256.New()

	if err := writeString(h, version); err != nil {
		return "", err
	}
	if err := writeInt(h, len(variants)); err != nil {
		return "", err
	}
	for _, v := range variants {
		if err := writeString(h, v.ID); err != nil {
			return "", err
		}
		if err := writeInts(h, v.Numbers); err != nil {
			return "", err
		}
	}

	if err := writeInt(h, len(rounds)); err != nil {
		return "", err
	}
	for _, r := range rounds {
		if err := writeInts(h, r); err != nil {
			return "", err
		}
	}

	for _, n := range []int{weights.Frequency, weights.MatchComplete, weights.MatchPartial, weights.Distribution, k, outputCount} {
		if err := writeInt(h, n); err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get retrieves cached ranked variants if they exist.
func (c *Cache) Get(key string) ([]models.ScoredVariant, bool) {
	if c.dir == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.cachePath(key))
	if err != nil {
		// Cache miss
		return nil, false
	}
	defer f.Close() //nolint:errcheck

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, false
	}
	defer dec.Close()

	var scored []models.ScoredVariant
	if err := json.NewDecoder(dec).Decode(&scored); err != nil {
		// Invalid cache entry, treat as miss
		return nil, false
	}

	return scored, true
}

// Put stores ranked variants in the cache.
func (c *Cache) Put(key string, scored []models.ScoredVariant) error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Ensure cache directory exists
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.Marshal(scored)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(data, nil)
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing zstd encoder: %w", err)
	}

	// Write to a temp file first so a concurrent reader never sees a partial entry.
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmp.Name()) //nolint:errcheck
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.cachePath(key)); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return fmt.Errorf("writing cache file: %w", err)
	}

	return nil
}

// Clear removes all cached results
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Check if directory exists
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	// Safety check: verify this is a comborank cache directory before removing
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}

	// If directory is not empty, verify it contains only cache files
	if len(entries) > 0 {
		for _, entry := range entries {
			if entry.IsDir() {
				return fmt.Errorf("cache directory contains subdirectories - refusing to delete for safety")
			}
			if !strings.HasSuffix(entry.Name(), entryExt) {
				return fmt.Errorf("cache directory contains non-cache files - refusing to delete for safety")
			}
		}
	}

	return os.RemoveAll(c.dir)
}

// cachePath returns the file path for a cache key
func (c *Cache) cachePath(key string) string {
	return filepath.Join(c.dir, key+entryExt)
}

// Helper functions

func writeString(w io.Writer, s string) error {
	// Write string with null byte delimiter to prevent hash collisions
	_, err := w.Write([]byte(s + "\x00"))
	return err
}

func writeInt(w io.Writer, i int) error {
	// Write int with null byte delimiter to prevent hash collisions
	_, err := fmt.Fprintf(w, "%d\x00", i)
	return err
}

func writeInts(w io.Writer, ns []int) error {
	if err := writeInt(w, len(ns)); err != nil {
		return err
	}
	for _, n := range ns {
		if err := writeInt(w, n); err != nil {
			return err
		}
	}
	return nil
}
