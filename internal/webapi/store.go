package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spboyer/comborank/internal/models"
)

// ErrRunNotFound is returned when a run ID does not match any stored run.
var ErrRunNotFound = errors.New("run not found")

// RunStore keeps ranking outcomes produced by the API or the CLI.
type RunStore interface {
	// ListRuns returns all runs, sorted by the given field and order.
	ListRuns(sortField, order string) ([]RunSummary, error)
	// GetRun returns a single run with its ranked variants.
	GetRun(id string) (*models.RankOutcome, error)
	// Save stores an outcome.
	Save(outcome *models.RankOutcome) error
}

// FileStore reads RankOutcome JSON files from a directory and writes new
// outcomes there. With an empty directory it only keeps outcomes in memory.
type FileStore struct {
	dir string

	mu      sync.RWMutex
	runs    map[string]*models.RankOutcome
	loaded  bool
	loadErr error
}

// NewFileStore creates a FileStore that reads results from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:  dir,
		runs: make(map[string]*models.RankOutcome),
	}
}

// load reads all result JSON files from the configured directory.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			fs.loaded = true
			return nil
		}
		fs.loadErr = err
		return err
	}

	runs := make(map[string]*models.RankOutcome)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(fs.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var outcome models.RankOutcome
		if err := json.Unmarshal(data, &outcome); err != nil {
			continue
		}
		if outcome.RunID == "" {
			// Use filename (without extension) as fallback ID.
			outcome.RunID = strings.TrimSuffix(e.Name(), ".json")
		}
		runs[outcome.RunID] = &outcome
	}

	fs.runs = runs
	fs.loaded = true
	fs.loadErr = nil
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh reload of all result files from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

func outcomeToSummary(o *models.RankOutcome) RunSummary {
	return RunSummary{
		ID:            o.RunID,
		Selected:      o.Summary.Selected,
		TotalVariants: o.Summary.TotalVariants,
		TotalRounds:   o.Summary.TotalRounds,
		AvgScore:      o.Summary.AvgScore,
		MaxScore:      o.Summary.MaxScore,
		Duration:      float64(o.DurationMs) / 1000.0,
		Timestamp:     o.Timestamp,
	}
}

// ListRuns returns all runs sorted by the given field and order.
func (fs *FileStore) ListRuns(sortField, order string) ([]RunSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	runs := make([]RunSummary, 0, len(fs.runs))
	for _, o := range fs.runs {
		runs = append(runs, outcomeToSummary(o))
	}

	sortRuns(runs, sortField, order)
	return runs, nil
}

// GetRun returns a single run.
func (fs *FileStore) GetRun(id string) (*models.RankOutcome, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	o, ok := fs.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return o, nil
}

// Save records outcome and, when a directory is configured, writes it to
// <dir>/<runID>.json.
func (fs *FileStore) Save(outcome *models.RankOutcome) error {
	if err := fs.ensureLoaded(); err != nil {
		return err
	}

	if fs.dir != "" {
		if err := os.MkdirAll(fs.dir, 0o755); err != nil {
			return fmt.Errorf("creating results directory: %w", err)
		}
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling outcome: %w", err)
		}
		path := filepath.Join(fs.dir, outcome.RunID+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	fs.mu.Lock()
	fs.runs[outcome.RunID] = outcome
	fs.mu.Unlock()
	return nil
}

func sortRuns(runs []RunSummary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "score":
			return runs[i].AvgScore < runs[j].AvgScore
		case "variants":
			return runs[i].TotalVariants < runs[j].TotalVariants
		case "duration":
			return runs[i].Duration < runs[j].Duration
		default: // "timestamp" or empty
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
	}

	if order == "asc" {
		sort.Slice(runs, less)
	} else {
		sort.Slice(runs, func(i, j int) bool { return less(j, i) })
	}
}

// Ensure FileStore satisfies RunStore.
var _ RunStore = (*FileStore)(nil)
