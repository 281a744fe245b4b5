// Package progress keeps per-level attempt and outcome records across runs.
package progress

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-orbits/pkg/logging"
)

// AppName is the gdata application name the CLI stores progress under
const AppName = "go_orbits"

const levelsObject = "levels"

// LevelRecord is what is remembered about one level
type LevelRecord struct {
	Attempts int `yaml:"attempts"`
	Crashes  int `yaml:"crashes"`
	Finishes int `yaml:"finishes"`
	// BestFlightTime is the shortest finishing flight in seconds; zero until
	// the level has been finished once.
	BestFlightTime float64 `yaml:"bestFlightTime"`
}

// backend is the part of *gdata.Manager the store uses.
type backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Store holds level records in memory and writes them through to gdata.
// A Store without a manager works in memory only, and so does a Store
// whose first write failed.
type Store struct {
	manager backend
	logger  *logging.Logger

	mu      sync.Mutex
	records map[string]LevelRecord
}

// Open wraps an existing gdata manager. manager may be nil.
func Open(manager *gdata.Manager, logger *logging.Logger) *Store {
	if manager == nil {
		return openBackend(nil, logger)
	}
	return openBackend(manager, logger)
}

func openBackend(b backend, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		manager: b,
		logger:  logger,
		records: make(map[string]LevelRecord),
	}
}

// OpenApp opens the gdata storage for appName. When the platform storage
// cannot be opened the returned Store works in memory only and the error
// is logged.
func OpenApp(appName string, logger *logging.Logger) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	s := Open(nil, logger)
	if err != nil {
		s.logger.Warn(context.Background(), "progress storage unavailable, keeping records in memory",
			"app", appName,
			"error", err.Error(),
		)
		return s
	}
	s.manager = manager
	return s
}

// Persistent reports whether records survive the process
func (s *Store) Persistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager != nil
}

// Record returns the record for level. Unknown levels yield a zero record.
func (s *Store) Record(level string) (LevelRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(level)
}

// Levels lists the levels with a record loaded in this process, sorted
func (s *Store) Levels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Update applies fn to the record for level and saves the result.
func (s *Store) Update(level string, fn func(r *LevelRecord)) (LevelRecord, error) {
	if level == "" {
		return LevelRecord{}, fmt.Errorf("progress: empty level name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(level)
	if err != nil {
		// A corrupt record is replaced rather than blocking new progress.
		s.logger.Warn(context.Background(), "discarding unreadable progress record",
			"level", level,
			"error", err.Error(),
		)
		rec = LevelRecord{}
	}
	fn(&rec)
	s.records[level] = rec
	return rec, s.save(level, rec)
}

// load must be called with mu held.
func (s *Store) load(level string) (LevelRecord, error) {
	if rec, ok := s.records[level]; ok {
		return rec, nil
	}
	if s.manager == nil || !s.manager.ObjectPropExists(levelsObject, level) {
		return LevelRecord{}, nil
	}

	data, err := s.manager.LoadObjectProp(levelsObject, level)
	if err != nil {
		return LevelRecord{}, fmt.Errorf("failed to load progress for %q: %w", level, err)
	}
	var rec LevelRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return LevelRecord{}, fmt.Errorf("failed to unmarshal progress for %q: %w", level, err)
	}
	s.records[level] = rec
	return rec, nil
}

// save must be called with mu held. The first failed write drops the
// backend so later updates stay in memory.
func (s *Store) save(level string, rec LevelRecord) error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := s.manager.SaveObjectProp(levelsObject, level, data); err != nil {
		s.manager = nil
		s.logger.Warn(context.Background(), "progress storage failed, keeping records in memory",
			"level", level,
			"error", err.Error(),
		)
		return fmt.Errorf("failed to save progress for %q: %w", level, err)
	}
	return nil
}
