package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leonkonan76/MyTelegramBo/internal/fsstore"
)

var (
	ErrNotFound           = errors.New("catalog: file not found")
	ErrUnknownCategory    = errors.New("catalog: unknown category")
	ErrUnknownSubcategory = errors.New("catalog: unknown subcategory")
	ErrDuplicateName      = errors.New("catalog: duplicate file name")
)

// document is the on-disk shape: category -> subcategory -> ordered records,
// plus the activity log.
type document struct {
	Files map[string]map[string][]FileRecord `json:"files"`
	Logs  []LogEntry                         `json:"logs"`
}

// Store owns the persisted catalog. Every mutation runs under one mutex for
// the full read-modify-write-persist cycle; readers get copies.
type Store struct {
	path   string
	policy DuplicatePolicy
	logger *slog.Logger

	mu  sync.Mutex
	doc document
}

// Open loads the catalog at path. A missing or unreadable document is not an
// error: the store starts from an empty seeded catalog and logs what happened.
func Open(path string, policy DuplicatePolicy, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		path:   path,
		policy: policy,
		logger: logger,
	}

	var doc document
	found, err := fsstore.ReadJSON(path, &doc)
	if err != nil {
		logger.Warn("catalog_load_error", "path", path, "error", err.Error())
	}
	if !found || err != nil || doc.Files == nil {
		doc = emptyDocument()
	} else {
		seedMissing(&doc)
	}
	s.doc = doc
	return s
}

func emptyDocument() document {
	doc := document{Files: make(map[string]map[string][]FileRecord)}
	seedMissing(&doc)
	return doc
}

func seedMissing(doc *document) {
	if doc.Files == nil {
		doc.Files = make(map[string]map[string][]FileRecord)
	}
	for _, cat := range Categories {
		if doc.Files[cat] == nil {
			doc.Files[cat] = make(map[string][]FileRecord)
		}
		for _, sub := range Subcategories {
			if _, ok := doc.Files[cat][sub]; !ok {
				doc.Files[cat][sub] = []FileRecord{}
			}
		}
	}
}

// Files returns a copy of the records under (category, subcategory), in
// insertion order. Unknown names yield an empty slice.
func (s *Store) Files(category, subcategory string) []FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.doc.Files[category][subcategory]
	out := make([]FileRecord, len(records))
	copy(out, records)
	return out
}

// AddFile appends a record and persists. Categories and sub-categories
// outside the enumerated sets are rejected.
func (s *Store) AddFile(category, subcategory string, rec FileRecord) error {
	if !KnownCategory(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if !KnownSubcategory(subcategory) {
		return fmt.Errorf("%w: %q", ErrUnknownSubcategory, subcategory)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.policy == DuplicateReject {
		for _, existing := range s.doc.Files[category][subcategory] {
			if existing.Name == rec.Name {
				return fmt.Errorf("%w: %q in %s/%s", ErrDuplicateName, rec.Name, category, subcategory)
			}
		}
	}

	s.doc.Files[category][subcategory] = append(s.doc.Files[category][subcategory], rec)
	return s.persistLocked()
}

// RemoveFile deletes the record at index and persists. Out-of-range indexes
// report ErrNotFound and leave the catalog untouched.
func (s *Store) RemoveFile(category, subcategory string, index int) (FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.doc.Files[category][subcategory]
	if index < 0 || index >= len(records) {
		return FileRecord{}, fmt.Errorf("%w: %s/%s index %d", ErrNotFound, category, subcategory, index)
	}
	removed := records[index]
	s.doc.Files[category][subcategory] = append(records[:index:index], records[index+1:]...)
	if err := s.persistLocked(); err != nil {
		return FileRecord{}, err
	}
	return removed, nil
}

// RemoveFileByName deletes the first record whose display name matches.
func (s *Store) RemoveFileByName(category, subcategory, name string) (FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.doc.Files[category][subcategory]
	for i, rec := range records {
		if rec.Name == name {
			s.doc.Files[category][subcategory] = append(records[:i:i], records[i+1:]...)
			if err := s.persistLocked(); err != nil {
				return FileRecord{}, err
			}
			return rec, nil
		}
	}
	return FileRecord{}, fmt.Errorf("%w: %s/%s name %q", ErrNotFound, category, subcategory, name)
}

// LogActivity appends an activity line and persists it with the catalog.
// Failures are logged and swallowed: the log is display-only and must never
// fail the action that produced it.
func (s *Store) LogActivity(userID int64, action, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Logs = append(s.doc.Logs, LogEntry{
		ID:      uuid.NewString(),
		At:      time.Now().UTC(),
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err := s.persistLocked(); err != nil {
		s.logger.Warn("catalog_log_persist_error", "error", err.Error())
	}
}

// RecentLogs returns up to n newest entries, newest first.
func (s *Store) RecentLogs(n int) []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := s.doc.Logs
	if n <= 0 || n > len(logs) {
		n = len(logs)
	}
	out := make([]LogEntry, 0, n)
	for i := len(logs) - 1; i >= len(logs)-n; i-- {
		out = append(out, logs[i])
	}
	return out
}

func (s *Store) persistLocked() error {
	if err := fsstore.WriteJSONAtomic(s.path, s.doc); err != nil {
		s.logger.Error("catalog_persist_error", "path", s.path, "error", err.Error())
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}
