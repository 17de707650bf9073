package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jhagent/job-hunter/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

// TTL after which a stored payload is treated as absent.
const TTL = 60 * time.Minute

// entry is the on-disk cache record, one file per fingerprint. Unknown
// extra fields in existing files are ignored on read.
type entry struct {
	Role        string         `json:"role"`
	Location    string         `json:"location"`
	DatePosted  string         `json:"date_posted"`
	Countries   []string       `json:"countries,omitempty"`
	Timestamp   string         `json:"timestamp"`
	RawResponse map[string]any `json:"raw_response"`
}

// Store persists raw fetch payloads keyed by search fingerprint. A go-cache
// layer in front of the files avoids re-reading disk on repeated lookups
// within a watch-mode process; freshness is always judged by the entry's
// own timestamp, so both layers expire identically.
type Store struct {
	dir string
	mem *gocache.Cache
	now func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{
		dir: dir,
		mem: gocache.New(TTL, 2*TTL),
		now: time.Now,
	}
}

// SetClock overrides the time source; used by tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Lookup returns the cached payload for the query, or nil and false on any
// kind of miss: absent file, expired entry, unreadable JSON, missing
// timestamp or malformed payload shape. Corruption never surfaces as an
// error.
func (s *Store) Lookup(query *models.SearchQuery) (map[string]any, bool) {

	fingerprint := Fingerprint(query)

	if cached, found := s.mem.Get(fingerprint); found {
		if e, ok := cached.(entry); ok {
			if payload, ok := s.freshPayload(e); ok {
				return payload, true
			}
		}
		s.mem.Delete(fingerprint)
	}

	data, err := os.ReadFile(s.path(fingerprint))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		log.Debugf("cache entry %v is unparseable, treating as miss: %v", fingerprint, err)
		return nil, false
	}

	payload, ok := s.freshPayload(e)
	if !ok {
		return nil, false
	}

	s.mem.SetDefault(fingerprint, e)
	return payload, true
}

// Save overwrites any existing entry for the query's fingerprint with the
// payload and a fresh UTC timestamp.
func (s *Store) Save(query *models.SearchQuery, payload map[string]any) error {

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	fingerprint := Fingerprint(query)
	e := entry{
		Role:        query.Role,
		Location:    query.Location,
		DatePosted:  string(query.DatePosted),
		Countries:   sortedCountries(query),
		Timestamp:   s.now().UTC().Format(time.RFC3339),
		RawResponse: payload,
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}

	s.mem.SetDefault(fingerprint, e)
	return os.WriteFile(s.path(fingerprint), data, 0644)
}

func (s *Store) freshPayload(e entry) (map[string]any, bool) {
	if e.Timestamp == "" || e.RawResponse == nil {
		return nil, false
	}

	ts, err := time.Parse(time.RFC3339, e.Timestamp)
	if err != nil {
		return nil, false
	}

	if s.now().UTC().Sub(ts) > TTL {
		return nil, false
	}
	return e.RawResponse, true
}

func (s *Store) path(fingerprint string) string {
	return filepath.Join(s.dir, fingerprint+".json")
}
