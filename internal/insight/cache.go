package insight

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"equipment-feasibility-backend/internal/feasibility"
)

const dayLayout = "2006-01-02"

// Cache holds computed snapshots keyed by source fingerprint and reference day.
type Cache struct {
	store *cache.Cache
	ttl   time.Duration
}

// NewCache creates a snapshot cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		store: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (c *Cache) Get(key string) (*Snapshot, bool) {
	v, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	return v.(*Snapshot), true
}

func (c *Cache) Put(key string, s *Snapshot) {
	c.store.Set(key, s, c.ttl)
}

// Invalidate drops every cached snapshot.
func (c *Cache) Invalidate() {
	c.store.Flush()
}

func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// TablesFingerprint hashes the content of the three source tables.
func TablesFingerprint(t feasibility.Tables) (string, error) {
	h := sha256.New()
	if err := json.NewEncoder(h).Encode(t); err != nil {
		return "", fmt.Errorf("failed to fingerprint tables: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Key combines a source fingerprint with the reference day. Two requests on
// the same day against the same data share one snapshot.
func Key(sourceFingerprint string, day time.Time) string {
	return sourceFingerprint + "@" + day.Format(dayLayout)
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
