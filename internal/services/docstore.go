package services

import (
	"fmt"
	"hash/fnv"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yungbote/elderbridge-backend/internal/logger"
)

// Category is the closed set of content types the knowledge store accepts.
type Category string

const (
	CategoryNotes     Category = "structured-notes"
	CategoryNarrative Category = "narrative"
	CategoryMedia     Category = "media"
)

// textCategories is the lookup priority order when a single-file filter is
// resolved across categories: structured notes win over narrative documents.
var textCategories = []Category{CategoryNotes, CategoryNarrative}

func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryNotes, CategoryNarrative, CategoryMedia:
		return Category(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

func (c Category) IsText() bool {
	return c == CategoryNotes || c == CategoryNarrative
}

// ScopeKey isolates one tenant's one profile's one named upload. It is a
// struct key on purpose: the source system concatenated the triple with a
// delimiter, which collides when a filename contains the delimiter.
type ScopeKey struct {
	UserID   string
	ElderID  string
	Filename string
}

// DocEntry is a stored item: extracted text for the text categories, a
// filesystem path for media. Entries live for the process lifetime only;
// durable metadata is the CareFile table's concern.
type DocEntry struct {
	Category Category
	Text     string
	Path     string
	MimeType string
	StoredAt time.Time
}

// ScopedEntry is the listing view of a stored item.
type ScopedEntry struct {
	Filename string    `json:"filename"`
	Category Category  `json:"category"`
	MimeType string    `json:"mime_type"`
	StoredAt time.Time `json:"stored_at"`
}

// TextEntry is what the context assembler consumes.
type TextEntry struct {
	Filename string
	Category Category
	Text     string
}

type DocumentStore interface {
	Put(scope ScopeKey, entry DocEntry) error
	Get(scope ScopeKey, category Category) (DocEntry, error)
	// Delete is idempotent. For media entries the backing file is removed
	// too; a failed file removal is logged, never fatal.
	Delete(scope ScopeKey, category Category) error
	List(userID, elderID string) []ScopedEntry
	// FindText resolves a filename across the text categories in priority
	// order.
	FindText(scope ScopeKey) (TextEntry, bool)
	// TextEntries returns every text entry in (userID, elderID) scope sorted
	// by category then filename, so context assembly is deterministic.
	TextEntries(userID, elderID string) []TextEntry
	MediaEntries(userID, elderID string) []ScopedEntry
}

const docStoreShards = 16

type storeKey struct {
	scope    ScopeKey
	category Category
}

type docStoreShard struct {
	mu      sync.RWMutex
	entries map[storeKey]DocEntry
}

// shardedDocStore partitions entries by tenant so concurrent requests from
// unrelated users never contend on the same lock.
type shardedDocStore struct {
	log    *logger.Logger
	shards [docStoreShards]*docStoreShard
}

func NewDocumentStore(log *logger.Logger) DocumentStore {
	s := &shardedDocStore{log: log.With("service", "DocumentStore")}
	for i := range s.shards {
		s.shards[i] = &docStoreShard{entries: map[storeKey]DocEntry{}}
	}
	return s
}

func (s *shardedDocStore) shard(userID string) *docStoreShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return s.shards[h.Sum32()%docStoreShards]
}

func (s *shardedDocStore) Put(scope ScopeKey, entry DocEntry) error {
	if _, err := ParseCategory(string(entry.Category)); err != nil {
		return err
	}
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now()
	}
	shard := s.shard(scope.UserID)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.entries[storeKey{scope: scope, category: entry.Category}] = entry
	return nil
}

func (s *shardedDocStore) Get(scope ScopeKey, category Category) (DocEntry, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return DocEntry{}, err
	}
	shard := s.shard(scope.UserID)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	entry, ok := shard.entries[storeKey{scope: scope, category: category}]
	if !ok {
		return DocEntry{}, ErrNotFound
	}
	return entry, nil
}

func (s *shardedDocStore) Delete(scope ScopeKey, category Category) error {
	if _, err := ParseCategory(string(category)); err != nil {
		return err
	}
	shard := s.shard(scope.UserID)
	shard.mu.Lock()
	entry, ok := shard.entries[storeKey{scope: scope, category: category}]
	delete(shard.entries, storeKey{scope: scope, category: category})
	shard.mu.Unlock()

	if ok && entry.Category == CategoryMedia && entry.Path != "" {
		if err := os.Remove(entry.Path); err != nil && !os.IsNotExist(err) {
			s.log.Warn("Could not remove media file", "path", entry.Path, "error", err)
		}
	}
	return nil
}

func (s *shardedDocStore) List(userID, elderID string) []ScopedEntry {
	shard := s.shard(userID)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	var out []ScopedEntry
	for key, entry := range shard.entries {
		if key.scope.UserID != userID || key.scope.ElderID != elderID {
			continue
		}
		out = append(out, ScopedEntry{
			Filename: key.scope.Filename,
			Category: entry.Category,
			MimeType: entry.MimeType,
			StoredAt: entry.StoredAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return categoryRank(out[i].Category) < categoryRank(out[j].Category)
		}
		return out[i].Filename < out[j].Filename
	})
	return out
}

func (s *shardedDocStore) FindText(scope ScopeKey) (TextEntry, bool) {
	shard := s.shard(scope.UserID)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	for _, cat := range textCategories {
		if entry, ok := shard.entries[storeKey{scope: scope, category: cat}]; ok {
			return TextEntry{Filename: scope.Filename, Category: cat, Text: entry.Text}, true
		}
	}
	return TextEntry{}, false
}

func (s *shardedDocStore) TextEntries(userID, elderID string) []TextEntry {
	shard := s.shard(userID)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	var out []TextEntry
	for key, entry := range shard.entries {
		if key.scope.UserID != userID || key.scope.ElderID != elderID || !entry.Category.IsText() {
			continue
		}
		out = append(out, TextEntry{
			Filename: key.scope.Filename,
			Category: entry.Category,
			Text:     entry.Text,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return categoryRank(out[i].Category) < categoryRank(out[j].Category)
		}
		return out[i].Filename < out[j].Filename
	})
	return out
}

func (s *shardedDocStore) MediaEntries(userID, elderID string) []ScopedEntry {
	shard := s.shard(userID)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	var out []ScopedEntry
	for key, entry := range shard.entries {
		if key.scope.UserID != userID || key.scope.ElderID != elderID || entry.Category != CategoryMedia {
			continue
		}
		out = append(out, ScopedEntry{
			Filename: key.scope.Filename,
			Category: entry.Category,
			MimeType: entry.MimeType,
			StoredAt: entry.StoredAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

func categoryRank(c Category) int {
	switch c {
	case CategoryNotes:
		return 0
	case CategoryNarrative:
		return 1
	default:
		return 2
	}
}
