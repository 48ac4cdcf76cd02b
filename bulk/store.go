package bulk

import (
	"database/sql"
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // register the sqlite3 database/sql driver
)

// ErrNotFound is returned when a dataset is not present in the store.
var ErrNotFound = errors.New("dataset not found")

// IsNotFound returns true if the error is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

const createDatasetsTable = `
CREATE TABLE IF NOT EXISTS datasets (
	store_id   TEXT NOT NULL,
	owner_uuid TEXT NOT NULL,
	tag        TEXT NOT NULL,
	kind       INTEGER NOT NULL,
	count      INTEGER NOT NULL,
	payload    BLOB NOT NULL,
	PRIMARY KEY (store_id, owner_uuid, tag)
)`

// Store is a sqlite-backed array store. It owns the context-wide array cache,
// keyed by (owner identity, tag): every object resolving the same identity
// observes the same cached Array value.
type Store struct {
	db    *sql.DB
	mu    sync.RWMutex
	cache map[cacheKey]Array
}

type cacheKey struct {
	owner uuid.UUID
	tag   string
}

// Open opens (or creates) an array store at the given path. The path
// ":memory:" yields a transient in-memory store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open array store: %w", err)
	}
	store, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing database handle as an array store, creating the
// dataset table if needed.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(createDatasetsTable); err != nil {
		return nil, fmt.Errorf("failed to initialize array store schema: %w", err)
	}
	return &Store{
		db:    db,
		cache: make(map[cacheKey]Array),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fetch returns the dataset addressed by key, loading it into the cache on
// first access. The attribute name is carried for error context only; cache
// identity is (owner, tag). Absent datasets yield ErrNotFound.
func (s *Store) Fetch(key Key, kind Kind, owner uuid.UUID, attrName string) (Array, error) {
	tag := path.Base(key.Path)

	s.mu.RLock()
	cached, ok := s.cache[cacheKey{owner: owner, tag: tag}]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var (
		storedKind int
		count      int
		payload    []byte
	)
	row := s.db.QueryRow(
		`SELECT kind, count, payload FROM datasets WHERE store_id = ? AND owner_uuid = ? AND tag = ?`,
		key.StoreID.String(), owner.String(), tag,
	)
	if err := row.Scan(&storedKind, &count, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Array{}, fmt.Errorf("%w: %s (attribute %s)", ErrNotFound, key.Path, attrName)
		}
		return Array{}, fmt.Errorf("failed to read dataset %s: %w", key.Path, err)
	}
	if Kind(storedKind) != kind {
		return Array{}, fmt.Errorf("dataset %s is %s, attribute %s wants %s",
			key.Path, Kind(storedKind), attrName, kind)
	}

	arr, err := decodePayload(kind, count, payload)
	if err != nil {
		return Array{}, fmt.Errorf("dataset %s: %w", key.Path, err)
	}

	s.mu.Lock()
	s.cache[cacheKey{owner: owner, tag: tag}] = arr
	s.mu.Unlock()
	return arr, nil
}

// Cached returns the cached array for (owner, tag) without touching storage.
func (s *Store) Cached(owner uuid.UUID, tag string) (Array, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	arr, ok := s.cache[cacheKey{owner: owner, tag: tag}]
	return arr, ok
}
