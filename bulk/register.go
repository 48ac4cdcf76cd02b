package bulk

import (
	"fmt"

	"github.com/google/uuid"
)

// Mode controls how a batch lands in the store.
type Mode int

const (
	// ModeAppend upserts the batch, leaving other datasets in place.
	ModeAppend Mode = iota
	// ModeCreate drops every dataset under the batch's store id first.
	ModeCreate
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAppend:
		return "append"
	case ModeCreate:
		return "create"
	default:
		return "unknown"
	}
}

// Register accumulates datasets for one batched write. An object's array
// attributes are registered individually and committed in a single
// transaction, so all of its arrays land (or fail) as one unit.
type Register struct {
	storeID uuid.UUID
	entries []registerEntry
}

type registerEntry struct {
	owner uuid.UUID
	tag   string
	arr   Array
}

// NewRegister creates a batch writer for the given external store identity.
func NewRegister(storeID uuid.UUID) *Register {
	return &Register{storeID: storeID}
}

// Dataset adds one array to the batch under (owner, tag). Registering the
// same (owner, tag) twice keeps the later value.
func (r *Register) Dataset(owner uuid.UUID, tag string, arr Array) {
	for i, e := range r.entries {
		if e.owner == owner && e.tag == tag {
			r.entries[i].arr = arr
			return
		}
	}
	r.entries = append(r.entries, registerEntry{owner: owner, tag: tag, arr: arr})
}

// Len returns the number of datasets registered.
func (r *Register) Len() int {
	return len(r.entries)
}

// Write commits every registered dataset to the target store in one
// transaction and refreshes the store's cache for the written entries.
func (r *Register) Write(target *Store, mode Mode) error {
	tx, err := target.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin batch write: %w", err)
	}
	defer tx.Rollback()

	if mode == ModeCreate {
		if _, err := tx.Exec(`DELETE FROM datasets WHERE store_id = ?`, r.storeID.String()); err != nil {
			return fmt.Errorf("failed to clear store %s: %w", r.storeID, err)
		}
	}

	for _, e := range r.entries {
		payload := encodePayload(e.arr)
		_, err := tx.Exec(
			`INSERT INTO datasets (store_id, owner_uuid, tag, kind, count, payload)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (store_id, owner_uuid, tag)
			 DO UPDATE SET kind = excluded.kind, count = excluded.count, payload = excluded.payload`,
			r.storeID.String(), e.owner.String(), e.tag, int(e.arr.Kind()), e.arr.Len(), payload,
		)
		if err != nil {
			return fmt.Errorf("failed to write dataset %s: %w", DatasetPath(e.owner, e.tag), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch write: %w", err)
	}

	target.mu.Lock()
	if mode == ModeCreate {
		target.cache = make(map[cacheKey]Array, len(r.entries))
	}
	for _, e := range r.entries {
		target.cache[cacheKey{owner: e.owner, tag: e.tag}] = e.arr
	}
	target.mu.Unlock()
	return nil
}
