// Package persistence saves and restores the working resume through a local store.
package persistence

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// StorageKey is the fixed key the working resume lives under
const StorageKey = "resumeData"

// Codec reads and writes ResumeData as JSON under StorageKey
type Codec struct {
	store storage.Store
	key   string
}

// NewCodec returns a codec over store using StorageKey
func NewCodec(store storage.Store) *Codec {
	return &Codec{store: store, key: StorageKey}
}

// Key returns the storage key in use
func (c *Codec) Key() string {
	return c.key
}

// Save serializes data and overwrites the stored value
func (c *Codec) Save(data *types.ResumeData) error {
	if data == nil {
		data = types.NewResumeData()
	}
	raw, err := json.Marshal(data.Clone().Normalize())
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	if err := c.store.Set(c.key, string(raw)); err != nil {
		return &StoreError{Op: "write", Key: c.key, Cause: err}
	}
	return nil
}

// SaveBestEffort saves data and logs instead of returning a failure.
// It reports whether the write succeeded.
func (c *Codec) SaveBestEffort(data *types.ResumeData) bool {
	if err := c.Save(data); err != nil {
		log.Printf("[persistence] save failed: %v", err)
		return false
	}
	return true
}

// Load returns the stored resume.
// A missing value yields (nil, nil); a value that is present but unusable
// yields (nil, *CorruptDataError).
func (c *Codec) Load() (*types.ResumeData, error) {
	raw, ok, err := c.store.Get(c.key)
	if err != nil {
		return nil, &StoreError{Op: "read", Key: c.key, Cause: err}
	}
	if !ok {
		return nil, nil
	}

	data, err := Decode([]byte(raw))
	if err != nil {
		return nil, &CorruptDataError{Key: c.key, Cause: err}
	}
	return data, nil
}

// LoadOrNil is Load with every failure collapsed into "nothing stored".
// Failures are logged.
func (c *Codec) LoadOrNil() *types.ResumeData {
	data, err := c.Load()
	if err != nil {
		log.Printf("[persistence] load failed, treating as absent: %v", err)
		return nil
	}
	return data
}

// Clear removes the stored resume
func (c *Codec) Clear() error {
	if err := c.store.Delete(c.key); err != nil {
		return &StoreError{Op: "delete", Key: c.key, Cause: err}
	}
	return nil
}

// Decode parses a serialized resume after checking its JSON shape.
// Missing lists come back empty rather than nil.
func Decode(raw []byte) (*types.ResumeData, error) {
	if err := schemas.ValidateResume(raw); err != nil {
		return nil, err
	}
	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume: %w", err)
	}
	return data.Normalize(), nil
}
