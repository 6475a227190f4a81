package json

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/drakos74/granulo/internal/storage"
)

// MemoryShard creates storages that keep the json documents of a run in memory.
// Documents are encoded on store, so later changes to the value are not visible.
func MemoryShard() storage.Shard {
	return func(run string) (storage.Persistence, error) {
		return NewMemoryStorage(run), nil
	}
}

// MemoryStorage keeps json documents by file name.
type MemoryStorage struct {
	run   string
	docs  map[string][]byte
	mutex *sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory storage for the run.
func NewMemoryStorage(run string) *MemoryStorage {
	return &MemoryStorage{
		run:   run,
		docs:  make(map[string][]byte),
		mutex: new(sync.RWMutex),
	}
}

func (m *MemoryStorage) Store(k storage.Key, value interface{}) error {
	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode '%s' for run '%s': %w", k.Path(), m.run, err)
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.docs[k.Path()] = bb
	return nil
}

func (m *MemoryStorage) Load(k storage.Key, value interface{}) error {
	m.mutex.RLock()
	bb, ok := m.docs[k.Path()]
	m.mutex.RUnlock()
	if !ok {
		return fmt.Errorf("no document '%s' for run '%s': %w", k.Path(), m.run, storage.NotFoundErr)
	}
	if err := json.Unmarshal(bb, value); err != nil {
		return fmt.Errorf("could not decode '%s': %w", k.Path(), storage.CouldNotLoadErr)
	}
	return nil
}

// Documents returns the names of the stored documents, as they would be written to disk.
func (m *MemoryStorage) Documents() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.docs))
	for n := range m.docs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
