package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MockShard creates shards that keep their values in memory.
// The created storages are kept in the returned map by run.
func MockShard() (Shard, map[string]*MockStorage) {
	storages := make(map[string]*MockStorage)
	mutex := new(sync.Mutex)
	return func(run string) (Persistence, error) {
		mutex.Lock()
		defer mutex.Unlock()
		s := NewMockStorage()
		storages[run] = s
		return s, nil
	}, storages
}

// MockStorage keeps the stored values as given.
type MockStorage struct {
	Elements map[Key]interface{}
}

func NewMockStorage() *MockStorage {
	return &MockStorage{Elements: make(map[Key]interface{})}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	m.Elements[k] = value
	return nil
}

// Load round-trips the stored value through json into the given reference.
func (m *MockStorage) Load(k Key, value interface{}) error {
	v, ok := m.Elements[k]
	if !ok {
		return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
	}
	bb, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not marshal '%v': %w", k, CouldNotLoadErr)
	}
	if err := json.Unmarshal(bb, value); err != nil {
		return fmt.Errorf("could not unmarshal '%v': %w", k, CouldNotLoadErr)
	}
	return nil
}
