package pipeline

import (
	"sort"
	"sync"
)

// Source is the content of an emitted asset.
type Source interface {
	Bytes() []byte
	Size() int
}

// RawSource is a Source backed by a byte slice.
type RawSource []byte

func (s RawSource) Bytes() []byte { return s }

func (s RawSource) Size() int { return len(s) }

// AssetSetter registers content under an output-relative key.
type AssetSetter interface {
	Set(name string, src Source)
}

// AssetMap maps output-relative, slash-separated paths to their content.
// It is safe for concurrent use.
type AssetMap struct {
	mu     sync.RWMutex
	assets map[string]Source
}

// NewAssetMap returns an empty asset map.
func NewAssetMap() *AssetMap {
	return &AssetMap{assets: make(map[string]Source)}
}

// Set stores src under name, replacing any existing entry.
func (m *AssetMap) Set(name string, src Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[name] = src
}

// Get returns the asset stored under name.
func (m *AssetMap) Get(name string) (Source, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.assets[name]
	return src, ok
}

// Names returns the asset keys in sorted order.
func (m *AssetMap) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.assets))
	for name := range m.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of assets.
func (m *AssetMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assets)
}
