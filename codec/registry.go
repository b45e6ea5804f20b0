package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the available pyramid codecs
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec // key can be either name or UID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

var defaultRegistry = NewRegistry()

// Register registers a codec in the default registry
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get retrieves a codec from the default registry by name or UID
func Get(nameOrUID string) (Codec, error) {
	return defaultRegistry.Get(nameOrUID)
}

// List returns all codecs of the default registry
func List() []Codec {
	return defaultRegistry.List()
}

// Register registers a codec using both its name and UID, replacing any
// codec registered under either key
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[codec.Name()] = codec
	r.codecs[codec.UID()] = codec
}

// Get retrieves a codec by name or UID
func (r *Registry) Get(nameOrUID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codec, ok := r.codecs[nameOrUID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", nameOrUID, ErrCodecNotFound)
	}
	return codec, nil
}

// List returns all registered codecs (deduplicated), sorted by name
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Codec]bool)
	codecs := make([]Codec, 0)

	for _, codec := range r.codecs {
		if !seen[codec] {
			seen[codec] = true
			codecs = append(codecs, codec)
		}
	}

	sort.Slice(codecs, func(i, j int) bool {
		return codecs[i].Name() < codecs[j].Name()
	})
	return codecs
}
