package preview

import (
	"sync"

	"github.com/google/uuid"
)

// URLPrefix is the path under which handles are served back to the browser.
const URLPrefix = "/previews/"

// Handle is a revocable reference to an in-memory file shown before upload.
type Handle struct {
	ID          uuid.UUID
	Filename    string
	ContentType string

	data     []byte
	registry *Registry
	once     sync.Once
}

// URL returns the displayable reference for the handle.
func (h *Handle) URL() string {
	return URLPrefix + h.ID.String()
}

// Data returns the bytes the handle displays.
func (h *Handle) Data() []byte {
	return h.data
}

// Release revokes the handle so its URL stops resolving. Calling it more
// than once is a no-op.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.registry.remove(h.ID)
	})
}

// Registry tracks every live preview handle.
type Registry struct {
	mu      sync.RWMutex
	handles map[uuid.UUID]*Handle
}

func NewRegistry() *Registry {
	return &Registry{handles: make(map[uuid.UUID]*Handle)}
}

// Create registers a new handle for the given file contents. A nil registry
// hands out detached handles whose URL never resolves.
func (r *Registry) Create(filename, contentType string, data []byte) *Handle {
	h := &Handle{
		ID:          uuid.New(),
		Filename:    filename,
		ContentType: contentType,
		data:        data,
		registry:    r,
	}
	if r == nil {
		return h
	}

	r.mu.Lock()
	r.handles[h.ID] = h
	r.mu.Unlock()
	return h
}

// Get returns a live handle by ID.
func (r *Registry) Get(id uuid.UUID) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handles[id]
	return h, ok
}

// Outstanding reports how many handles have not been released yet.
func (r *Registry) Outstanding() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

func (r *Registry) remove(id uuid.UUID) {
	if r == nil {
		return
	}
	r.mu.Lock()
	delete(r.handles, id)
	r.mu.Unlock()
}
