package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/chatlens/pkg/parser"
	"github.com/ccollicutt/chatlens/pkg/records"
)

// ErrUploadNotFound is returned for ids that were never issued, were
// deleted, or were evicted.
var ErrUploadNotFound = errors.New("upload not found")

// Upload is a parsed chat export held in memory.
type Upload struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Order     parser.DateOrder `json:"date_order"`
	Store     *records.Store   `json:"-"`
}

// Registry keeps at most a fixed number of uploads, evicting the oldest
// when full. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	limit   int
	order   []string
	uploads map[string]*Upload
}

// NewRegistry creates a registry holding up to limit uploads.
func NewRegistry(limit int) *Registry {
	if limit < 1 {
		limit = 1
	}
	return &Registry{
		limit:   limit,
		uploads: make(map[string]*Upload),
	}
}

// Add stores a parsed export under a fresh id. The evicted upload, if any,
// is returned.
func (r *Registry) Add(name string, order parser.DateOrder, store *records.Store) (added, evicted *Upload) {
	u := &Upload{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Order:     order,
		Store:     store,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.order) >= r.limit {
		oldest := r.order[0]
		r.order = r.order[1:]
		evicted = r.uploads[oldest]
		delete(r.uploads, oldest)
	}
	r.order = append(r.order, u.ID)
	r.uploads[u.ID] = u
	return u, evicted
}

// Get returns the upload with id.
func (r *Registry) Get(id string) (*Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.uploads[id]
	if !ok {
		return nil, ErrUploadNotFound
	}
	return u, nil
}

// Delete removes the upload with id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.uploads[id]; !ok {
		return ErrUploadNotFound
	}
	delete(r.uploads, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of uploads held.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
