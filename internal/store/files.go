package store

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// FileHandle is an openable, session-only reference to uploaded content
type FileHandle struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContentType  string    `json:"contentType"`
	Size         int       `json:"size"`
	RegisteredAt time.Time `json:"registeredAt"`
	content      []byte
}

// Open returns a reader over the registered content
func (h FileHandle) Open() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(h.content))
}

// FileRegistry maps ids to file handles for the life of the process.
// It is never persisted.
type FileRegistry struct {
	mu      sync.RWMutex
	handles map[string]FileHandle
}

// NewFileRegistry returns an empty registry
func NewFileRegistry() *FileRegistry {
	return &FileRegistry{handles: make(map[string]FileHandle)}
}

// Register stores content under id, replacing any previous handle
func (r *FileRegistry) Register(id, name string, content []byte) FileHandle {
	handle := FileHandle{
		ID:           id,
		Name:         name,
		ContentType:  mimetype.Detect(content).String(),
		Size:         len(content),
		RegisteredAt: time.Now(),
		content:      append([]byte(nil), content...),
	}

	r.mu.Lock()
	r.handles[id] = handle
	r.mu.Unlock()

	return handle
}

// Lookup returns the handle registered under id
func (r *FileRegistry) Lookup(id string) (FileHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handle, ok := r.handles[id]
	return handle, ok
}

// Len returns the number of live handles
func (r *FileRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}
