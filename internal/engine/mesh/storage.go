package mesh

import (
	"github.com/Faultbox/gorge/internal/engine/pool"
)

// Storage is the shared pool of surface buffers. Several mesh nodes
// instantiated from the same model may reference the same SurfaceData.
type Storage struct {
	surfaces *pool.Pool[SurfaceData]
}

// NewStorage creates an empty surface storage.
func NewStorage() *Storage {
	return &Storage{surfaces: pool.New[SurfaceData]()}
}

// Upload stores a buffer pair and returns its handle.
func (s *Storage) Upload(data SurfaceData) DataHandle {
	return s.surfaces.Spawn(data)
}

// Surface borrows the buffers behind h for reading.
func (s *Storage) Surface(h DataHandle) (*SurfaceData, bool) {
	return s.surfaces.Borrow(h)
}

// Release drops the buffers behind h. Handles held by nodes become stale.
func (s *Storage) Release(h DataHandle) bool {
	_, ok := s.surfaces.Free(h)
	return ok
}

// Len returns the number of stored surfaces.
func (s *Storage) Len() int {
	return s.surfaces.Len()
}
