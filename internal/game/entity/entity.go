// Package entity tracks the actors placed in a level.
package entity

import (
	"sort"

	"github.com/Faultbox/gorge/internal/engine/scene"
	"github.com/Faultbox/gorge/pkg/math"
)

// Type represents the type of entity.
type Type uint8

const (
	TypePlayer Type = iota
	TypeMonster
	TypeProp
)

func (t Type) String() string {
	switch t {
	case TypePlayer:
		return "player"
	case TypeMonster:
		return "monster"
	case TypeProp:
		return "prop"
	default:
		return "unknown"
	}
}

// Entity is an actor backed by a scene node.
type Entity struct {
	ID       uint32
	Type     Type
	Name     string
	Model    string           // Asset path the node tree was instantiated from
	Node     scene.NodeHandle // Instance root
	Position math.Vec3        // World position as of the last Sync

	IsVisible bool
}

// NewEntity creates a new entity.
func NewEntity(id uint32, entityType Type) *Entity {
	return &Entity{
		ID:        id,
		Type:      entityType,
		IsVisible: true,
	}
}

// Manager manages all entities of one level.
type Manager struct {
	entities map[uint32]*Entity
	player   *Entity // Reference to local player
	playerID uint32  // Player entity ID
	nextID   uint32
}

// NewManager creates a new entity manager.
func NewManager() *Manager {
	return &Manager{
		entities: make(map[uint32]*Entity),
	}
}

// Spawn creates an entity for an instantiated node and assigns it an ID.
func (m *Manager) Spawn(entityType Type, name, model string, node scene.NodeHandle) *Entity {
	m.nextID++
	e := NewEntity(m.nextID, entityType)
	e.Name = name
	e.Model = model
	e.Node = node
	m.Add(e)
	return e
}

// Add adds an entity.
func (m *Manager) Add(e *Entity) {
	m.entities[e.ID] = e
	if e.ID > m.nextID {
		m.nextID = e.ID
	}
}

// Remove removes an entity.
func (m *Manager) Remove(id uint32) {
	delete(m.entities, id)
	if id == m.playerID {
		m.player = nil
		m.playerID = 0
	}
}

// Get returns an entity by ID.
func (m *Manager) Get(id uint32) *Entity {
	return m.entities[id]
}

// SetPlayer sets the local player entity.
func (m *Manager) SetPlayer(e *Entity) {
	m.player = e
	m.playerID = e.ID
	m.Add(e)
}

// Player returns the local player.
func (m *Manager) Player() *Entity {
	return m.player
}

// Sync copies each entity's world position from its scene node. Entities
// whose node is gone are dropped.
func (m *Manager) Sync(sc *scene.Scene) {
	for id, e := range m.entities {
		mt, ok := sc.GlobalTransform(e.Node)
		if !ok {
			m.Remove(id)
			continue
		}
		e.Position = mt.Translation()
	}
}

// All returns all entities ordered by ID.
func (m *Manager) All() []*Entity {
	result := make([]*Entity, 0, len(m.entities))
	for _, e := range m.entities {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// GetByType returns all entities of a specific type ordered by ID.
func (m *Manager) GetByType(entityType Type) []*Entity {
	result := make([]*Entity, 0)
	for _, e := range m.All() {
		if e.Type == entityType {
			result = append(result, e)
		}
	}
	return result
}

// Count returns the total number of entities.
func (m *Manager) Count() int {
	return len(m.entities)
}

// CountByType returns the number of entities of a specific type.
func (m *Manager) CountByType(entityType Type) int {
	count := 0
	for _, e := range m.entities {
		if e.Type == entityType {
			count++
		}
	}
	return count
}

// Clear removes all entities except the player.
func (m *Manager) Clear() {
	for id := range m.entities {
		if id != m.playerID {
			delete(m.entities, id)
		}
	}
}

// ClearAll removes all entities including the player.
func (m *Manager) ClearAll() {
	m.entities = make(map[uint32]*Entity)
	m.player = nil
	m.playerID = 0
	m.nextID = 0
}
