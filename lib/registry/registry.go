// Package registry tracks the opaque IDs and foreign-key relationships of
// every entity that ends up in a generated EDM document. A Registry lives
// for exactly one generation call; callers construct a fresh one per
// request and thread it through the section handlers explicitly.
package registry

import (
	"fmt"
	"math/rand"
	"time"
)

const idChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IDLength is the generated ID width. The ID space (62^5) is large enough
// that the collision retry loop needs no explicit cap.
const IDLength = 5

type relKey struct {
	ParentType string
	ParentID   string
	ChildType  string
}

type entityKey struct {
	Type string
	ID   string
}

type Registry struct {
	rng *rand.Rand

	// ids preserves registration order per type; owner enforces that the
	// first-registered ID of a type is the one the scenario references
	ids map[string][]string

	// owner maps every known ID to the single entity type that owns it
	owner map[string]string

	data          map[entityKey]interface{}
	relationships map[relKey][]string
	relOrder      []relKey

	// type conflicts detected at registration time, reported by ValidateReferences
	conflicts []error
}

func NewRegistry() *Registry {
	return &Registry{
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		ids:           map[string][]string{},
		owner:         map[string]string{},
		data:          map[entityKey]interface{}{},
		relationships: map[relKey][]string{},
	}
}

// GenerateID produces a short random alphanumeric ID not present under any
// entity type, and registers it under entityType.
func (self *Registry) GenerateID(entityType string) string {
	id := self.randomID()
	for self.Exists(id) {
		id = self.randomID()
	}
	self.register(entityType, id)
	return id
}

func (self *Registry) randomID() string {
	b := make([]byte, IDLength)
	for i := range b {
		b[i] = idChars[self.rng.Intn(len(idChars))]
	}
	return string(b)
}

// RegisterEntity records an externally-supplied ID together with an opaque
// data blob for later attribute lookup (e.g. an assembly's name when its
// case element is built).
func (self *Registry) RegisterEntity(entityType, id string, data interface{}) {
	self.register(entityType, id)
	if data != nil {
		self.data[entityKey{entityType, id}] = data
	}
}

func (self *Registry) register(entityType, id string) {
	if owner, ok := self.owner[id]; ok {
		if owner != entityType {
			self.conflicts = append(self.conflicts,
				fmt.Errorf("id %q is registered under both %s and %s", id, owner, entityType))
		}
		return
	}
	self.owner[id] = entityType
	self.ids[entityType] = append(self.ids[entityType], id)
}

// Exists reports whether the ID is registered under any entity type.
func (self *Registry) Exists(id string) bool {
	_, ok := self.owner[id]
	return ok
}

// IDs returns the IDs registered for the type, in registration order.
func (self *Registry) IDs(entityType string) []string {
	return self.ids[entityType]
}

// FirstID returns the first-registered ID for the type, or ""
func (self *Registry) FirstID(entityType string) string {
	ids := self.ids[entityType]
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// EntityData returns the blob stored by RegisterEntity, or nil
func (self *Registry) EntityData(entityType, id string) interface{} {
	return self.data[entityKey{entityType, id}]
}

// RegisterRelationship appends a directed parent->child edge.
func (self *Registry) RegisterRelationship(parentType, parentID, childType, childID string) {
	key := relKey{parentType, parentID, childType}
	if _, ok := self.relationships[key]; !ok {
		self.relOrder = append(self.relOrder, key)
	}
	self.relationships[key] = append(self.relationships[key], childID)
}

// GetChildren returns the child IDs recorded for (parentType, parentID, childType).
func (self *Registry) GetChildren(parentType, parentID, childType string) []string {
	return self.relationships[relKey{parentType, parentID, childType}]
}

// ParentID finds the parent of childID across all (parentType, *, childType)
// edges, or "" when the child is unlinked.
func (self *Registry) ParentID(parentType, childType, childID string) string {
	for _, key := range self.relOrder {
		if key.ParentType != parentType || key.ChildType != childType {
			continue
		}
		for _, cid := range self.relationships[key] {
			if cid == childID {
				return key.ParentID
			}
		}
	}
	return ""
}

// ValidateReferences confirms that both endpoints of every registered
// relationship resolve to an ID registered under the expected type.
// Errors are aggregated, not fail-fast, so the caller sees every broken
// reference at once.
func (self *Registry) ValidateReferences() []error {
	errs := []error{}
	errs = append(errs, self.conflicts...)

	for _, key := range self.relOrder {
		if self.owner[key.ParentID] != key.ParentType {
			errs = append(errs, fmt.Errorf(
				"relationship %s->%s: parent id %q is not a registered %s",
				key.ParentType, key.ChildType, key.ParentID, key.ParentType))
		}
		for _, cid := range self.relationships[key] {
			if self.owner[cid] != key.ChildType {
				errs = append(errs, fmt.Errorf(
					"relationship %s(%s)->%s: child id %q is not a registered %s",
					key.ParentType, key.ParentID, key.ChildType, cid, key.ChildType))
			}
		}
	}
	return errs
}
