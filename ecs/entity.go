package ecs

// EntityId packs the archetype id into the upper 32 bits and the slot index
// within that archetype into the lower 32 bits.
type EntityId uint64

// NewEntityId creates an EntityId from an archetype id and slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index within the archetype.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}
