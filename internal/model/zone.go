package model

import "github.com/iliyamo/smart-parking-system/internal/collection"

// DefaultCrossZonePenalty is applied when a request is satisfied outside its
// requested zone and the zone does not override the penalty.
const DefaultCrossZonePenalty = 50

// Zone is a node in the city proximity graph. It aggregates areas in
// creation order and keeps a directional neighbor set; mirroring an edge
// back from the neighbor is the registry's job, never implicit.
//
// Zones are configured once at startup and treated as immutable topology
// afterwards; only slot availability inside their areas changes.
type Zone struct {
	ID               string
	Name             string
	Areas            *collection.List[*Area]
	Adjacent         *collection.AdjacencyList
	CrossZonePenalty int
}

// NewZone creates a zone with no areas and no neighbors.
func NewZone(id, name string) *Zone {
	return &Zone{
		ID:               id,
		Name:             name,
		Areas:            collection.NewList[*Area](),
		Adjacent:         collection.NewAdjacencyList(),
		CrossZonePenalty: DefaultCrossZonePenalty,
	}
}

// AddArea appends an area in creation order.
func (z *Zone) AddArea(a *Area) {
	z.Areas.Append(a)
}

// AvailableSlots concatenates the available slots of every area in list
// order, so the first element is always the lowest (area, slot) index.
func (z *Zone) AvailableSlots() []*Slot {
	var out []*Slot
	for _, a := range z.Areas.Items() {
		out = append(out, a.AvailableSlots()...)
	}
	return out
}

// TotalSlots reports the number of slots across all areas.
func (z *Zone) TotalSlots() int {
	n := 0
	for _, a := range z.Areas.Items() {
		n += a.TotalSlots()
	}
	return n
}

// OccupiedSlots reports the number of unavailable slots across all areas.
func (z *Zone) OccupiedSlots() int {
	n := 0
	for _, a := range z.Areas.Items() {
		n += a.OccupiedSlots()
	}
	return n
}

// UtilizationRate reports occupied slots as a percentage of total slots.
func (z *Zone) UtilizationRate() float64 {
	total := z.TotalSlots()
	if total == 0 {
		return 0
	}
	return float64(z.OccupiedSlots()) / float64(total) * 100
}

// IsAdjacent reports whether the zone has a directed edge to id.
func (z *Zone) IsAdjacent(id string) bool { return z.Adjacent.IsAdjacent(id) }

// AdjacentZones returns neighbor ids in edge insertion order.
func (z *Zone) AdjacentZones() []string { return z.Adjacent.Neighbors() }
