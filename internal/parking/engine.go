package parking

import (
	"github.com/iliyamo/smart-parking-system/internal/collection"
	"github.com/iliyamo/smart-parking-system/internal/model"
)

// AllocationEngine resolves a requested zone to a concrete free slot.
//
// Search strategy, in order:
//  1. the requested zone itself (no penalty),
//  2. its neighbors in edge insertion order (cross-zone, penalty),
//  3. every remaining zone in creation order (cross-zone, penalty).
//
// Within a zone the first available slot in (area, slot) creation order
// wins, so given identical topology and history the engine is fully
// deterministic.
type AllocationEngine struct {
	zones     *collection.HashMap[*model.Zone]
	zoneOrder *collection.List[string]
}

// NewAllocationEngine creates an engine over the shared zone registry.
// zoneOrder lists zone ids in creation order; the hash map alone iterates
// in bucket order, which would make the fallback scan nondeterministic.
func NewAllocationEngine(zones *collection.HashMap[*model.Zone], zoneOrder *collection.List[string]) *AllocationEngine {
	return &AllocationEngine{zones: zones, zoneOrder: zoneOrder}
}

// FindSlot returns the slot chosen for requestedZone, the id of the zone it
// lives in, and whether the allocation is cross-zone. The slot is not
// marked unavailable here; committing the allocation is the caller's job.
// A nil slot means the search exhausted every zone.
func (e *AllocationEngine) FindSlot(requestedZone string) (*model.Slot, string, bool) {
	tried := map[string]bool{requestedZone: true}

	// Step 1: same-zone preference.
	if zone, ok := e.zones.Get(requestedZone); ok {
		if free := zone.AvailableSlots(); len(free) > 0 {
			return free[0], requestedZone, false
		}

		// Step 2: neighbors, in the order their edges were inserted.
		for _, adjID := range zone.AdjacentZones() {
			tried[adjID] = true
			adj, ok := e.zones.Get(adjID)
			if !ok {
				continue
			}
			if free := adj.AvailableSlots(); len(free) > 0 {
				return free[0], adjID, true
			}
		}
	}

	// Step 3: any zone not yet tried, in creation order.
	for _, zoneID := range e.zoneOrder.Items() {
		if tried[zoneID] {
			continue
		}
		zone, ok := e.zones.Get(zoneID)
		if !ok {
			continue
		}
		if free := zone.AvailableSlots(); len(free) > 0 {
			return free[0], zoneID, true
		}
	}

	return nil, "", false
}

// FindSlotByID scans every zone in creation order for the slot with the
// given id. Returns nil when no such slot exists. O(zones * areas * slots).
func (e *AllocationEngine) FindSlotByID(slotID string) *model.Slot {
	for _, zoneID := range e.zoneOrder.Items() {
		zone, ok := e.zones.Get(zoneID)
		if !ok {
			continue
		}
		for _, area := range zone.Areas.Items() {
			if s := area.SlotByID(slotID); s != nil {
				return s
			}
		}
	}
	return nil
}
