package model

import "github.com/iliyamo/smart-parking-system/internal/collection"

// Area is a fixed-capacity group of slots within a zone. The capacity is set
// at creation; slots are appended until the backing array is full, after
// which further adds fail with collection.ErrCapacityExceeded.
type Area struct {
	ID     string
	ZoneID string
	Name   string
	Slots  *collection.Array[*Slot]
}

// NewArea creates an empty area with a fixed slot capacity.
func NewArea(id, zoneID, name string, capacity int) *Area {
	return &Area{ID: id, ZoneID: zoneID, Name: name, Slots: collection.NewArray[*Slot](capacity)}
}

// AddSlot appends a slot in creation order.
func (a *Area) AddSlot(s *Slot) error {
	return a.Slots.Append(s)
}

// AvailableSlots returns the available slots in creation order.
func (a *Area) AvailableSlots() []*Slot {
	var out []*Slot
	for _, s := range a.Slots.Items() {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}

// SlotByID returns the slot with the given id, or nil.
func (a *Area) SlotByID(id string) *Slot {
	for _, s := range a.Slots.Items() {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// TotalSlots reports the number of created slots.
func (a *Area) TotalSlots() int { return a.Slots.Len() }

// OccupiedSlots reports the number of unavailable slots.
func (a *Area) OccupiedSlots() int {
	n := 0
	for _, s := range a.Slots.Items() {
		if !s.Available {
			n++
		}
	}
	return n
}
