package parking

import (
	"fmt"

	"github.com/iliyamo/smart-parking-system/internal/collection"
	"github.com/iliyamo/smart-parking-system/internal/model"
)

// RollbackManager keeps the bounded LIFO history of mutating operations and
// drives their inversion. Each record carries full before-images, so
// undoing is a restore, never a recomputation.
type RollbackManager struct {
	history *collection.Stack[*model.Operation]
}

// UndoneOperation describes one inverted operation, in the order applied.
type UndoneOperation struct {
	Type      model.OperationType `json:"type"`
	RequestID string              `json:"request_id"`
	SlotID    string              `json:"slot_id,omitempty"`
}

// NewRollbackManager creates a manager whose history holds at most
// maxHistory operations.
func NewRollbackManager(maxHistory int) *RollbackManager {
	return &RollbackManager{history: collection.NewStack[*model.Operation](maxHistory)}
}

// Record pushes an operation onto the history. A full history is surfaced
// as ErrCapacityExceeded; the caller decides whether that may fail the
// mutation it belongs to.
func (m *RollbackManager) Record(op *model.Operation) error {
	return m.history.Push(op)
}

// Rollback pops min(k, size) operations and applies each inverse in pop
// order, most recent first. Restoration is driven entirely by the recorded
// before-images:
//   - a nil request image means the operation created the request, so the
//     inverse deletes it from the registry;
//   - a non-nil slot image overwrites the slot's availability and occupant.
func (m *RollbackManager) Rollback(k int, sys *System) ([]UndoneOperation, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: rollback count must not be negative", ErrInvalidArgument)
	}
	if k > m.history.Len() {
		k = m.history.Len()
	}

	undone := make([]UndoneOperation, 0, k)
	for i := 0; i < k; i++ {
		op, ok := m.history.Pop()
		if !ok {
			break
		}

		if op.RequestBefore == nil {
			// Inverse of create: the request did not exist before.
			sys.requests.Delete(op.RequestID)
		} else if req, ok := sys.requests.Get(op.RequestID); ok {
			req.Restore(*op.RequestBefore)
		}

		if op.SlotBefore != nil && op.SlotID != "" {
			if slot := sys.engine.FindSlotByID(op.SlotID); slot != nil {
				slot.Restore(*op.SlotBefore)
			}
		}

		undone = append(undone, UndoneOperation{
			Type:      op.Type,
			RequestID: op.RequestID,
			SlotID:    op.SlotID,
		})
	}
	return undone, nil
}

// RecentOperations returns the top min(n, size) records, most recent first,
// without popping. Read-only peek for history display.
func (m *RollbackManager) RecentOperations(n int) []*model.Operation {
	return m.history.GetRecent(n)
}

// HistorySize reports the number of recorded operations.
func (m *RollbackManager) HistorySize() int {
	return m.history.Len()
}
