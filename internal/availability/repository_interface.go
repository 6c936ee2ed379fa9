package availability

import (
	"context"
	"time"
)

type Repository interface {
	// CreateSlot overlap-checks against the court's other slots and inserts,
	// all under the per-court schedule lock.
	CreateSlot(ctx context.Context, courtID int, start, end time.Time, blocked bool, reason *string) (*Slot, error)
	GetSlotByID(ctx context.Context, id int) (*Slot, error)
	ListSlotsByCourt(ctx context.Context, courtID int) ([]Slot, error)
	// UpdateSlot re-runs the overlap check excluding the slot itself.
	UpdateSlot(ctx context.Context, id int, start, end time.Time, blocked bool, reason *string) (*Slot, error)
	DeleteSlot(ctx context.Context, id int) error
}
