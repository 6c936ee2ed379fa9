package availability

import "time"

// Slot is an owner-declared window on a court's calendar. A blocked slot is a
// blackout: no booking may intersect it.
type Slot struct {
	ID            int       `db:"id" json:"id"`
	CourtID       int       `db:"court_id" json:"court_id"`
	StartDatetime time.Time `db:"start_datetime" json:"start_datetime"`
	EndDatetime   time.Time `db:"end_datetime" json:"end_datetime"`
	Blocked       bool      `db:"blocked" json:"blocked"`
	Reason        *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateSlotRequest struct {
	StartDatetime string  `json:"start_datetime" binding:"required"`
	EndDatetime   string  `json:"end_datetime" binding:"required"`
	Reason        *string `json:"reason,omitempty" binding:"omitempty,max=500"`
}

type UpdateSlotRequest struct {
	StartDatetime *string `json:"start_datetime,omitempty"`
	EndDatetime   *string `json:"end_datetime,omitempty"`
	Blocked       *bool   `json:"blocked,omitempty"`
	Reason        *string `json:"reason,omitempty" binding:"omitempty,max=500"`
}
