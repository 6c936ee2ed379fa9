package facility

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Facility struct {
	ID        int       `db:"id" json:"id"`
	OwnerID   int       `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	Location  string    `db:"location" json:"location"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Court struct {
	ID              int       `db:"id" json:"id"`
	FacilityID      int       `db:"facility_id" json:"facility_id"`
	Name            string    `db:"name" json:"name"`
	Sport           string    `db:"sport" json:"sport"`
	HourlyRateCents int64     `db:"hourly_rate_cents" json:"hourly_rate_cents"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// CourtWithFacility carries the facility fields the reservation engine needs
// to decide whether a court is bookable and who may administer it.
type CourtWithFacility struct {
	Court
	FacilityStatus  string `db:"facility_status" json:"facility_status"`
	FacilityOwnerID int    `db:"facility_owner_id" json:"facility_owner_id"`
}

type CreateFacilityRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=200"`
	Location string `json:"location" binding:"required,min=2,max=200"`
}

type CreateCourtRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	Sport           string `json:"sport" binding:"required,min=2,max=50"`
	HourlyRateCents int64  `json:"hourly_rate_cents" binding:"required,gt=0"`
}

type UpdateCourtRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	HourlyRateCents *int64  `json:"hourly_rate_cents,omitempty" binding:"omitempty,gt=0"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

type UpdateFacilityStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
