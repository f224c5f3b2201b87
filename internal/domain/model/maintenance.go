package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxActionLen = 255

	// MaxMaintenanceLogs caps any maintenance listing regardless of the
	// requested limit.
	MaxMaintenanceLogs = 100
)

// Maintenance test outcomes recorded by technicians. TestResult is free
// text, but dashboards treat "Fail" specially as a pending repair.
const (
	TestResultPass = "Pass"
	TestResultFail = "Fail"
)

// MaintenanceLog records work performed on an asset. Asset and technician
// details come from joins and are populated on reads.
type MaintenanceLog struct {
	ID          string    `json:"id"                     db:"id"`
	AssetID     string    `json:"asset_id"               db:"asset_id"`
	Action      string    `json:"action"                 db:"action"`
	Description string    `json:"description"            db:"description"`
	RAMDetails  *string   `json:"ram_details,omitempty"  db:"ram_details"`
	TestResult  *string   `json:"test_result,omitempty"  db:"test_result"`
	Technician  string    `json:"technician"             db:"technician"`
	CreatedAt   time.Time `json:"created_at"             db:"created_at"`

	AssetTag       *string `json:"asset_tag,omitempty"       db:"asset_tag"`
	TechnicianName *string `json:"technician_name,omitempty" db:"technician_name"`
}

// CreateMaintenanceLogRequest represents parameters to record maintenance
// work. The technician is always the authenticated caller, never a request
// field.
type CreateMaintenanceLogRequest struct {
	AssetID     string  `json:"asset_id"`
	Action      string  `json:"action"`
	Description string  `json:"description"`
	RAMDetails  *string `json:"ram_details,omitempty"`
	TestResult  *string `json:"test_result,omitempty"`
}

// Validate validates CreateMaintenanceLogRequest.
func (r *CreateMaintenanceLogRequest) Validate() error {
	if strings.TrimSpace(r.AssetID) == "" {
		return errors.New("asset_id is required and cannot be empty")
	}
	if strings.TrimSpace(r.Action) == "" {
		return errors.New("action is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Action) > maxActionLen {
		return errors.New("action cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Description) > maxDescriptionLen {
		return errors.New("description cannot exceed 10000 characters")
	}
	if r.RAMDetails != nil && strings.TrimSpace(*r.RAMDetails) == "" {
		r.RAMDetails = nil
	}
	if r.TestResult != nil && strings.TrimSpace(*r.TestResult) == "" {
		r.TestResult = nil
	}
	return nil
}

// MaintenanceListOptions controls filtering for maintenance log listings.
// Limit is clamped to MaxMaintenanceLogs by the repository.
type MaintenanceListOptions struct {
	AssetID *string
	Limit   int
}
