package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxAssetTagLen     = 64
	maxSerialNumberLen = 128
	maxSpecFieldLen    = 255
)

// AssetType classifies a hardware asset. The set is closed; each type has
// a conventional set of specification fields (see AssetTypeFields).
type AssetType string

const (
	AssetTypeComputer         AssetType = "COMPUTER"
	AssetTypeLaptop           AssetType = "LAPTOP"
	AssetTypePrinter          AssetType = "PRINTER"
	AssetTypeMonitor          AssetType = "MONITOR"
	AssetTypeServer           AssetType = "SERVER"
	AssetTypeNetworkEquipment AssetType = "NETWORK_EQUIPMENT"
	AssetTypeTablet           AssetType = "TABLET"
	AssetTypePhone            AssetType = "PHONE"
	AssetTypeOther            AssetType = "OTHER"
)

// Valid reports whether the asset type is supported.
func (t AssetType) Valid() bool {
	_, ok := assetTypeFields[t]
	return ok
}

// ParseAssetType normalizes an asset type string and reports whether it is
// supported.
func ParseAssetType(value string) (AssetType, bool) {
	t := AssetType(strings.ToUpper(strings.TrimSpace(value)))
	if t.Valid() {
		return t, true
	}
	return "", false
}

// assetTypeFields maps each asset type to the specification keys the UI
// collects for it. The dedicated cpu/ram/storage columns overlap with
// these on purpose; everything else lands in the specifications document.
var assetTypeFields = map[AssetType][]string{
	AssetTypeComputer:         {"cpu", "ram", "storage", "operatingSystem"},
	AssetTypeLaptop:           {"cpu", "ram", "storage", "operatingSystem", "screenSize"},
	AssetTypePrinter:          {"model", "type", "connectivity"},
	AssetTypeMonitor:          {"size", "resolution", "connectivity"},
	AssetTypeServer:           {"cpu", "ram", "storage", "rackUnit"},
	AssetTypeNetworkEquipment: {"model", "type", "ports"},
	AssetTypeTablet:           {"model", "storage", "screenSize", "operatingSystem"},
	AssetTypePhone:            {"model", "storage", "operatingSystem"},
	AssetTypeOther:            {"specifications"},
}

// AssetTypeFields returns the specification keys conventionally recorded
// for the given asset type, or nil for an unknown type.
func AssetTypeFields(t AssetType) []string {
	fields := assetTypeFields[t]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// AssetTypeCatalog returns every supported asset type with its
// specification keys. The result is a copy safe for callers to mutate.
func AssetTypeCatalog() map[AssetType][]string {
	out := make(map[AssetType][]string, len(assetTypeFields))
	for t := range assetTypeFields {
		out[t] = AssetTypeFields(t)
	}
	return out
}

// Departments returns the organizational departments assets and users can
// belong to.
func Departments() []string {
	return []string{
		"Finance",
		"HR",
		"IT Department",
		"Administration",
		"Operations",
		"Legal",
		"Marketing",
		"Sales",
		"Customer Service",
		"Procurement",
		"Facilities",
		"Security",
	}
}

// Asset represents a tracked hardware asset. TicketCount and
// MaintenanceCount come from aggregate joins and are populated on reads.
type Asset struct {
	ID             string          `json:"id"                       db:"id"`
	AssetTag       string          `json:"asset_tag"                db:"asset_tag"`
	AssetType      AssetType       `json:"asset_type"               db:"asset_type"`
	Department     string          `json:"department"               db:"department"`
	CPU            *string         `json:"cpu,omitempty"            db:"cpu"`
	RAM            *string         `json:"ram,omitempty"            db:"ram"`
	Storage        *string         `json:"storage,omitempty"        db:"storage"`
	SerialNumber   string          `json:"serial_number"            db:"serial_number"`
	Specifications json.RawMessage `json:"specifications,omitempty" db:"specifications"`
	CreatedAt      time.Time       `json:"created_at"               db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"               db:"updated_at"`

	TicketCount      int `json:"ticket_count"      db:"ticket_count"`
	MaintenanceCount int `json:"maintenance_count" db:"maintenance_count"`
}

// CreateAssetRequest represents parameters to register a new asset.
type CreateAssetRequest struct {
	AssetTag       string          `json:"asset_tag"`
	AssetType      AssetType       `json:"asset_type"`
	Department     string          `json:"department"`
	CPU            *string         `json:"cpu,omitempty"`
	RAM            *string         `json:"ram,omitempty"`
	Storage        *string         `json:"storage,omitempty"`
	SerialNumber   string          `json:"serial_number"`
	Specifications json.RawMessage `json:"specifications,omitempty"`
}

// Validate validates CreateAssetRequest and normalizes the asset type.
func (r *CreateAssetRequest) Validate() error {
	if strings.TrimSpace(r.AssetTag) == "" {
		return errors.New("asset_tag is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.AssetTag) > maxAssetTagLen {
		return errors.New("asset_tag cannot exceed 64 characters")
	}
	t, ok := ParseAssetType(string(r.AssetType))
	if !ok {
		return errors.New("invalid asset_type")
	}
	r.AssetType = t
	if strings.TrimSpace(r.Department) == "" {
		return errors.New("department is required and cannot be empty")
	}
	if strings.TrimSpace(r.SerialNumber) == "" {
		return errors.New("serial_number is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.SerialNumber) > maxSerialNumberLen {
		return errors.New("serial_number cannot exceed 128 characters")
	}
	if err := validateSpecField(r.CPU, "cpu"); err != nil {
		return err
	}
	if err := validateSpecField(r.RAM, "ram"); err != nil {
		return err
	}
	if err := validateSpecField(r.Storage, "storage"); err != nil {
		return err
	}
	return validateSpecifications(r.Specifications)
}

// UpdateAssetRequest represents a partial asset update.
type UpdateAssetRequest struct {
	AssetTag       *string         `json:"asset_tag,omitempty"`
	AssetType      *AssetType      `json:"asset_type,omitempty"`
	Department     *string         `json:"department,omitempty"`
	CPU            *string         `json:"cpu,omitempty"`
	RAM            *string         `json:"ram,omitempty"`
	Storage        *string         `json:"storage,omitempty"`
	SerialNumber   *string         `json:"serial_number,omitempty"`
	Specifications json.RawMessage `json:"specifications,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateAssetRequest.
func (r *UpdateAssetRequest) HasUpdates() bool {
	return r.AssetTag != nil || r.AssetType != nil || r.Department != nil ||
		r.CPU != nil || r.RAM != nil || r.Storage != nil ||
		r.SerialNumber != nil || r.Specifications != nil
}

// Validate validates UpdateAssetRequest, ensuring at least one field is set
// and values are sane.
func (r *UpdateAssetRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.AssetTag != nil {
		tag := strings.TrimSpace(*r.AssetTag)
		if tag == "" {
			return errors.New("asset_tag cannot be empty")
		}
		if utf8.RuneCountInString(tag) > maxAssetTagLen {
			return errors.New("asset_tag cannot exceed 64 characters")
		}
	}
	if r.AssetType != nil {
		t, ok := ParseAssetType(string(*r.AssetType))
		if !ok {
			return errors.New("invalid asset_type")
		}
		*r.AssetType = t
	}
	if r.Department != nil && strings.TrimSpace(*r.Department) == "" {
		return errors.New("department cannot be empty")
	}
	if r.SerialNumber != nil {
		sn := strings.TrimSpace(*r.SerialNumber)
		if sn == "" {
			return errors.New("serial_number cannot be empty")
		}
		if utf8.RuneCountInString(sn) > maxSerialNumberLen {
			return errors.New("serial_number cannot exceed 128 characters")
		}
	}
	if err := validateSpecField(r.CPU, "cpu"); err != nil {
		return err
	}
	if err := validateSpecField(r.RAM, "ram"); err != nil {
		return err
	}
	if err := validateSpecField(r.Storage, "storage"); err != nil {
		return err
	}
	return validateSpecifications(r.Specifications)
}

func validateSpecField(v *string, name string) error {
	if v != nil && utf8.RuneCountInString(*v) > maxSpecFieldLen {
		return errors.New(name + " cannot exceed 255 characters")
	}
	return nil
}

// validateSpecifications requires the free-form specifications document to
// be a JSON object when present.
func validateSpecifications(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.New("specifications must be a JSON object")
	}
	return nil
}

// AssetsListOptions controls paging for asset listings.
type AssetsListOptions struct {
	Limit      int
	Offset     int
	Department *string
}
