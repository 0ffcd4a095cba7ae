package models

import "time"

// Collection names. Delivery and service records live in independent
// tables with independent uniqueness; "all" fans a bulk operation out
// to both.
const (
	CollectionDelivery = "delivery"
	CollectionService  = "service"
	CollectionAll      = "all"
)

// ValidCollection reports whether c names a single concrete collection.
func ValidCollection(c string) bool {
	return c == CollectionDelivery || c == CollectionService
}

// VinRecord is one tracked VIN inside a single collection.
type VinRecord struct {
	ID             int64      `json:"id"`
	VIN            string     `json:"vin"`
	CharCount      int        `json:"char_count"`
	Registered     bool       `json:"registered"`
	RepeatCount    int        `json:"repeat_count"`
	LastRepeatedAt *time.Time `json:"last_repeated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	Deleted        bool       `json:"deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`

	// Counter is the 1-based position inside its collection listing.
	// Computed per response, never stored.
	Counter int `json:"counter,omitempty"`

	// Type echoes the collection the record came from in listing
	// responses where both collections are mixed.
	Type string `json:"type,omitempty"`
}

// Registered-state filter values accepted by listings and bulk operations.
const (
	FilterRegisteredAll = "all"
	FilterRegistered    = "registered"
	FilterNotRegistered = "not_registered"
)

// Repeat-state filter values.
const (
	FilterRepeatedAll = "all"
	FilterRepeated    = "repeated"
	FilterNotRepeated = "not_repeated"
)

// Filter narrows listings, exports and bulk operations.
// Zero values mean "no restriction".
type Filter struct {
	// Date restricts to records created on this day, format YYYY-MM-DD.
	Date string

	// Registered is one of the FilterRegistered* values.
	Registered string

	// Search matches a substring of the VIN.
	Search string

	// Repeated is one of the FilterRepeated* values.
	Repeated string
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f.Date == "" &&
		(f.Registered == "" || f.Registered == FilterRegisteredAll) &&
		f.Search == "" &&
		(f.Repeated == "" || f.Repeated == FilterRepeatedAll)
}
