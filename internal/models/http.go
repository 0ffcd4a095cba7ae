// Package models defines the record model and the request and response
// data structures exchanged between the client and the VIN tracker API.
package models

import "time"

// AddRequest asks to insert a VIN into one collection.
type AddRequest struct {
	VIN  string `json:"vin"`
	Type string `json:"type"`
}

// MutateRequest addresses an existing record by id and collection.
type MutateRequest struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// UpdateRequest replaces the VIN text of an existing record.
type UpdateRequest struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	VIN  string `json:"vin"`
}

// BulkRequest applies a filtered operation to one collection or to both
// when Type is "all".
type BulkRequest struct {
	Type       string `json:"type"`
	Date       string `json:"date,omitempty"`
	Registered string `json:"registered,omitempty"`
	Search     string `json:"search,omitempty"`
	Repeated   string `json:"repeated,omitempty"`
}

// Response is the common success/message envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ConflictResponse is returned with status 409 when an add hits an
// existing VIN. IsNotRegistered tells the caller whether the existing
// row is still pending registration (omit) or already registered
// (repeat-eligible in the service workflow).
type ConflictResponse struct {
	Success         bool       `json:"success"`
	IsDuplicate     bool       `json:"is_duplicate"`
	IsNotRegistered bool       `json:"is_not_registered"`
	Message         string     `json:"message"`
	ExistingID      int64      `json:"existing_id"`
	ExistingType    string     `json:"existing_type,omitempty"`
	RepeatCount     int        `json:"repeat_count,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// RecordsResponse carries both collection listings.
type RecordsResponse struct {
	Success  bool        `json:"success"`
	Delivery []VinRecord `json:"delivery"`
	Service  []VinRecord `json:"service"`
}

// CheckResponse is the read-only duplicate probe used by the import
// reconciliation flow. It never mutates the store.
type CheckResponse struct {
	Success         bool  `json:"success"`
	Exists          bool  `json:"exists"`
	IsNotRegistered bool  `json:"is_not_registered,omitempty"`
	ExistingID      int64 `json:"existing_id,omitempty"`
	RepeatCount     int   `json:"repeat_count,omitempty"`
}

// VerificationResponse reports consistency problems: VINs stored more
// than once inside a collection and VINs present in both collections.
type VerificationResponse struct {
	Success            bool        `json:"success"`
	DeliveryDuplicates []Duplicate `json:"delivery_duplicates"`
	ServiceDuplicates  []Duplicate `json:"service_duplicates"`
	CrossCollection    []string    `json:"cross_collection"`
}

// Duplicate is one VIN found on more than one non-deleted row.
type Duplicate struct {
	VIN   string  `json:"vin"`
	IDs   []int64 `json:"ids"`
	Count int     `json:"count"`
}

// ImportTextRequest submits bulk text for parsing and reconciliation.
type ImportTextRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// ImportItem is one VIN inside an import partition.
type ImportItem struct {
	VIN        string `json:"vin"`
	Line       int    `json:"line,omitempty"`
	Type       string `json:"type,omitempty"`
	IsNew      bool   `json:"is_new,omitempty"`
	IsRepeated bool   `json:"is_repeated,omitempty"`
	ExistingID int64  `json:"existing_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// ImportPreview is the four-way partition produced by reconciling an
// import batch against the live store. Nothing is written until the
// caller confirms with the ToAdd slice.
type ImportPreview struct {
	ToAdd            []ImportItem `json:"to_add"`
	Omitted          []ImportItem `json:"omitted"`
	DuplicatesInFile []ImportItem `json:"duplicates_in_file"`
	Errors           []ImportItem `json:"errors"`
}

// ImportResult is the aggregate outcome of executing a confirmed import.
type ImportResult struct {
	Success bool `json:"success"`
	Added   int  `json:"added"`
	Failed  int  `json:"failed"`
}

// HealthResponse is the standing connectivity signal the UI uses to
// block mutating actions before they fail.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
}
