package vin

import "github.com/jmoralesv/vin-tracker/internal/models"

// Decision is the outcome of classifying a candidate VIN against the
// record (or absence of one) already holding that VIN in the target
// collection.
type Decision int

const (
	// DecisionAdd: no non-deleted record holds this VIN, insert as new.
	DecisionAdd Decision = iota

	// DecisionOmitNotRegistered: the VIN is present but still pending
	// registration. Never silently re-added; the caller resolves it.
	DecisionOmitNotRegistered

	// DecisionOmitRegistered: the VIN is present and registered in the
	// delivery collection. Delivery VINs never repeat, so a reappearance
	// is an anomaly, not a new cycle.
	DecisionOmitRegistered

	// DecisionRepeat: the VIN is present and registered in the service
	// collection; the caller may mark it repeated.
	DecisionRepeat
)

// Classify applies the duplicate policy. existing must be the non-deleted
// record currently holding the candidate VIN in collection, or nil when
// there is none. The delivery/service asymmetry here is a business rule:
// only service VINs cycle back after registration.
func Classify(existing *models.VinRecord, collection string) Decision {
	if existing == nil {
		return DecisionAdd
	}
	if !existing.Registered {
		return DecisionOmitNotRegistered
	}
	if collection == models.CollectionDelivery {
		return DecisionOmitRegistered
	}
	return DecisionRepeat
}
