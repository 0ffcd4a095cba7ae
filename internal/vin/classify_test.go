package vin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmoralesv/vin-tracker/internal/models"
	"github.com/jmoralesv/vin-tracker/internal/vin"
)

func TestClassify_EmptyCollection(t *testing.T) {
	assert.Equal(t, vin.DecisionAdd, vin.Classify(nil, models.CollectionDelivery))
	assert.Equal(t, vin.DecisionAdd, vin.Classify(nil, models.CollectionService))
}

func TestClassify_ExistingNotRegistered(t *testing.T) {
	existing := &models.VinRecord{ID: 1, VIN: "1HGCM82633A004352", Registered: false}

	// Omitted regardless of target collection.
	assert.Equal(t, vin.DecisionOmitNotRegistered, vin.Classify(existing, models.CollectionDelivery))
	assert.Equal(t, vin.DecisionOmitNotRegistered, vin.Classify(existing, models.CollectionService))
}

func TestClassify_ExistingRegistered(t *testing.T) {
	existing := &models.VinRecord{ID: 1, VIN: "1HGCM82633A004352", Registered: true}

	// Delivery never repeats; service is repeat-eligible.
	assert.Equal(t, vin.DecisionOmitRegistered, vin.Classify(existing, models.CollectionDelivery))
	assert.Equal(t, vin.DecisionRepeat, vin.Classify(existing, models.CollectionService))
}
