package service

import (
	"context"
	"strings"

	"github.com/jmoralesv/vin-tracker/internal/models"
)

// exportTimeLayout renders repeat timestamps the way the office reads
// them, day first.
const exportTimeLayout = "02/01/2006 15:04"

// Export renders the unregistered VINs of the requested collections as
// plain text, sectioned per collection. The output is accepted back by
// the text importer unchanged, annotations included.
func (s *VinService) Export(ctx context.Context, typ string, filter models.Filter) (string, error) {
	targets, err := collections(typ)
	if err != nil {
		return "", err
	}

	filter.Registered = models.FilterNotRegistered

	var b strings.Builder
	total := 0
	for _, collection := range targets {
		records, err := s.store.List(ctx, collection, filter)
		if err != nil {
			return "", err
		}
		if len(records) == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if collection == models.CollectionDelivery {
			b.WriteString("Deliverys\n")
		} else {
			b.WriteString("Services\n")
		}
		for _, r := range records {
			b.WriteString(r.VIN)
			if r.RepeatCount > 0 && r.LastRepeatedAt != nil {
				b.WriteString(" - Última repetición: ")
				b.WriteString(r.LastRepeatedAt.Format(exportTimeLayout))
			}
			b.WriteString("\n")
			total++
		}
	}

	if total == 0 {
		return "", ErrNothingToExport
	}
	return b.String(), nil
}
