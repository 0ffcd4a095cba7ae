// Package importer turns bulk text into categorized VIN batches: parse
// lines into per-collection candidates, reconcile them against the live
// store into a four-way partition, and execute the confirmed additions
// one by one.
package importer

import (
	"bufio"
	"strings"

	"github.com/jmoralesv/vin-tracker/internal/models"
	"github.com/jmoralesv/vin-tracker/internal/vin"
)

// Line is one candidate VIN parsed from import text.
type Line struct {
	Raw        string
	VIN        string
	Number     int
	Collection string
}

// Suffixes appended by the exporter; stripped before extracting the VIN
// so an exported file re-imports cleanly.
var exportSuffixes = []string{
	" - Último registro:",
	" - Última repetición:",
}

func sectionFor(line string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "deliverys", "deliveries", "delivery":
		return models.CollectionDelivery, true
	case "services", "service":
		return models.CollectionService, true
	}
	return "", false
}

func stripSuffix(line string) string {
	for _, s := range exportSuffixes {
		if i := strings.Index(line, s); i >= 0 {
			return strings.TrimSpace(line[:i])
		}
	}
	return line
}

// Parse splits import text into candidate lines. Section headers
// ("Deliverys"/"Services" and variants, case-insensitive) switch the
// target collection; text without any header goes entirely to
// defaultCollection. Blank lines are skipped, export suffixes stripped,
// VINs normalized.
func Parse(text, defaultCollection string) []Line {
	var out []Line
	current := defaultCollection
	number := 0

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		number++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if collection, ok := sectionFor(line); ok {
			current = collection
			continue
		}

		raw := stripSuffix(line)
		out = append(out, Line{
			Raw:        raw,
			VIN:        vin.Normalize(raw),
			Number:     number,
			Collection: current,
		})
	}
	return out
}
