package vin

import (
	"regexp"
	"strings"
)

// Detected type hints returned by Extract. An explicit VIN label on the
// sticker is a strong signal of a manufacturer delivery label.
const (
	TypeDelivery = "delivery"
	TypeService  = "service"
	TypeUnknown  = "unknown"
)

// strictRe is the full VIN alphabet: I, O and Q are excluded by the
// standard, so any candidate containing them after cleanup is a misread.
var strictRe = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// labelRe matches "VIN", "V.I.N", "V I N" with an optional trailing
// separator, as printed on delivery stickers.
var labelRe = regexp.MustCompile(`V[\s.]?I[\s.]?N[\s.]?\s*[:\-#]?\s*`)

var runRe = regexp.MustCompile(`[A-Z0-9]{17}`)

var spaceRe = regexp.MustCompile(`\s`)

// StrictValid reports whether s is a 17-character string over the VIN
// alphabet. Applied only to OCR-extracted candidates; manual entry is
// validated by length alone.
func StrictValid(s string) bool {
	return len(s) == Length && strictRe.MatchString(s)
}

// CleanOCR corrects the character confusions dense sticker text provokes
// in OCR output: I read for 1, O and Q read for 0, plus stray embedded
// whitespace. Wider than Normalize on purpose; manual typing does not
// produce these misreads.
func CleanOCR(raw string) string {
	s := strings.ToUpper(raw)
	s = strings.ReplaceAll(s, "I", "1")
	s = strings.ReplaceAll(s, "O", "0")
	s = strings.ReplaceAll(s, "Q", "0")
	return spaceRe.ReplaceAllString(s, "")
}

// Extract pulls a best-guess VIN out of raw OCR text.
//
// Strategy A looks for an explicit VIN label and scans the 40 characters
// after it for a 17-character alphanumeric run; a hit is classified as a
// delivery sticker. Strategy B scans the whole text for any run that
// survives cleanup and strict validation. When neither strategy yields a
// candidate the returned vin is empty.
func Extract(fullText string) (vin string, detectedType string) {
	if fullText == "" {
		return "", TypeUnknown
	}

	text := strings.ToUpper(fullText)

	if loc := labelRe.FindStringIndex(text); loc != nil {
		after := text[loc[1]:]
		if len(after) > 40 {
			after = after[:40]
		}
		if seq := runRe.FindString(after); seq != "" {
			cleaned := CleanOCR(seq)
			if StrictValid(cleaned) {
				return cleaned, TypeDelivery
			}
		}
	}

	for _, seq := range runRe.FindAllString(text, -1) {
		cleaned := CleanOCR(seq)
		if StrictValid(cleaned) {
			return cleaned, TypeUnknown
		}
	}

	return "", TypeUnknown
}
