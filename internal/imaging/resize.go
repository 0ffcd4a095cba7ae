// Package imaging downsizes sticker photos before OCR submission.
// Phone photos run 4000px+; capping the longest side keeps the payload
// small without hurting VIN legibility.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"
)

// MaxDimension caps the longest image side.
const MaxDimension = 1600

// PrepareForOCR decodes an uploaded image, scales it down when either
// side exceeds MaxDimension and returns it base64-encoded as JPEG.
// Images already inside the cap are re-encoded but not scaled.
func PrepareForOCR(data []byte) (imageBase64, mimeType string, err error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > MaxDimension || h > MaxDimension {
		ratio := float64(MaxDimension) / float64(w)
		if h > w {
			ratio = float64(MaxDimension) / float64(h)
		}
		dw := int(float64(w) * ratio)
		dh := int(float64(h) * ratio)

		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 85}); err != nil {
		return "", "", fmt.Errorf("encode image: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), "image/jpeg", nil
}
