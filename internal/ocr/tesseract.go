package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// DetectTextRegions returns Tesseract's text blocks in img whose confidence
// (0.0 to 1.0) is at least minConfidence.
func DetectTextRegions(img image.Image, minConfidence float64) ([]image.Rectangle, error) {
	return tesseractRegions(img, DefaultLanguage, minConfidence)
}

func tesseractRegions(img image.Image, language string, minConfidence float64) ([]image.Rectangle, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("ocr: empty image")
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	// Block level groups words into paragraphs, which is the granularity
	// worth protecting.
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, fmt.Errorf("failed to get text regions: %w", err)
	}

	return blockRegions(boxes, img.Bounds(), minConfidence), nil
}

// blockRegions converts Tesseract boxes, which are relative to the encoded
// image's origin, into rectangles in the space of bounds.
func blockRegions(boxes []gosseract.BoundingBox, bounds image.Rectangle, minConfidence float64) []image.Rectangle {
	regions := make([]image.Rectangle, 0, len(boxes))
	for _, box := range boxes {
		if box.Confidence/100.0 < minConfidence {
			continue
		}
		r := box.Box.Add(bounds.Min).Intersect(bounds)
		if r.Empty() {
			continue
		}
		regions = append(regions, r)
	}
	return regions
}

// Version returns the linked Tesseract version.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

// Detector finds regions to protect, preferring Tesseract and falling back
// to DetectDenseRegions when OCR fails.
type Detector struct {
	Language      string
	MinConfidence float64
	Logger        *log.Logger
}

// Detect returns the text regions of img.
func (d *Detector) Detect(img image.Image) ([]image.Rectangle, error) {
	lang := d.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	regions, err := tesseractRegions(img, lang, d.MinConfidence)
	if err == nil {
		d.logger().Debug("tesseract regions", "count", len(regions), "lang", lang)
		return regions, nil
	}

	d.logger().Warn("tesseract failed, using edge density", "err", err)
	return DetectDenseRegions(img, d.MinConfidence)
}

func (d *Detector) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}
