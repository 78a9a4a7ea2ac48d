package ocr

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/seam-mcp/internal/seam"
)

// EdgeThreshold is the energy above which an interior pixel counts as an edge.
const EdgeThreshold = 100.0

// textWindows are the sliding-window sizes tried, roughly one line of small,
// medium and large type.
var textWindows = []image.Point{
	{X: 80, Y: 25},
	{X: 100, Y: 30},
	{X: 150, Y: 40},
	{X: 200, Y: 50},
}

// Text has a moderate stroke density; windows outside this band are skipped.
const (
	minDensity    = 0.05
	maxDensity    = 0.4
	targetDensity = 0.2
)

// edgeMask marks the pixels whose energy exceeds EdgeThreshold.
type edgeMask struct {
	width  int
	height int
	bits   []bool
}

// energyEdges builds the edge mask of e. Border pixels carry the sentinel
// energy and are never edges.
func energyEdges(e *seam.EnergyMap) *edgeMask {
	m := &edgeMask{width: e.Width(), height: e.Height(), bits: make([]bool, e.Width()*e.Height())}
	for y := 1; y < m.height-1; y++ {
		for x := 1; x < m.width-1; x++ {
			m.bits[y*m.width+x] = e.At(x, y) >= EdgeThreshold
		}
	}
	return m
}

func (m *edgeMask) at(x, y int) bool { return m.bits[y*m.width+x] }

type scored struct {
	rect       image.Rectangle
	confidence float64
}

// scan slides every window over m with half-window steps and returns the
// windows that look like text.
func (m *edgeMask) scan(minConfidence float64) []scored {
	var found []scored
	for _, ws := range textWindows {
		stepX, stepY := ws.X/2, ws.Y/2
		for y := 0; y+ws.Y <= m.height; y += stepY {
			for x := 0; x+ws.X <= m.width; x += stepX {
				r := image.Rect(x, y, x+ws.X, y+ws.Y)
				density := m.density(r)
				if density < minDensity || density > maxDensity {
					continue
				}
				conf := m.horizontalScore(r) * (1 - math.Abs(density-targetDensity)/targetDensity)
				if conf >= minConfidence {
					found = append(found, scored{rect: r, confidence: math.Round(conf*1000) / 1000})
				}
			}
		}
	}
	return found
}

func (m *edgeMask) density(r image.Rectangle) float64 {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.at(x, y) {
				n++
			}
		}
	}
	return float64(n) / float64(r.Dx()*r.Dy())
}

// horizontalScore is the share of edge runs that are horizontal. Glyph
// strokes cut across rows, so a line of text produces many short runs per
// row and few long runs per column.
func (m *edgeMask) horizontalScore(r image.Rectangle) float64 {
	rows, cols := 0, 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		in := false
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.at(x, y) && !in {
				rows++
			}
			in = m.at(x, y)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		in := false
		for y := r.Min.Y; y < r.Max.Y; y++ {
			if m.at(x, y) && !in {
				cols++
			}
			in = m.at(x, y)
		}
	}
	if rows+cols == 0 {
		return 0
	}
	return float64(rows) / float64(rows+cols)
}

// mergeOverlapping folds each window into the first merged region it
// overlaps, keeping the higher confidence.
func mergeOverlapping(in []scored) []scored {
	merged := make([]scored, 0, len(in))
	for _, s := range in {
		folded := false
		for i := range merged {
			if s.rect.Overlaps(merged[i].rect) {
				merged[i].rect = merged[i].rect.Union(s.rect)
				merged[i].confidence = math.Max(merged[i].confidence, s.confidence)
				folded = true
				break
			}
		}
		if !folded {
			merged = append(merged, s)
		}
	}
	return merged
}

// DetectDenseRegions finds likely text in img without an OCR engine. Results
// are ordered by decreasing confidence.
func DetectDenseRegions(img image.Image, minConfidence float64) ([]image.Rectangle, error) {
	g, err := seam.GridFromImage(img)
	if err != nil {
		return nil, err
	}

	regions := mergeOverlapping(energyEdges(seam.ComputeEnergy(g)).scan(minConfidence))
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].confidence > regions[j].confidence
	})

	origin := img.Bounds().Min
	rects := make([]image.Rectangle, len(regions))
	for i, r := range regions {
		rects[i] = r.rect.Add(origin)
	}
	return rects, nil
}
