// Package ocr finds text in images so seam carving can route around it.
//
// Two detectors are provided. DetectTextRegions asks Tesseract (via
// gosseract/v2) for block-level bounding boxes. DetectDenseRegions needs no
// native library: it thresholds the dual-gradient energy map into an edge
// mask and keeps text-sized windows whose edge density and horizontal
// structure resemble lines of type.
//
// Detector combines the two, preferring Tesseract and falling back to the
// edge heuristic when the engine cannot run.
//
// # Prerequisites
//
// Tesseract and its language data must be installed for DetectTextRegions:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Coordinates
//
// All rectangles are in the source image's coordinate space, clipped to its
// bounds, with inclusive Min and exclusive Max.
package ocr
