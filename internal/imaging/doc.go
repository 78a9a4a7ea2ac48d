// Package imaging connects image files to the seam carving core.
//
// It handles everything the seam package deliberately leaves out: decoding
// files into pixel grids, caching decoded images, encoding results as PNG
// (raw or base64 for MCP responses), and rendering diagnostic views such as
// the energy map and seam overlays. It also offers a conventional rescale of
// the same image so callers can compare it against the carved result.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The rendering functions are
// stateless and can be called concurrently on different inputs.
//
// # Color Representation
//
// Seam carving works on opaque 8-bit RGB. Alpha is discarded when an image is
// converted to a grid; ImageInfo.HasAlpha tells callers when that happens.
// Colors given as strings use hex notation ("#RRGGBB") and are parsed with
// go-colorful.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - File I/O or decoding errors during image loading
//   - Images exceeding the configured pixel limit (ErrTooLarge)
//   - Invalid carve targets or seams (seam.ErrInvalidArgument, wrapped)
//   - Encoding errors during image output
package imaging
