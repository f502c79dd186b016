// Package imaging holds the per-pixel stages of the grid line finder and
// the pixel-grid boundary around them.
//
// Stages, in pipeline order:
//
//  1. Grayscale: color image to one intensity channel (GrayMode).
//  2. Smooth: Gaussian convolution that drops a kernel-radius border.
//  3. ExtractEdges: gradient magnitude binarized by one product threshold,
//     or ThinEdges, the older non-maximum suppression plus hysteresis path.
//  4. Open: 3x3 erosion followed by 3x3 dilation.
//
// Each stage allocates a new grid and never writes to its input.
//
// # Grids
//
// Intensity and binary grids are *image.Gray with their origin at (0,0).
// Binary grids use White (255) for foreground and Black (0) otherwise.
// Coordinates are 0-based, X rightward and Y downward.
//
// Passes that read a 3x3 (or larger) window iterate only ValidRegion, the
// rectangle where the window fits. Pixels outside it are left black, so no
// loop ever reads past the grid edge.
//
// # Boundary
//
// ImageCache loads files (PNG, JPEG, GIF, BMP, TIFF, WebP) through
// disintegration/imaging with EXIF auto-orientation. Downscale reduces an
// image by an integer factor before detection. A Sink receives the grid
// produced by each stage for diagnostics; NopSink drops them and DirSink
// writes PNG files.
//
// # Thread Safety
//
// ImageCache and DirSink are safe for concurrent use. The stage functions
// keep no state and may run concurrently on different grids.
package imaging
