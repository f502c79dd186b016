// Package detection finds horizontal and vertical grid lines in an image.
//
// The pipeline is:
//
//  1. EdgeMap: grayscale, Gaussian smoothing, gradient edges (or the
//     thinning variant), then erosion and dilation, from package imaging.
//  2. Accumulate: every foreground pixel votes for each angle bin at
//     radius round(x·cosθ + y·sinθ). Bins step 0.01 radians over a full
//     turn; negative radii are dropped.
//  3. SelectLines: cells are ranked by votes, weak ones cut relative to
//     the strongest, and only θ = 0 (vertical) and near-zero slope
//     (horizontal) cells kept. Nearby duplicates merge, strongest first.
//
// DetectLines returns coordinates in the space of the image it was given.
// LocateLines also downscales first and multiplies the result back.
//
// # Configuration
//
// Config carries every tunable; DefaultConfig matches the board extractor
// and ConfigFromMap overlays a decoded JSON object on it. The merge window
// is specified at full resolution and divided by Config.Scale.
//
// # Diagnostics
//
// Each stage hands its output to an imaging.Sink under a fixed name
// (grayscale, blurred, gradient, threshold-gradient, canny-edge,
// hysteresis-threshold, eroded, dilate, graph, hough-line-transform).
// Sinks never affect the result.
package detection
