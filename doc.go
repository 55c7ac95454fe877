// Package ink renders freehand pen input as vector ink strokes, persists
// them compactly and supports undoing edits.
//
// # Overview
//
// The root package holds the geometric primitives shared by every
// sub-package (Point, StrokePoint, Rect, Matrix) and the package-wide
// logger. The work is done in sub-packages:
//
//   - codec: quantizes and delta-encodes pen samples to compact text
//   - filter: per-axis smoothing of raw pen input
//   - builder: accumulates filtered samples into an immutable Stroke
//   - style: pen styles, pen-kind defaults and override merging
//   - document: the paper document, its pages and its strokes
//   - outline: stroke geometry (standard and italic nib), curve smoothing,
//     flattening and the outline cache
//   - mask: alpha-coverage rasterization of outlines for hit testing
//   - serial: versioned, compressed document serialization
//   - undo: command-based undo/redo history
//
// # Data Flow
//
//	raw samples -> filter -> builder -> document.Stroke (encoded)
//	document.Stroke -> codec.Decode -> outline -> outline.Cache -> renderer
//	document.Document <-> serial <-> bytes
//
// # Coordinate System
//
// World coordinates with the origin at the top-left of the first page,
// X increasing right and Y increasing down. Angles are in radians unless a
// field documents degrees (pen tilt and twist are in degrees).
//
// # Logging
//
// ink is silent by default. Call SetLogger to route diagnostics to a
// [log/slog] logger.
package ink

// Version is the current version of the library.
const Version = "0.3.0"
