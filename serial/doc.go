// Package serial converts documents to and from their versioned, compact
// JSON form.
//
// Wire keys are short codes and form a stable contract independent of the
// Go field names. Optional fields equal to their default are left out.
//
// When the encoded point strings of a document add up to at least the
// compression threshold, every stroke's points are zstd-compressed and
// base64-encoded, and the document carries the "z" flag so that loading
// reverses exactly what saving did. Compressed output is cached per
// stroke; the cache holds strokes weakly and forgets them once they are
// collected.
//
// Loading never fails: unsupported versions and malformed input produce a
// fresh empty document. Decode reports the reason instead for callers that
// want it.
package serial
