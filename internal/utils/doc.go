// Package utils provides shared low-level helpers used throughout the
// structo internals: JSON string rendering for log output and diagnostics,
// bounded string truncation for candidate previews, and a generic pointer
// helper.
//
// Key entry points: [JSONToString] for safe JSON rendering, [TruncateString]
// for previews, and [Ptr] for converting values to pointers.
package utils
