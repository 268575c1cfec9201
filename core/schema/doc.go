// Package schema defines the Schema Descriptor: an immutable, declarative
// description of the structure an LLM response is expected to follow.
// A descriptor is built once, from field constructors, from a Go struct via
// [FromType], or from a YAML/JSON definition via [Load], and is then shared
// read-only across any number of concurrent validation runs.
//
// The descriptor is a small closed type algebra: primitive kinds (string,
// integer, float, boolean), closed string enumerations, objects with ordered
// fields, sequences, and optional wrappers. Fields carry a required flag, a
// default value, and length/value constraints. Incompatible combinations
// (a length constraint on a boolean field, a default outside an enum's
// allowed set) are configuration errors reported at construction time, so
// validation never has to second-guess the descriptor itself.
package schema
