// Package decode turns an extracted candidate string into a generic value
// tree: a recursive sum over null, boolean, number, string, sequence and
// mapping, with mapping key order preserved for diagnostics. The tree is an
// intermediate handoff to the validator and carries no schema knowledge.
//
// Decoding is strict: the candidate must contain exactly one complete JSON
// value, and the first unparseable token fails the whole candidate with a
// [SyntaxError] carrying its byte offset. No partial trees are produced.
// Numbers keep their raw literal text so the validator can distinguish
// integers from floats without precision loss.
package decode
