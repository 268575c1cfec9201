// Package extract isolates the substrings of a raw LLM response that are
// most likely to be a single well-formed JSON object. Models wrap JSON in
// narrative prose, markdown code fences, or whole HTML fragments, so the
// extractor applies a fixed sequence of strategies (whole trimmed string,
// fenced code blocks, HTML-normalised fences, string-aware brace matching)
// and yields every candidate each strategy finds, most likely first, with
// duplicates removed in first-seen order.
//
// Extraction is purely textual: candidates are not decoded here, and a
// candidate that looks like JSON may still fail to parse. The pipeline
// tries candidates in the order this package produced them.
package extract
