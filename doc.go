// Package pgrep implements a parallel, grep-compatible line search over a
// single input: a Reader splits the input into line-aligned chunks, an
// InplaceProcessor chain transforms each chunk (decompression, newline
// indexing), a pool of Searcher workers scans chunks concurrently, and a
// Sink reassembles their results back into the input's original order.
package pgrep
