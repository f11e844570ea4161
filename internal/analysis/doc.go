// Package analysis wires the prestige pipeline together.
//
// Run loads every configured award dataset and classifies it, loads every
// platform catalog, attributes each catalog against the classified sets, and
// aggregates the flagged catalogs into per-platform statistics plus the
// positioning matrix. Skipped rows are logged with counts; schema mismatches
// and I/O failures are returned wrapped with the dataset they came from.
//
// Analyze is the pure core used by Run and by tests that build catalogs and
// classified sets in memory.
package analysis
