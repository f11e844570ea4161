// Package stats derives per-platform award metrics from flagged catalogs.
//
// Aggregate computes winner and nominee totals per source and per category,
// the count of unique award-winning titles, the overlap partition between
// sources, and prestige density (award-winning titles per thousand catalog
// titles). Position places several platforms on the volume/density matrix
// relative to their means. Everything here is a pure function of its inputs.
package stats
