// Package table holds raw, untyped tables and the lenient delimited-text
// loader that produces them.
//
// Tables are column-oriented by name: every consumer resolves the columns it
// needs once with Index or Require and then reads cells by position. Missing
// cells are represented as the empty string. The loader mirrors the forgiving
// posture of the datasets this project analyses: rows with more fields than
// the header are dropped, short rows are padded, and undecodable rows are
// skipped rather than aborting the load. A table that lacks a required column
// is a caller error and surfaces as ErrMissingColumn.
package table
