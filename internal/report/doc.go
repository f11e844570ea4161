// Package report turns analysis results into human and machine readable
// output: go-pretty summary tables, an indented JSON report, chart series
// files for an external renderer, and the enriched catalog CSV.
package report
