// Package main hosts the prestige CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the award attribution pipeline, prints
// summary tables or a JSON report, writes chart data and enriched catalogs,
// records runs in the optional SQLite store, and scaffolds configuration. It
// centralizes configuration resolution and logger setup so subcommands only
// deal with presentation.
package main
