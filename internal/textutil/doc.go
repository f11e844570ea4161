// Package textutil provides the text helpers shared by the analysis pipeline.
//
// The primary use cases are:
//   - Deriving the canonical matching key for a title (NormalizeTitle)
//   - Converting labels such as platform names into filesystem-safe tokens
//
// Title keys are the only notion of identity the pipeline has: two titles
// refer to the same work exactly when their keys are equal. There is no
// approximate matching, so spelling variants and near-misses stay distinct.
package textutil
