// Package awards classifies raw award tables into per-category winner and
// nominee sets of title keys.
//
// A SourceSpec describes one award dataset: which columns hold the title, the
// raw category label and the outcome, which outcome-decoding strategy the
// dataset uses, and which raw labels fold into each semantic category. The
// mapping is data so new sources and categories only need configuration.
//
// The two supported strategies are deliberately separate decoders. The Academy
// dataset marks winners with true and leaves nominees blank, so an explicit
// false is neither outcome. The Golden Globe dataset always carries a boolean
// and false means nominee. Folding both into one rule would change which
// records count.
package awards
