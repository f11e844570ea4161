package awards

import (
	"errors"
	"fmt"
	"strings"
)

// Outcome is the result a record carries for its title.
type Outcome int

const (
	Winner Outcome = iota
	Nominee
)

// Outcomes lists every outcome in reporting order.
var Outcomes = []Outcome{Winner, Nominee}

func (o Outcome) String() string {
	switch o {
	case Winner:
		return "winner"
	case Nominee:
		return "nominee"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Strategy names an outcome-decoding strategy.
type Strategy string

const (
	// StrategyMissingIsNominee: true is a winner, a missing cell is a nominee,
	// false is excluded.
	StrategyMissingIsNominee Strategy = "missing_is_nominee"
	// StrategyExplicitBoolean: true is a winner, false is a nominee, a missing
	// cell is excluded.
	StrategyExplicitBoolean Strategy = "explicit_boolean"
)

// errMalformedCell marks an outcome cell that is neither boolean nor missing.
var errMalformedCell = errors.New("malformed outcome cell")

// OutcomeDecoder turns a raw outcome cell into an outcome. ok is false when
// the record carries neither outcome under the source's rules.
type OutcomeDecoder interface {
	Decode(cell string) (outcome Outcome, ok bool, err error)
}

// DecoderFor returns the decoder for a strategy.
func DecoderFor(strategy Strategy) (OutcomeDecoder, error) {
	switch strategy {
	case StrategyMissingIsNominee:
		return missingIsNominee{}, nil
	case StrategyExplicitBoolean:
		return explicitBoolean{}, nil
	default:
		return nil, fmt.Errorf("unknown outcome strategy %q", strategy)
	}
}

type missingIsNominee struct{}

func (missingIsNominee) Decode(cell string) (Outcome, bool, error) {
	switch parseCell(cell) {
	case cellTrue:
		return Winner, true, nil
	case cellMissing:
		return Nominee, true, nil
	case cellFalse:
		return 0, false, nil
	default:
		return 0, false, errMalformedCell
	}
}

type explicitBoolean struct{}

func (explicitBoolean) Decode(cell string) (Outcome, bool, error) {
	switch parseCell(cell) {
	case cellTrue:
		return Winner, true, nil
	case cellFalse:
		return Nominee, true, nil
	case cellMissing:
		return 0, false, nil
	default:
		return 0, false, errMalformedCell
	}
}

type cellValue int

const (
	cellMissing cellValue = iota
	cellTrue
	cellFalse
	cellMalformed
)

func parseCell(cell string) cellValue {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "nan", "null", "none", "na", "n/a":
		return cellMissing
	case "true", "1", "1.0", "yes":
		return cellTrue
	case "false", "0", "0.0", "no":
		return cellFalse
	default:
		return cellMalformed
	}
}
