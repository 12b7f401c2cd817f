// Package persona implements root human move selection: an optional post-search layer that
// replaces the search's best move with a humanly plausible alternative, weighted by a set of
// personality knobs and sampled from a deterministic seeded generator.
package persona

// Params holds the tunable human-selection personality knobs. The zero value disables human
// selection (HumanSelect is false), so the search's own best move always passes through Select
// unchanged.
type Params struct {
	HumanSelect bool // enables root human selection; if false, Select always returns best

	HumanHardFloorCp   int // drop candidates this many cp below best, before any other guardrail
	HumanOpeningSanity int // penalty multiplier (x5 cp) against edge knight/pawn moves in the opening
	HumanTopKOverride  int // if >0, truncate to this many candidates before the margin/count filter

	CandidateMarginCp int // drop candidates this many cp below best, after opening sanity
	CandidateMovesMax int // hard cap on the number of surviving candidates

	HumanTemperature int // softmax temperature in hundredths of a pawn, plus a 0.01 floor; at 0 the top candidate dominates, but equal scores are still sampled evenly
	HumanNoiseCp     int // magnitude, in cp, of the per-candidate multiplicative noise

	RiskAppetite   int // 100 is neutral; >100 favors sub-optimal candidates, <100 disfavors them
	SimplicityBias int // 100 is neutral; >100 further discounts candidates well below best
	SacrificeBias  int // accepted knob; not read by Select or by any evaluator in this module
	TradeBias      int // accepted knob; not read by Select or by any evaluator in this module

	RandomSeed int64 // 0 draws a fresh seed from the system clock (non-deterministic)
}

// DefaultParams returns the neutral personality: human selection disabled and every bias at its
// neutral midpoint, so that turning HumanSelect on alone does not skew play one way or another.
func DefaultParams() Params {
	return Params{
		CandidateMarginCp: 200,
		CandidateMovesMax: 5,
		RiskAppetite:      100,
		SimplicityBias:    100,
		SacrificeBias:     100,
		TradeBias:         100,
	}
}
