package persona

import (
	"context"
	"math"
	"sort"

	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/eval"
	"github.com/seekerror/logw"
)

// openingPlyLimit bounds how long the opening-sanity guardrail stays active.
const openingPlyLimit = 12

// Select implements root human move selection: it re-scores the root's legal moves with a
// one-ply static evaluation, runs the guardrail pipeline, and samples a move from the resulting
// softmax distribution. If HumanSelect is false, or no candidate survives the guardrails, or the
// picked move somehow fails to validate against the root position, it falls back to best
// unchanged. If exactly one candidate survives, that candidate is returned without sampling.
func Select(ctx context.Context, p Params, b *board.Board, e eval.Evaluator, best board.Move) board.Move {
	if !p.HumanSelect {
		return best
	}

	candidates := score(ctx, b, e)
	if len(candidates) == 0 {
		return best
	}
	sortByScore(candidates)
	top := candidates[0].Score

	candidates = hardFloor(candidates, top, p)
	ply := 2 * (b.FullMoves() - 1) // game ply: b.Ply() only counts plies since b was forked
	if b.Turn() == board.Black {
		ply++
	}
	candidates = openingSanity(candidates, ply, p)
	candidates = topKOverride(candidates, p)
	candidates = marginAndCount(candidates, top, p)

	turn := b.Turn()

	if len(candidates) == 0 {
		return best
	}
	if len(candidates) == 1 {
		return validate(ctx, b.Position(), turn, candidates[0].Move, best)
	}

	weigh(candidates, top, p)
	picked := sample(candidates, p)
	return validate(ctx, b.Position(), turn, picked, best)
}

// score evaluates every legal root move one ply deep, from the mover's perspective. Moves are
// pushed and popped on b in turn, leaving it unchanged on return.
func score(ctx context.Context, b *board.Board, e eval.Evaluator) []CandidateMove {
	turn := b.Turn()

	var ret []CandidateMove
	for _, m := range b.Position().LegalMoves(turn) {
		if !b.PushMove(m) {
			continue // not reached: LegalMoves already filters illegal moves
		}
		s := e.Evaluate(ctx, b).Negate()
		b.PopMove()

		ret = append(ret, CandidateMove{Move: m, Score: s})
	}
	return ret
}

func sortByScore(c []CandidateMove) {
	sort.SliceStable(c, func(i, j int) bool { return c[j].Score.Less(c[i].Score) })
}

// hardFloor drops candidates scoring more than HumanHardFloorCp below top.
func hardFloor(c []CandidateMove, top eval.Score, p Params) []CandidateMove {
	floor := top - eval.Score(p.HumanHardFloorCp)
	var ret []CandidateMove
	for _, cm := range c {
		if !cm.Score.Less(floor) {
			ret = append(ret, cm)
		}
	}
	return ret
}

// openingSanity penalizes edge knight/pawn moves during the first openingPlyLimit plies, then
// re-sorts by the adjusted score.
func openingSanity(c []CandidateMove, ply int, p Params) []CandidateMove {
	if ply >= openingPlyLimit || p.HumanOpeningSanity == 0 {
		return c
	}

	penalty := eval.Score(5 * p.HumanOpeningSanity)
	for i, cm := range c {
		if isEdgeDevelopmentMove(cm.Move) {
			c[i].Score -= penalty
		}
	}
	sortByScore(c)
	return c
}

// isEdgeDevelopmentMove reports whether m is a knight or pawn move originating on one of the
// outer two files of its own back two ranks: the "edge" moves a human would rarely play first.
func isEdgeDevelopmentMove(m board.Move) bool {
	if m.Piece != board.Knight && m.Piece != board.Pawn {
		return false
	}

	file := m.From.File()
	if file != 0 && file != 1 && file != 6 && file != 7 {
		return false
	}

	rank := m.From.Rank()
	return rank == 0 || rank == 1 || rank == 6 || rank == 7
}

// topKOverride truncates to HumanTopKOverride candidates, if set.
func topKOverride(c []CandidateMove, p Params) []CandidateMove {
	if p.HumanTopKOverride > 0 && len(c) > p.HumanTopKOverride {
		return c[:p.HumanTopKOverride]
	}
	return c
}

// marginAndCount drops candidates scoring more than CandidateMarginCp below top, then caps the
// survivors at CandidateMovesMax.
func marginAndCount(c []CandidateMove, top eval.Score, p Params) []CandidateMove {
	margin := top - eval.Score(p.CandidateMarginCp)

	var ret []CandidateMove
	for _, cm := range c {
		if !cm.Score.Less(margin) {
			ret = append(ret, cm)
		}
	}
	if p.CandidateMovesMax > 0 && len(ret) > p.CandidateMovesMax {
		ret = ret[:p.CandidateMovesMax]
	}
	return ret
}

// weigh assigns a softmax weight to each candidate: base temperature-scaled exponential, scaled
// by per-move noise and the risk/simplicity biases, then normalized into a probability.
func weigh(c []CandidateMove, top eval.Score, p Params) {
	t := float64(p.HumanTemperature)/100 + 0.01

	var total float64
	for i := range c {
		cm := &c[i]
		delta := float64(cm.Score-top) / 100

		w := math.Exp(delta / t)
		w *= math.Exp(noise(cm.Move, p))
		w *= riskBias(cm.Score, top, p)
		w *= simplicityBias(cm.Score, top, p)

		cm.Weight = w
		total += w
	}
	if total <= 0 {
		return
	}
	for i := range c {
		c[i].Prob = c[i].Weight / total
	}
}

func noise(m board.Move, p Params) float64 {
	if p.HumanNoiseCp == 0 {
		return 0
	}
	r := Keyed(p.RandomSeed, moveKey(m))
	return (r - 0.5) * 2 * float64(p.HumanNoiseCp) / 100
}

func riskBias(score, top eval.Score, p Params) float64 {
	if !score.Less(top) {
		return 1 // best candidate itself is never risk-biased
	}
	ra := float64(p.RiskAppetite)
	switch {
	case ra > 100:
		return 1 + 0.3*(ra-100)/100
	case ra < 100:
		return 1 - 0.5*(100-ra)/100
	default:
		return 1
	}
}

func simplicityBias(score, top eval.Score, p Params) float64 {
	sb := float64(p.SimplicityBias)
	if sb > 100 && score < top-50 {
		return 1 - 0.3*(sb-100)/100
	}
	return 1
}

// sample draws a uniform r from a fresh stream seeded by RandomSeed and returns the first
// candidate whose cumulative probability reaches r.
func sample(c []CandidateMove, p Params) board.Move {
	r := NewRand(p.RandomSeed).Next()

	var cumulative float64
	for _, cm := range c {
		cumulative += cm.Prob
		if cumulative >= r {
			return cm.Move
		}
	}
	return c[len(c)-1].Move // rounding fallback: last candidate
}

// validate re-checks picked against the root's legal moves, falling back to best on mismatch.
func validate(ctx context.Context, pos *board.Position, turn board.Color, picked, best board.Move) board.Move {
	for _, m := range pos.LegalMoves(turn) {
		if m.Equals(picked) {
			return picked
		}
	}
	logw.Errorf(ctx, "human-selected move %v not legal in %v, falling back to %v", picked, pos, best)
	return best
}
