package search

import (
	"context"
	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// deltaMargin is a safety margin added to the SEE/nominal-gain estimate of a capture before
// comparing it against alpha. A capture that cannot plausibly close the gap even with the
// margin added is not worth searching out.
const deltaMargin = eval.Score(200)

// Quiescence implements a configurable alpha-beta QuietSearch.
type Quiescence struct {
	Explore Exploration
	Eval    Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	run := &runQuiescence{explore: tacticalIfNotSet(q.Explore), eval: q.Eval, b: b}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score := run.search(ctx, sctx, low, high)
	return run.nodes, score
}

type runQuiescence struct {
	explore Exploration
	eval    Evaluator
	b       *board.Board
	nodes   uint64
}

// search returns the positive score for the color.
func (r *runQuiescence) search(ctx context.Context, sctx *Context, alpha, beta eval.Score) eval.Score {
	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore
	}
	if r.b.Result().Outcome == board.Draw {
		return eval.ZeroScore
	}

	r.nodes++

	turn := r.b.Turn()
	inCheck := r.b.Position().IsChecked(turn)

	// NOTE: Don't cutoff based on evaluation here. See if any legal moves first: a position
	// without legal moves is scored as checkmate or stalemate below.

	priority, explore := r.explore(ctx, r.b)

	var stand eval.Score
	if inCheck {
		// In check: every legal reply must be tried, not just tactical ones, and standing pat
		// is not an option -- the side to move cannot simply decline to answer a check.
		priority, explore = MVVLVA, IsAnyMove
	} else {
		stand = eval.HeuristicScore(r.eval.Evaluate(ctx, sctx, r.b))
		alpha = eval.Max(alpha, stand)
	}

	hasLegalMoves := false
	moves := board.NewMoveList(r.b.Position().PseudoLegalMoves(turn), priority)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}

		// Delta/SEE pruning only applies to the tactical (not-in-check) search and is decided
		// on the pre-move position, but never skips the PushMove/PopMove pair itself --
		// hasLegalMoves must stay accurate regardless.
		prune := !inCheck && r.shouldPrune(m, stand, alpha)

		if !r.b.PushMove(m) {
			continue // skip: not legal
		}

		if explore(m) && !prune {
			score := r.search(ctx, sctx, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
			alpha = eval.Max(alpha, score)
		}

		r.b.PopMove()
		hasLegalMoves = true

		if alpha == beta || beta.Less(alpha) {
			break // cutoff
		}
	}

	if !hasLegalMoves {
		if result := r.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.MateInXScore(0).Negate()
		}
		return eval.ZeroScore
	}
	return alpha
}

func tacticalIfNotSet(p Exploration) Exploration {
	if p == nil {
		return TacticalExploration
	}
	return p
}

// ZeroPly is a QuietSearch that performs no further search at the horizon: it evaluates the
// position once via a static Evaluator and returns. Useful for comparison against Quiescence
// and for engines configured without tactical horizon search.
type ZeroPly struct {
	Eval eval.Evaluator
}

func (z ZeroPly) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	return 1, z.Eval.Evaluate(ctx, b)
}

// shouldPrune reports whether a capture is safe to skip: either because it loses material
// outright (negative SEE), or because even its best-case gain cannot close the gap to alpha.
func (r *runQuiescence) shouldPrune(m board.Move, stand, alpha eval.Score) bool {
	if !m.IsCapture() {
		return false
	}
	if see := SEE(r.b.Position(), r.b.Turn(), m); see < 0 {
		return true
	}
	return stand+eval.NominalValueGain(m)+deltaMargin < alpha
}
