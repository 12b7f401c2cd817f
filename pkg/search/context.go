package search

import (
	"context"

	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/eval"
)

// Context carries per-call search parameters threaded through recursive search and
// quiescence calls: the active window, shared transposition table, evaluation noise and
// any forced ponder continuation.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random
	Ponder      []board.Move
}

// Evaluator evaluates a position at the quiescence horizon, with access to the active
// search Context (e.g. to layer in Noise). Returns a raw centipawn value, not yet clamped
// clear of the mate range -- callers apply eval.HeuristicScore.
type Evaluator interface {
	Evaluate(ctx context.Context, sctx *Context, b *board.Board) int
}

// QuietSearch resolves tactical sequences (captures, promotions) at the search horizon to
// avoid the horizon effect, producing a stable score for AlphaBeta to back up.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}

// StaticEval adapts a static eval.Evaluator into an Evaluator, adding Noise from the search
// Context. Used when quiescence search is disabled or intentionally shallow.
type StaticEval struct {
	Eval eval.Evaluator
}

func (s StaticEval) Evaluate(ctx context.Context, sctx *Context, b *board.Board) int {
	score := s.Eval.Evaluate(ctx, b)
	score += sctx.Noise.Evaluate(ctx, b)
	return int(score)
}
