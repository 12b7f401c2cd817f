package search

import (
	"context"

	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Minimax implements naive minimax search. Useful for comparison and validation.
// Pseudo-code:
//
// function minimax(node, depth, maximizingPlayer) is
//
//	if depth = 0 or node is a terminal node then
//	    return the heuristic value of node
//	if maximizingPlayer then
//	    value := −∞
//	    for each child of node do
//	        value := max(value, minimax(child, depth − 1, FALSE))
//	    return value
//	else (* minimizing player *)
//	    value := +∞
//	    for each child of node do
//	        value := min(value, minimax(child, depth − 1, TRUE))
//	    return value
//
// See: https://en.wikipedia.org/wiki/Minimax.
type Minimax struct {
	Eval eval.Evaluator
}

func (m Minimax) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runMinimax{eval: m.Eval, b: b}
	score, moves := run.search(ctx, depth, 0)
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runMinimax struct {
	eval  eval.Evaluator
	b     *board.Board
	nodes uint64
}

// search returns the positive score for the color. ext tracks how many one-ply check extensions
// have already been granted along this line, mirroring AlphaBeta's own check extension so the
// two stay comparable at the same nominal depth.
func (m *runMinimax) search(ctx context.Context, depth, ext int) (eval.Score, []board.Move) {
	m.nodes++

	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}

	if inCheck := m.b.Position().IsChecked(m.b.Turn()); inCheck && ext < maxCheckExtension {
		depth++
		ext++
	}

	if depth == 0 {
		return m.eval.Evaluate(ctx, m.b), nil
	}

	hasLegalMove := false
	score := eval.NegInfScore
	var pv []board.Move

	moves := m.b.Position().PseudoLegalMoves(m.b.Turn())
	for _, move := range moves {
		if m.b.PushMove(move) {
			s, rem := m.search(ctx, depth-1, ext)
			m.b.PopMove()

			hasLegalMove = true
			s = eval.IncrementMateDistance(s).Negate()
			if score.Less(s) {
				score = s
				pv = append([]board.Move{move}, rem...)
			}
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.MateInXScore(0).Negate(), nil
		}
		return eval.ZeroScore, nil
	}

	return score, pv
}
