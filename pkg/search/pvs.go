package search

import (
	"context"

	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// PVS implements principal variation search. Pseudo-code:
//
// function pvs(node, depth, α, β, color) is
//
//	if depth = 0 or node is a terminal node then
//	    return color × the heuristic value of node
//	for each child of node do
//	    if child is first child then
//	        score := −pvs(child, depth − 1, −β, −α, −color)
//	    else
//	        score := −pvs(child, depth − 1, −α − 1, −α, −color) (* search with a null window *)
//	        if α < score < β then
//	            score := −pvs(child, depth − 1, −β, −score, −color) (* if it failed high, do a full re-search *)
//	    α := max(α, score)
//	    if α ≥ β then
//	        break (* beta cut-off *)
//	return α
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
type PVS struct {
	Eval QuietSearch
}

func (p PVS) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runPVS{eval: p.Eval, tt: sctx.TT, b: b}
	score, moves := run.search(ctx, depth, eval.NegInfScore, eval.InfScore, 0)
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runPVS struct {
	eval  QuietSearch
	tt    TranspositionTable
	b     *board.Board
	nodes uint64
}

// search returns the positive score for the color. ext tracks how many one-ply check extensions
// have already been granted along this line, mirroring AlphaBeta's own check extension so the
// two stay comparable at the same nominal depth.
func (m *runPVS) search(ctx context.Context, depth int, alpha, beta eval.Score, ext int) (eval.Score, []board.Move) {
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
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt}
		nodes, score := m.eval.QuietSearch(ctx, sctx, m.b)
		m.nodes += nodes
		return score, nil
	}

	m.nodes++

	hasLegalMove := false
	var pv []board.Move

	moves := board.NewMoveList(m.b.Position().PseudoLegalMoves(m.b.Turn()), MVVLVA)
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !m.b.PushMove(move) {
			continue // skip: not legal
		}

		var score eval.Score
		var rem []board.Move

		if !hasLegalMove {
			score, rem = m.search(ctx, depth-1, beta.Negate(), alpha.Negate(), ext)
		} else {
			// Search with a null window first.
			score, rem = m.search(ctx, depth-1, alpha.Negate()-1, alpha.Negate(), ext)
			if negated := score.Negate(); alpha.Less(negated) && negated.Less(beta) {
				// Failed high: re-search with a full window.
				score, rem = m.search(ctx, depth-1, beta.Negate(), negated.Negate(), ext)
			}
		}
		score = eval.IncrementMateDistance(score).Negate()
		m.b.PopMove()

		hasLegalMove = true
		if alpha.Less(score) {
			alpha = score
			pv = append([]board.Move{move}, rem...)
		}

		if alpha == beta || beta.Less(alpha) {
			break // cutoff
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.MateInXScore(0).Negate(), nil
		}
		return eval.ZeroScore, nil
	}

	return alpha, pv
}
