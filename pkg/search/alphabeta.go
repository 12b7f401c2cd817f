package search

import (
	"context"
	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// AlphaBeta implements alpha-beta pruning. Pseudo-code:
//
// function alphabeta(node, depth, α, β, maximizingPlayer) is
//
//	if depth = 0 or node is a terminal node then
//	    return the heuristic value of node
//	if maximizingPlayer then
//	    value := −∞
//	    for each child of node do
//	        value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* β cutoff *)
//	    return value
//	else
//	    value := +∞
//	    for each child of node do
//	        value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
//	        β := min(β, value)
//	        if β ≤ α then
//	            break (* α cutoff *)
//	    return value
//
// See: https://en.wikipedia.org/wiki/Alpha–beta_pruning.
type AlphaBeta struct {
	Explore Exploration
	Eval    QuietSearch
}

func (p AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runAlphaBeta{
		explore: fullIfNotSet(p.Explore),
		eval:    p.Eval,
		tt:      sctx.TT,
		noise:   sctx.Noise,
		ponder:  sctx.Ponder,
		b:       b,
		history: map[board.Move]int32{},
	}
	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() && !sctx.Beta.IsInvalid() && sctx.Alpha.Less(sctx.Beta) {
		low, high = sctx.Alpha, sctx.Beta
	}

	score, moves := run.search(ctx, depth, low, high, 0)
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

// historyCap bounds the history heuristic table before it is halved. History values share the
// priority scale with MVV-LVA, so a quiet move with a high history value can be ordered ahead of
// a capture.
const historyCap = 1 << 14

// nullMoveReduction is the depth reduction R applied to the verification search in null-move
// pruning.
const nullMoveReduction = 2

// nullMoveMinDepth is the shallowest depth at which null-move pruning is attempted.
const nullMoveMinDepth = 3

// maxKillerPly bounds the killer-move table; search trees deeper than this share the last slot.
const maxKillerPly = 64

// maxCheckExtension bounds the total one-ply check extensions granted along a single line, so a
// long forcing sequence of checks can't stall the search indefinitely.
const maxCheckExtension = 8

type runAlphaBeta struct {
	explore Exploration
	eval    QuietSearch
	tt      TranspositionTable
	noise   eval.Random
	b       *board.Board
	nodes   uint64

	ponder  []board.Move
	killers [maxKillerPly][2]board.Move
	history map[board.Move]int32
}

// search returns the positive score for the color. ext tracks how many one-ply check extensions
// have already been granted along this line, bounding the total extra depth a forcing sequence
// of checks can add.
func (m *runAlphaBeta) search(ctx context.Context, depth int, alpha, beta eval.Score, ext int) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.InvalidScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}

	// Mate-distance pruning: a mate found shallower than the current ply can't be improved on,
	// and a mate no shallower than the current ply can't be beaten either, so the window can be
	// clamped to the best/worst score reachable from here before searching a single move.
	ply := eval.Score(m.b.Ply())
	if mated := -(eval.Mate - ply); alpha < mated {
		alpha = mated
	}
	if mating := eval.Mate - ply - 1; beta > mating {
		beta = mating
	}
	if beta <= alpha {
		return alpha, nil
	}

	var best board.Move
	if bound, d, score, mv, ok := m.tt.Read(m.b.Hash()); ok {
		best = mv
		if depth == d && bound == ExactBound {
			// logw.Debugf(ctx, "TT: %v@%v = %v, %v", bound, d, score, move)
			return score, nil // cutoff
		} // else: not deep enough or precise enough
	}

	// Check extension: a node left in check is searched one ply deeper than its nominal budget,
	// since it has few replies and resolving the check is forced, not optional. Bounded by
	// maxCheckExtension so a long forcing sequence of checks can't stall the search.
	inCheck := m.b.Position().IsChecked(m.b.Turn())
	if inCheck && ext < maxCheckExtension {
		depth++
		ext++
	}

	if depth == 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
		nodes, score := m.eval.QuietSearch(ctx, sctx, m.b)
		m.nodes += nodes

		m.tt.Write(m.b.Hash(), ExactBound, m.b.Ply(), 0, score, board.Move{})
		return score, nil
	}

	m.nodes++

	// Null-move pruning applies at nullMoveMinDepth or more remaining plies, so a fixed-depth
	// search of that depth or deeper can return a different score than a full-width search.
	if depth >= nullMoveMinDepth && !inCheck && !beta.IsMate() && eval.NonPawnMaterial(m.b.Position(), m.b.Turn()) > 0 {
		if score, ok := m.nullMoveScore(ctx, depth, beta, ext); ok && !score.Less(beta) {
			return beta, nil
		}
	}

	hasLegalMove := false
	bound := ExactBound
	var pv []board.Move

	priority, explore := m.explore(ctx, m.b)
	priority = m.withOrderingHints(m.b.Ply(), priority)

	if len(m.ponder) > 0 {
		explore = m.ponder[0].Equals // overwrite: use ponder move even if not intended to be explored
		m.ponder = m.ponder[1:]
	}

	moves := board.NewMoveList(m.b.Position().PseudoLegalMoves(m.b.Turn()), board.First(best, priority))
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !m.b.PushMove(move) {
			continue // skip: not legal
		}

		if explore(move) {
			score, rem := m.search(ctx, depth-1, beta.Negate(), alpha.Negate(), ext)
			score = eval.IncrementMateDistance(score).Negate()
			if alpha.Less(score) {
				alpha = score
				pv = append([]board.Move{move}, rem...)
			}
		}

		m.b.PopMove()
		hasLegalMove = true

		if alpha == beta || beta.Less(alpha) {
			bound = LowerBound
			if !move.IsCapture() && !move.IsPromotion() {
				m.recordKiller(m.b.Ply(), move)
				m.bumpHistory(move, depth)
			}
			break // cutoff
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.MateInXScore(0).Negate(), nil
		}
		return eval.ZeroScore, nil
	}

	if bound == ExactBound {
		m.tt.Write(m.b.Hash(), bound, m.b.Ply(), depth, alpha, firstOrNone(pv))
	}
	return alpha, pv
}

// nullMoveScore runs the reduced-depth null-move verification search: the side to move passes,
// and if the opponent still cannot do better than beta even with a free tempo, the position is
// assumed to fail high without searching it properly. Returns ok=false if the search was
// cancelled mid-probe.
func (m *runAlphaBeta) nullMoveScore(ctx context.Context, depth int, beta eval.Score, ext int) (eval.Score, bool) {
	m.b.PushNull()
	score, _ := m.search(ctx, depth-1-nullMoveReduction, beta.Negate(), beta.Negate()+1, ext)
	m.b.PopNull()

	if score.IsInvalid() {
		return eval.InvalidScore, false
	}
	return eval.IncrementMateDistance(score).Negate(), true
}

// withOrderingHints layers killer moves and the history heuristic on top of base: a move base
// already ranks as tactical (MVV-LVA > 0) is left untouched, since killers/history are only
// useful for telling quiet moves apart.
func (m *runAlphaBeta) withOrderingHints(ply int, base board.MovePriorityFn) board.MovePriorityFn {
	slot := ply
	if slot >= maxKillerPly {
		slot = maxKillerPly - 1
	}
	killers := m.killers[slot]

	return func(mv board.Move) board.MovePriority {
		if p := base(mv); p > 0 {
			return p
		}
		switch {
		case killers[0].Equals(mv):
			return 2
		case killers[1].Equals(mv):
			return 1
		default:
			return board.MovePriority(m.history[mv])
		}
	}
}

func (m *runAlphaBeta) recordKiller(ply int, move board.Move) {
	slot := ply
	if slot >= maxKillerPly {
		slot = maxKillerPly - 1
	}
	if m.killers[slot][0].Equals(move) {
		return
	}
	m.killers[slot][1] = m.killers[slot][0]
	m.killers[slot][0] = move
}

func (m *runAlphaBeta) bumpHistory(move board.Move, depth int) {
	v := m.history[move] + int32(depth*depth)
	if v > historyCap {
		for k := range m.history {
			m.history[k] /= 2
		}
		v /= 2
	}
	m.history[move] = v
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}

func fullIfNotSet(p Exploration) Exploration {
	if p == nil {
		return FullExploration
	}
	return p
}
