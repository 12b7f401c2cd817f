// Package eval contains position evaluation logic and utilities.
package eval

import (
	"context"

	"github.com/avhq/personae/pkg/board"
)

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in centipawns, from the perspective of the side to move.
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Material returns the nominal material advantage balance for the side to move.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()

	var score Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		score += Score(pos.Piece(turn, p).PopCount()-pos.Piece(turn.Opponent(), p).PopCount()) * NominalValue(p)
	}
	return score
}

// NonPawnMaterial returns the side's total nominal material excluding pawns and the king. Used
// to guard null-move pruning against zugzwang-prone endgames, where passing is never safe.
func NonPawnMaterial(pos *board.Position, turn board.Color) Score {
	var total Score
	for _, p := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		total += Score(pos.Piece(turn, p).PopCount()) * NominalValue(p)
	}
	return total
}

// NominalValue is the absolute nominal value in centipawns of a piece. The King is given an
// arbitrary, deliberately-huge value so it always dominates material comparisons.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Bishop, board.Knight:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain for a move, in centipawns.
func NominalValueGain(m board.Move) Score {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}
