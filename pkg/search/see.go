package search

import (
	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/eval"
)

// SEE computes the Static Exchange Evaluation for a capture on m.To: the net material gain,
// in centipawns, of the full sequence of recaptures on that square, assuming both sides play
// the locally-optimal (least-valuable-attacker-first) capture order. Used to prune clearly
// losing captures from quiescence search without having to search them out.
func SEE(pos *board.Position, side board.Color, m board.Move) eval.Score {
	target := m.To
	victim := m.Capture
	if m.Type == board.EnPassant {
		victim = board.Pawn
	}

	gain := make([]eval.Score, 0, 32)
	gain = append(gain, eval.NominalValue(victim))

	occ := pos
	attacker := side
	piece := m.Piece
	from := m.From

	for {
		occ = occ.WithoutPiece(attacker, piece, from)
		attacker = attacker.Opponent()

		attackers := eval.SortByNominalValue(eval.FindCapture(occ, attacker, target))
		if len(attackers) == 0 {
			break
		}

		next := attackers[0]
		gain = append(gain, eval.NominalValue(piece)-gain[len(gain)-1])

		piece = next.Piece
		from = next.Square
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}
