package persona

import (
	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/eval"
)

// CandidateMove is a root move scored by a one-ply static evaluation, decorated with a
// selection weight and probability once Select has run its guardrails and softmax.
type CandidateMove struct {
	Move   board.Move
	Score  eval.Score
	Weight float64
	Prob   float64
}

func moveKey(m board.Move) int64 {
	return int64(m.From) | int64(m.To)<<6 | int64(m.Type)<<12 | int64(m.Promotion)<<16
}
