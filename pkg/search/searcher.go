package search

import (
	"context"
	"errors"

	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/eval"
)

// ErrHalted indicates a search was stopped via context cancellation before completing.
var ErrHalted = errors.New("search halted")

// Search implements search of the game tree to a fixed ply depth. Thread-safe; each call
// gets an exclusive Context and an exclusive (not concurrently mutated) Board.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}
