package persona_test

import (
	"context"
	"testing"

	"github.com/avhq/personae/pkg/board"
	"github.com/avhq/personae/pkg/board/fen"
	"github.com/avhq/personae/pkg/eval"
	"github.com/avhq/personae/pkg/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolve finds the legal root move matching the from/to/promotion of a UCI move string.
func resolve(t *testing.T, b *board.Board, uci string) board.Move {
	t.Helper()

	partial, err := board.ParseMove(uci)
	require.NoError(t, err)

	for _, m := range b.Position().LegalMoves(b.Turn()) {
		if m.From == partial.From && m.To == partial.To && m.Promotion == partial.Promotion {
			return m
		}
	}

	t.Fatalf("move %v not legal in %v", uci, b.Position())
	return board.Move{}
}

func TestSelectDisabledReturnsBest(t *testing.T) {
	ctx := context.Background()

	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	best := resolve(t, b, "e2e4")

	actual := persona.Select(ctx, persona.Params{}, b, eval.Material{}, best)
	assert.Equal(t, best, actual)
}

func TestSelectPicksALegalCandidate(t *testing.T) {
	ctx := context.Background()

	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	best := resolve(t, b, "e2e4")

	p := persona.DefaultParams()
	p.HumanSelect = true

	legal := map[board.Move]bool{}
	for _, m := range b.Position().LegalMoves(b.Turn()) {
		legal[m] = true
	}

	for seed := int64(1); seed <= 20; seed++ {
		p.RandomSeed = seed
		actual := persona.Select(ctx, p, b, eval.Material{}, best)
		assert.Truef(t, legal[actual], "seed=%v picked illegal move %v", seed, actual)
	}
}

func TestSelectIsDeterministicPerSeed(t *testing.T) {
	ctx := context.Background()

	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	best := resolve(t, b, "e2e4")

	p := persona.DefaultParams()
	p.HumanSelect = true
	p.RandomSeed = 42
	p.HumanTemperature = 150
	p.HumanNoiseCp = 30

	first := persona.Select(ctx, p, b, eval.Material{}, best)
	second := persona.Select(ctx, p, b, eval.Material{}, best)
	assert.Equal(t, first, second)
}

func TestSelectFallsBackOnIllegalBest(t *testing.T) {
	ctx := context.Background()

	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	p := persona.DefaultParams()
	p.HumanSelect = true

	// A three-square pawn move is never legal, so it is never among the legal candidates Select
	// samples from: the returned move is a sampled legal candidate, not the illegal best.
	illegal := board.Move{Type: board.Jump, Piece: board.Pawn, From: board.A2, To: board.A5}

	actual := persona.Select(ctx, p, b, eval.Material{}, illegal)
	assert.NotEqual(t, illegal, actual)
}

func TestSelectZeroTemperatureFavorsTop(t *testing.T) {
	ctx := context.Background()

	// A position with one clearly best capture: temperature 0 plus a wide margin should
	// collapse the distribution almost entirely onto it.
	b, err := fen.NewBoard("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	best := resolve(t, b, "e4d5")

	p := persona.DefaultParams()
	p.HumanSelect = true
	p.HumanTemperature = 0
	p.HumanNoiseCp = 0
	p.CandidateMarginCp = 1000
	p.RandomSeed = 7

	actual := persona.Select(ctx, p, b, eval.Material{}, best)
	assert.Equal(t, best, actual)
}
