package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/avhq/personae/pkg/engine"
	"github.com/avhq/personae/pkg/engine/console"
	"github.com/avhq/personae/pkg/engine/uci"
	"github.com/avhq/personae/pkg/eval"
	"github.com/avhq/personae/pkg/persona"
	"github.com/avhq/personae/pkg/search"
	"github.com/seekerror/logw"
)

var (
	noise = flag.Int("noise", 0, "Evaluation noise in millipawns (zero if deterministic)")

	human       = flag.Bool("human", false, "Enable root human move selection")
	temperature = flag.Int("human_temperature", 60, "Softmax temperature x100 for human move selection")
	humanNoise  = flag.Int("human_noise_cp", 15, "Per-candidate multiplicative noise, in cp")
	seed        = flag.Int64("random_seed", 0, "Random seed for human move selection (0 = nondeterministic)")

	riskAppetite   = flag.Int("risk_appetite", 100, "Risk appetite, 100 is neutral")
	simplicityBias = flag.Int("simplicity_bias", 100, "Simplicity bias, 100 is neutral")
	sacrificeBias  = flag.Int("sacrifice_bias", 100, "Sacrifice bias, 100 is neutral")
	tradeBias      = flag.Int("trade_bias", 100, "Trade bias, 100 is neutral")

	hardFloorCp     = flag.Int("human_hard_floor_cp", 300, "Absolute candidate floor from best, in cp")
	openingSanity   = flag.Int("human_opening_sanity", 100, "Opening edge-move penalty scale")
	topKOverride    = flag.Int("human_topk_override", 0, "Hard cap on candidates before margin/count filter (0=disabled)")
	candidateMargin = flag.Int("candidate_margin_cp", 200, "Max score gap from best to remain a candidate, in cp")
	candidateMax    = flag.Int("candidate_moves_max", 5, "Hard cap on candidate count")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: personae [options]

PERSONAE is a UCI chess engine with a configurable human-style root move
selection personality layered over alpha-beta search.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	s := search.AlphaBeta{
		Eval: search.Quiescence{
			Explore: search.TacticalExploration,
			Eval:    search.StaticEval{Eval: eval.Material{}},
		},
	}

	p := persona.Params{
		HumanSelect:        *human,
		HumanTemperature:   *temperature,
		HumanNoiseCp:       *humanNoise,
		RandomSeed:         *seed,
		RiskAppetite:       *riskAppetite,
		SimplicityBias:     *simplicityBias,
		SacrificeBias:      *sacrificeBias,
		TradeBias:          *tradeBias,
		HumanHardFloorCp:   *hardFloorCp,
		HumanOpeningSanity: *openingSanity,
		HumanTopKOverride:  *topKOverride,
		CandidateMarginCp:  *candidateMargin,
		CandidateMovesMax:  *candidateMax,
	}

	e := engine.New(ctx, "personae", "avhq", s,
		engine.WithOptions(engine.Options{Noise: uint(*noise)}),
		engine.WithPersona(p, eval.Material{}),
	)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
