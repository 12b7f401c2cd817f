package uci

import (
	"strconv"

	"github.com/avhq/personae/pkg/persona"
)

// personaOptions lists the UCI "option" lines advertising the human-selection personality
// knobs, with the ranges from the external interface table.
func personaOptions() []string {
	return []string{
		"option name HumanSelect type check default false",
		"option name HumanTemperature type spin default 0 min 0 max 200",
		"option name HumanNoiseCp type spin default 0 min 0 max 50",
		"option name RandomSeed type spin default 0 min 0 max 2147483647",
		"option name RiskAppetite type spin default 100 min 0 max 200",
		"option name SacrificeBias type spin default 100 min 0 max 200",
		"option name SimplicityBias type spin default 100 min 0 max 200",
		"option name TradeBias type spin default 100 min 0 max 200",
		"option name HumanHardFloorCp type spin default 0 min 0 max 600",
		"option name HumanOpeningSanity type spin default 0 min 0 max 200",
		"option name HumanTopKOverride type spin default 0 min 0 max 10",
		"option name CandidateMarginCp type spin default 200 min 0 max 400",
		"option name CandidateMovesMax type spin default 5 min 1 max 30",
	}
}

// applyPersonaOption sets the named field on p from value, reporting whether name was
// recognized as a persona option at all.
func applyPersonaOption(p *persona.Params, name, value string) bool {
	switch name {
	case "HumanSelect":
		p.HumanSelect, _ = strconv.ParseBool(value)
	case "HumanTemperature":
		p.HumanTemperature, _ = strconv.Atoi(value)
	case "HumanNoiseCp":
		p.HumanNoiseCp, _ = strconv.Atoi(value)
	case "RandomSeed":
		p.RandomSeed, _ = strconv.ParseInt(value, 10, 64)
	case "RiskAppetite":
		p.RiskAppetite, _ = strconv.Atoi(value)
	case "SacrificeBias":
		p.SacrificeBias, _ = strconv.Atoi(value)
	case "SimplicityBias":
		p.SimplicityBias, _ = strconv.Atoi(value)
	case "TradeBias":
		p.TradeBias, _ = strconv.Atoi(value)
	case "HumanHardFloorCp":
		p.HumanHardFloorCp, _ = strconv.Atoi(value)
	case "HumanOpeningSanity":
		p.HumanOpeningSanity, _ = strconv.Atoi(value)
	case "HumanTopKOverride":
		p.HumanTopKOverride, _ = strconv.Atoi(value)
	case "CandidateMarginCp":
		p.CandidateMarginCp, _ = strconv.Atoi(value)
	case "CandidateMovesMax":
		p.CandidateMovesMax, _ = strconv.Atoi(value)
	default:
		return false
	}
	return true
}
