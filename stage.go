package tracker

import (
	"fmt"
	"slices"
)

// Stage is the TC39 maturity level of a proposal.
type Stage string

const (
	StageInactive Stage = "inactive"
	Stage0        Stage = "0"
	Stage1        Stage = "1"
	Stage2        Stage = "2"
	Stage2_7      Stage = "2.7"
	Stage3        Stage = "3"
	Stage4        Stage = "4"
)

// AllStages is ordered from the least to the most mature stage.
var AllStages = []Stage{StageInactive, Stage0, Stage1, Stage2, Stage2_7, Stage3, Stage4}

var stageLabels = map[Stage]string{
	StageInactive: "Inactive",
	Stage0:        "Stage 0",
	Stage1:        "Stage 1",
	Stage2:        "Stage 2",
	Stage2_7:      "Stage 2.7",
	Stage3:        "Stage 3",
	Stage4:        "Stage 4",
}

var stageDescriptions = map[Stage]string{
	StageInactive: "Proposals that have been withdrawn or rejected by the committee, or that their champions are no longer pursuing.",
	Stage0:        "Ideas that have not yet been presented to the committee, or were presented but not advanced.",
	Stage1:        "The committee expects to devote time to examining the problem space, solutions and cross-cutting concerns.",
	Stage2:        "The committee has chosen a preferred solution or solution space, but the design is a draft and may still change significantly.",
	Stage2_7:      "The proposal is approved in principle and undergoing validation through tests and prototype implementations.",
	Stage3:        "The proposal is recommended for implementation; no changes are expected without implementation experience.",
	Stage4:        "The proposal is complete and ready to be included in the next edition of the standard.",
}

// FormatStage returns the human readable label of a stage.
// Values outside AllStages are schema drift and yield ErrUnknownStage.
func FormatStage(s Stage) (string, error) {
	label, ok := stageLabels[s]
	if !ok {
		return "", WrapStatus(ErrUnknownStage, fmt.Errorf("stage %q", string(s)))
	}
	return label, nil
}

func StageDescription(s Stage) (string, error) {
	desc, ok := stageDescriptions[s]
	if !ok {
		return "", WrapStatus(ErrUnknownStage, fmt.Errorf("stage %q", string(s)))
	}
	return desc, nil
}

func ParseStage(s string) (Stage, error) {
	if _, ok := stageLabels[Stage(s)]; !ok {
		return "", WrapStatus(ErrUnknownStage, fmt.Errorf("stage %q", s))
	}
	return Stage(s), nil
}

// Rank is the position of the stage in AllStages.
func (s Stage) Rank() (int, bool) {
	idx := slices.Index(AllStages, s)
	return idx, idx >= 0
}

func (s Stage) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

// StagesDescending returns the listing order: most mature first.
func StagesDescending() []Stage {
	stages := slices.Clone(AllStages)
	slices.Reverse(stages)
	return stages
}
