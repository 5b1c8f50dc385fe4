package tracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatStageKnown(t *testing.T) {
	for _, stage := range AllStages {
		label, err := FormatStage(stage)
		require.NoError(t, err, "stage %q", stage)
		assert.NotEmpty(t, label)
	}

	label, err := FormatStage(Stage4)
	require.NoError(t, err)
	assert.Equal(t, "Stage 4", label)
}

func TestFormatStageUnknown(t *testing.T) {
	for _, stage := range []Stage{"", "5", "stage 3", "Inactive"} {
		label, err := FormatStage(stage)
		assert.Empty(t, label)
		require.Error(t, err, "stage %q", stage)
		assert.True(t, errors.Is(err, ErrUnknownStage))
		assert.Contains(t, err.Error(), string(stage))
	}
}

func TestStageDescriptionsCoverAllStages(t *testing.T) {
	for _, stage := range AllStages {
		desc, err := StageDescription(stage)
		require.NoError(t, err)
		assert.NotEmpty(t, desc)
	}
	_, err := StageDescription("9")
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestStagesDescending(t *testing.T) {
	stages := StagesDescending()
	require.Len(t, stages, len(AllStages))
	assert.Equal(t, Stage4, stages[0])
	assert.Equal(t, StageInactive, stages[len(stages)-1])

	for i := 1; i < len(stages); i++ {
		prev, _ := stages[i-1].Rank()
		cur, _ := stages[i].Rank()
		assert.Greater(t, prev, cur)
	}

	// AllStages must not be reordered in place
	assert.Equal(t, StageInactive, AllStages[0])
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("2.7")
	require.NoError(t, err)
	assert.Equal(t, Stage2_7, s)

	_, err = ParseStage("2.5")
	assert.ErrorIs(t, err, ErrUnknownStage)
	assert.Equal(t, 500, ErrorCode(err))
}
