package tracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProposal() *Proposal {
	link := Some("https://github.com/tc39/proposal-optional-chaining")
	return &Proposal{
		Title:     "Optional Chaining",
		TitleHTML: "Optional Chaining",
		Stage:     Stage4,
		Type:      TypeProposal,
		Link:      link,
		Stars:     Some(120),
		Champions: []string{"Jane Doe"},
		Hosting:   ClassifyHosting(link, Some(120)),
	}
}

func TestPaths(t *testing.T) {
	p := validProposal()
	assert.Equal(t, "/proposals/Optional%20Chaining", p.Path())
	assert.Equal(t, "/champions/Jane%20Doe", ChampionPath("Jane Doe"))
	assert.Equal(t, "/proposals/a%2Fb", (&Proposal{Title: "a/b"}).Path())
}

func TestValidate(t *testing.T) {
	require.NoError(t, validProposal().Validate())

	p := validProposal()
	p.Champions = nil
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMissingChampions.Error())

	p = validProposal()
	p.Champions = []string{"Jane Doe", "Jane Doe"}
	assert.ErrorContains(t, p.Validate(), "duplicate")

	p = validProposal()
	p.Stage = "7"
	assert.ErrorContains(t, p.Validate(), "unknown stage")

	p = validProposal()
	p.Link = Some("not a url at all")
	assert.ErrorContains(t, p.Validate(), "link")
}

func TestOption(t *testing.T) {
	v, ok := None[int]().Get()
	assert.False(t, ok)
	assert.Zero(t, v)

	n := 0
	assert.True(t, FromPtr(&n).IsSome(), "a present zero is still present")
	assert.False(t, FromPtr[int](nil).IsSome())
	assert.Equal(t, 5, None[int]().OrElse(5))
}

func TestStatusErrors(t *testing.T) {
	err := WrapStatus(ErrNotFound, errors.New("proposal \"x\""))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 404, ErrorCode(err))
	assert.Equal(t, 200, ErrorCode(nil))
	assert.Equal(t, 500, ErrorCode(errors.New("plain")))
}
