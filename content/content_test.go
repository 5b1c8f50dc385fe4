package content

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tc39tracker/tracker"
)

const datasetYAML = `
proposals:
  - title: Optional Chaining
    title_html: Optional Chaining
    stage: 4
    type: proposal
    link: https://github.com/tc39/proposal-optional-chaining
    stars: 120
    champions: [Jane Doe]
    readme: readmes/optional-chaining.md
  - title: Change Array by Copy
    stage: 2.7
    type: proposal
    link: https://example.org/change-array-by-copy
    authors: [Ashley Claymore]
    champions: [Ashley Claymore, Robin Ricard]
    last_presented_html: <a href="https://github.com/tc39/notes">June 2022</a>
    readme_base_url: https://example.org/docs/
  - title: Optional Chaining
    stage: 1
    champions: [Someone]
  - title: Orphan
    stage: 0
    type: inactive
    readme: readmes/missing.md
`

func memDataset(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "data/proposals.yaml", []byte(datasetYAML), 0644))
	require.NoError(t, afero.WriteFile(fsys, "data/readmes/optional-chaining.md", []byte("# Optional Chaining\n\nSee [spec](spec.html)."), 0644))
	return fsys
}

func TestLoadYAML(t *testing.T) {
	ds, err := Load(context.Background(), memDataset(t), "data")
	require.NoError(t, err)
	require.Len(t, ds.Entries, 3, "duplicate title must be skipped")

	oc, err := ds.Lookup("Optional Chaining")
	require.NoError(t, err)
	p := oc.Proposal
	assert.Equal(t, tracker.Stage4, p.Stage)
	assert.Equal(t, tracker.Some(120), p.Stars)
	assert.Contains(t, oc.Readme, "# Optional Chaining")
	assert.Equal(t, "https://github.com/tc39/proposal-optional-chaining/blob/HEAD/", oc.ReadmeBase)

	h, ok := p.Hosting.(tracker.ForgeHosted)
	require.True(t, ok)
	ident, ok := h.Identity()
	require.True(t, ok)
	assert.Equal(t, "tc39/proposal-optional-chaining", ident)

	cabc, err := ds.Lookup("Change Array by Copy")
	require.NoError(t, err)
	assert.Equal(t, tracker.Stage2_7, cabc.Proposal.Stage)
	assert.Equal(t, "Change Array by Copy", cabc.Proposal.TitleHTML)
	assert.Equal(t, tracker.NotHosted{}, cabc.Proposal.Hosting)
	assert.False(t, cabc.Proposal.Stars.IsSome())
	assert.Equal(t, "https://example.org/docs/", cabc.ReadmeBase)
	assert.True(t, cabc.Proposal.LastPresentedHTML.IsSome())

	orphan, err := ds.Lookup("Orphan")
	require.NoError(t, err)
	assert.Empty(t, orphan.Readme)
	assert.Empty(t, orphan.ReadmeBase)
}

func TestLoadJSON(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "d/proposals.json", []byte(`{"proposals":[
		{"title":"Temporal","stage":3,"type":"proposal","champions":["Philipp Dunkel"],"stars":null},
		{"title":"Decorators","stage":"2.7","type":"proposal","champions":["Chris Hewell Garrett"]}
	]}`), 0644))

	ds, err := Load(context.Background(), fsys, "d")
	require.NoError(t, err)
	require.Len(t, ds.Entries, 2)
	assert.Equal(t, tracker.Stage3, ds.Entries[0].Proposal.Stage)
	assert.False(t, ds.Entries[0].Proposal.Stars.IsSome())
	assert.Equal(t, tracker.Stage2_7, ds.Entries[1].Proposal.Stage)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(context.Background(), afero.NewMemMapFs(), "nope")
	require.ErrorIs(t, err, tracker.ErrNotFound)
	assert.Equal(t, 404, tracker.ErrorCode(err))
}

func TestLoadBroken(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "d/proposals.yaml", []byte("proposals: [\n"), 0644))
	_, err := Load(context.Background(), fsys, "d")
	require.Error(t, err)
	assert.NotErrorIs(t, err, tracker.ErrNotFound)
}

func TestLookupMissing(t *testing.T) {
	ds, err := Load(context.Background(), memDataset(t), "data")
	require.NoError(t, err)
	_, err = ds.Lookup("Pipeline Operator")
	require.ErrorIs(t, err, tracker.ErrNotFound)
}

func TestByStage(t *testing.T) {
	ds, err := Load(context.Background(), memDataset(t), "data")
	require.NoError(t, err)
	groups := ds.ByStage()
	assert.Len(t, groups[tracker.Stage4], 1)
	assert.Len(t, groups[tracker.Stage2_7], 1)
	assert.Len(t, groups[tracker.Stage0], 1)
	assert.Empty(t, groups[tracker.Stage1])
}

func TestPeople(t *testing.T) {
	ds, err := Load(context.Background(), memDataset(t), "data")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ashley Claymore", "Jane Doe", "Robin Ricard"}, ds.People())

	championed, authored, err := ds.ProposalsOf("Ashley Claymore")
	require.NoError(t, err)
	assert.Len(t, championed, 1)
	assert.Len(t, authored, 1)

	_, _, err = ds.ProposalsOf("Nobody")
	require.ErrorIs(t, err, tracker.ErrNotFound)
}
