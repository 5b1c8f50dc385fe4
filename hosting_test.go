package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHosting(t *testing.T) {
	type testCase struct {
		Name     string
		Link     Option[string]
		Forge    bool
		Identity string
	}
	cases := []testCase{
		{Name: "no link", Link: None[string]()},
		{Name: "github repo", Link: Some("https://github.com/tc39/proposal-optional-chaining"), Forge: true, Identity: "tc39/proposal-optional-chaining"},
		{Name: "github with www and .git", Link: Some("https://www.github.com/tc39/ecma262.git"), Forge: true, Identity: "tc39/ecma262"},
		{Name: "github subpage", Link: Some("https://github.com/tc39/proposals/blob/main/README.md"), Forge: true, Identity: "tc39/proposals"},
		{Name: "github owner only", Link: Some("https://github.com/tc39"), Forge: true},
		{Name: "other host", Link: Some("https://tc39.es/proposal-temporal/")},
		{Name: "relative", Link: Some("proposal-x")},
		{Name: "garbage", Link: Some("http://[::1")},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			h := ClassifyHosting(tc.Link, Some(3))
			forge, ok := h.(ForgeHosted)
			if !tc.Forge {
				assert.False(t, ok)
				assert.IsType(t, NotHosted{}, h)
				return
			}
			require.True(t, ok)
			assert.Equal(t, "github.com", forge.Host)
			assert.Equal(t, 3, forge.Stars.OrElse(0))
			id, ok := forge.Identity()
			if tc.Identity == "" {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tc.Identity, id)
		})
	}
}
