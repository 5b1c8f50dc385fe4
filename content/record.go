package content

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tc39tracker/tracker"
)

// stageValue accepts both `stage: 3` and `stage: "3"`.
type stageValue string

func (s *stageValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = stageValue(str)
		return nil
	}
	*s = stageValue(b)
	return nil
}

// record is one entry of proposals.yaml / proposals.json.
type record struct {
	Title     string     `yaml:"title" json:"title"`
	TitleHTML string     `yaml:"title_html" json:"title_html"`
	Stage     stageValue `yaml:"stage" json:"stage"`
	Type      string     `yaml:"type" json:"type"`

	Link  *string `yaml:"link" json:"link"`
	Stars *int    `yaml:"stars" json:"stars"`

	Authors   []string `yaml:"authors" json:"authors"`
	Champions []string `yaml:"champions" json:"champions"`

	LastPresentedHTML *string `yaml:"last_presented_html" json:"last_presented_html"`

	// Readme is a path relative to the dataset directory
	Readme        string `yaml:"readme" json:"readme"`
	ReadmeBaseURL string `yaml:"readme_base_url" json:"readme_base_url"`
}

type file struct {
	Proposals []record `yaml:"proposals" json:"proposals"`
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func (r *record) proposal() *tracker.Proposal {
	link := tracker.FromPtr(nonBlank(r.Link))
	stars := tracker.FromPtr(r.Stars)
	titleHTML := r.TitleHTML
	if titleHTML == "" {
		titleHTML = r.Title
	}
	return &tracker.Proposal{
		Title:             strings.TrimSpace(r.Title),
		TitleHTML:         titleHTML,
		Stage:             tracker.Stage(strings.TrimSpace(string(r.Stage))),
		Type:              tracker.ProposalType(strings.ToLower(strings.TrimSpace(r.Type))),
		Link:              link,
		Stars:             stars,
		Authors:           r.Authors,
		Champions:         r.Champions,
		LastPresentedHTML: tracker.FromPtr(nonBlank(r.LastPresentedHTML)),
		Hosting:           tracker.ClassifyHosting(link, stars),
	}
}
