package tracker

import (
	"net/url"
	"strings"
)

// Hosting tells where a proposal's canonical repository lives.
// It is either NotHosted or ForgeHosted.
type Hosting interface {
	hosting()
}

type NotHosted struct{}

func (NotHosted) hosting() {}

// ForgeHosted is a proposal living on a recognized code forge.
// Owner and Repo are empty when the link could not be parsed.
type ForgeHosted struct {
	Host  string
	Link  string
	Owner string
	Repo  string
	Stars Option[int]
}

func (ForgeHosted) hosting() {}

// Identity returns "owner/repo" when both parts are known.
func (f ForgeHosted) Identity() (string, bool) {
	if f.Owner == "" || f.Repo == "" {
		return "", false
	}
	return f.Owner + "/" + f.Repo, true
}

var knownForges = map[string]string{
	"github.com":     "github.com",
	"www.github.com": "github.com",
}

// ClassifyHosting inspects the link once, at ingestion.
func ClassifyHosting(link Option[string], stars Option[int]) Hosting {
	raw, ok := link.Get()
	if !ok {
		return NotHosted{}
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return NotHosted{}
	}
	host, ok := knownForges[strings.ToLower(u.Hostname())]
	if !ok {
		return NotHosted{}
	}

	f := ForgeHosted{Host: host, Link: u.String(), Stars: stars}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
		f.Owner = parts[0]
		f.Repo = strings.TrimSuffix(parts[1], ".git")
	}
	return f
}
