// Package content loads the proposal dataset produced by the fetcher.
//
// The dataset directory holds proposals.yaml (or proposals.json) and the
// README files it references. Records are classified and validated exactly
// once here; everything downstream treats them as read-only.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/tc39tracker/tracker"
	"github.com/tc39tracker/tracker/integrations/prometheus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var indexFiles = []string{"proposals.yaml", "proposals.yml", "proposals.json"}

// Entry is a proposal together with its README.
type Entry struct {
	Proposal *tracker.Proposal
	// Readme is raw markdown, empty if the proposal has none
	Readme string
	// ReadmeBase is the URL relative README links resolve against, may be empty
	ReadmeBase string
}

type Dataset struct {
	Entries []*Entry

	byTitle map[string]*Entry
}

// Load reads the dataset in dir. Only a missing or undecodable index is fatal;
// problems with single records are logged and the record is kept if possible.
func Load(ctx context.Context, fsys afero.Fs, dir string) (*Dataset, error) {
	var (
		f     file
		found bool
	)
	for _, name := range indexFiles {
		p := path.Join(dir, name)
		ok, err := afero.Exists(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("couldn't stat %q: %w", p, err)
		}
		if !ok {
			continue
		}
		data, err := afero.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("couldn't read %q: %w", p, err)
		}
		if err := decode(name, data, &f); err != nil {
			return nil, fmt.Errorf("couldn't decode %q: %w", p, err)
		}
		found = true
		break
	}
	if !found {
		return nil, tracker.WrapStatus(tracker.ErrNotFound, fmt.Errorf("no %s in %q", strings.Join(indexFiles, "/"), dir))
	}

	ds := &Dataset{byTitle: make(map[string]*Entry, len(f.Proposals))}
	for i := range f.Proposals {
		rec := &f.Proposals[i]
		p := rec.proposal()
		if p.Title == "" {
			prometheus.IntegrityWarnings.Inc()
			slog.WarnContext(ctx, "Skipping proposal without title", slog.Int("index", i))
			continue
		}
		if _, ok := ds.byTitle[p.Title]; ok {
			prometheus.IntegrityWarnings.Inc()
			slog.WarnContext(ctx, "Skipping duplicate proposal", slog.String("proposal", p.Title))
			continue
		}
		if err := p.Validate(); err != nil {
			prometheus.IntegrityWarnings.Inc()
			slog.WarnContext(ctx, "Proposal has data-integrity problems", slog.String("proposal", p.Title), slog.Any("err", err))
		}

		entry := &Entry{Proposal: p, ReadmeBase: readmeBase(rec, p)}
		if rec.Readme != "" {
			data, err := afero.ReadFile(fsys, path.Join(dir, rec.Readme))
			if err != nil {
				prometheus.IntegrityWarnings.Inc()
				slog.WarnContext(ctx, "Couldn't read README", slog.String("proposal", p.Title), slog.Any("err", err))
			} else {
				entry.Readme = string(data)
			}
		}
		ds.Entries = append(ds.Entries, entry)
		ds.byTitle[p.Title] = entry
	}
	slog.DebugContext(ctx, "Loaded dataset", slog.Int("proposals", len(ds.Entries)), slog.String("dir", dir))
	return ds, nil
}

func decode(name string, data []byte, f *file) error {
	if strings.HasSuffix(name, ".json") {
		return json.Unmarshal(data, f)
	}
	return yaml.Unmarshal(data, f)
}

// readmeBase prefers the explicit base URL, then the repository's default branch.
func readmeBase(rec *record, p *tracker.Proposal) string {
	if rec.ReadmeBaseURL != "" {
		return rec.ReadmeBaseURL
	}
	if h, ok := p.Hosting.(tracker.ForgeHosted); ok {
		if ident, ok := h.Identity(); ok {
			return "https://" + h.Host + "/" + ident + "/blob/HEAD/"
		}
	}
	return ""
}

func (ds *Dataset) Lookup(title string) (*Entry, error) {
	e, ok := ds.byTitle[title]
	if !ok {
		return nil, tracker.WrapStatus(tracker.ErrNotFound, fmt.Errorf("proposal %q", title))
	}
	return e, nil
}

func (ds *Dataset) Proposals() []*tracker.Proposal {
	out := make([]*tracker.Proposal, 0, len(ds.Entries))
	for _, e := range ds.Entries {
		out = append(out, e.Proposal)
	}
	return out
}

// ByStage groups proposals by stage, keeping dataset order inside a group.
// Unknown stages get their own key; callers decide what to do with them.
func (ds *Dataset) ByStage() map[tracker.Stage][]*tracker.Proposal {
	groups := make(map[tracker.Stage][]*tracker.Proposal)
	for _, e := range ds.Entries {
		groups[e.Proposal.Stage] = append(groups[e.Proposal.Stage], e.Proposal)
	}
	return groups
}

// People returns every champion and author once, in collation order.
func (ds *Dataset) People() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range ds.Entries {
		for _, name := range slices.Concat(e.Proposal.Champions, e.Proposal.Authors) {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	collate.New(language.English, collate.Loose).SortStrings(names)
	return names
}

// ProposalsOf returns what name champions and what they authored.
func (ds *Dataset) ProposalsOf(name string) (championed, authored []*tracker.Proposal, err error) {
	for _, e := range ds.Entries {
		if slices.Contains(e.Proposal.Champions, name) {
			championed = append(championed, e.Proposal)
		}
		if slices.Contains(e.Proposal.Authors, name) {
			authored = append(authored, e.Proposal)
		}
	}
	if len(championed) == 0 && len(authored) == 0 {
		return nil, nil, tracker.WrapStatus(tracker.ErrNotFound, fmt.Errorf("person %q", name))
	}
	return championed, authored, nil
}
