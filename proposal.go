package tracker

import (
	"errors"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ProposalType governs which ECMA standard a proposal targets.
type ProposalType string

const (
	TypeProposal ProposalType = "proposal"
	TypeInactive ProposalType = "inactive"
	TypeECMA262  ProposalType = "ecma262"
	TypeECMA402  ProposalType = "ecma402"
)

// Proposal is never mutated once the loader has built it.
type Proposal struct {
	Title     string       `json:"title"`
	TitleHTML string       `json:"title_html"`
	Stage     Stage        `json:"stage"`
	Type      ProposalType `json:"type"`

	Link  Option[string] `json:"-"`
	Stars Option[int]    `json:"-"`

	Authors   []string `json:"authors"`
	Champions []string `json:"champions"`

	LastPresentedHTML Option[string] `json:"-"`

	Hosting Hosting `json:"-"`
}

// Path is the navigation target of the proposal page.
func (p *Proposal) Path() string {
	return "/proposals/" + url.PathEscape(p.Title)
}

// ChampionPath is the navigation target of a person's page.
func ChampionPath(name string) string {
	return "/champions/" + url.PathEscape(name)
}

// Validate reports data-integrity problems. They are warnings for the build:
// rendering still proceeds with the affected sections left out.
func (p *Proposal) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.TitleHTML, validation.Required),
		validation.Field(&p.Champions,
			validation.Required.ErrorObject(validation.NewError("validation_champions_required", ErrMissingChampions.Error())),
			validation.By(noDuplicates),
		),
		validation.Field(&p.Authors, validation.By(noDuplicates)),
		validation.Field(&p.Stage, validation.By(func(value any) error {
			if s, _ := value.(Stage); !s.Valid() {
				return fmt.Errorf("unknown stage %q", string(s))
			}
			return nil
		})),
	)
	if link, ok := p.Link.Get(); ok {
		if lerr := validation.Validate(link, is.URL); lerr != nil {
			err = errors.Join(err, fmt.Errorf("link: %w", lerr))
		}
	}
	return err
}

func noDuplicates(value any) error {
	names, _ := value.([]string)
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
