package site

import (
	"fmt"

	"github.com/benbjohnson/hashfs"
	"github.com/spf13/afero"
	"github.com/tc39tracker/tracker/highlight"
	"github.com/tc39tracker/tracker/theme"
)

// Assets are the generated static files, addressable by content hash.
type Assets struct {
	*hashfs.FS

	mem   afero.Fs
	names []string
}

// Names lists every asset, unhashed.
func (a *Assets) Names() []string {
	return a.names
}

// Read returns the content of an asset by its unhashed name.
func (a *Assets) Read(name string) ([]byte, error) {
	return afero.ReadFile(a.mem, name)
}

// StylesheetName is the asset holding the theme and code highlighting rules.
func StylesheetName(th theme.Theme) string {
	return "theme-" + string(th.Name) + ".css"
}

// Stylesheet is the complete minified stylesheet of a theme.
func Stylesheet(th theme.Theme) (string, error) {
	code, err := highlight.StyleCSS(th.CodeStyle, th.Markdown.Scope)
	if err != nil {
		return "", err
	}
	return theme.MinifyCSS(th.RawCSS() + code)
}

// NewAssets generates the stylesheets of the given themes.
func NewAssets(themes ...theme.Theme) (*Assets, error) {
	mem := afero.NewMemMapFs()
	var names []string
	for _, th := range themes {
		css, err := Stylesheet(th)
		if err != nil {
			return nil, fmt.Errorf("couldn't generate %s stylesheet: %w", th.Name, err)
		}
		name := StylesheetName(th)
		if err := afero.WriteFile(mem, name, []byte(css), 0644); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return &Assets{
		FS:    hashfs.NewFS(afero.NewIOFS(mem)),
		mem:   mem,
		names: names,
	}, nil
}
