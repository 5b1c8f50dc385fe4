// Package components holds the HTML views of the tracker.
//
// Views are templ components. Every view takes the resolved theme as an
// argument instead of reading it from global state.
package components

//go:generate go tool templ generate

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// failed is a component that writes nothing and reports err. Views that need
// to validate their input before any markup is written return it.
func failed(err error) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error {
		return err
	})
}

// RenderString renders c into a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
