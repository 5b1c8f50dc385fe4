package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/tc39tracker/tracker/site"
	"github.com/tc39tracker/tracker/theme"
)

var (
	outDir = flag.String("o", ".", "output directory")
)

// Writes the stylesheet of every theme variant, for hosting the site without the build step.
func main() {
	flag.Parse()
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Could not create `%s`: %v", *outDir, err)
	}
	for _, v := range theme.Variants {
		th := theme.MustResolve(v)
		css, err := site.Stylesheet(th)
		if err != nil {
			log.Fatalf("Could not generate `%s` stylesheet: %v", v, err)
		}
		name := filepath.Join(*outDir, site.StylesheetName(th))
		if err := os.WriteFile(name, []byte(css), 0644); err != nil {
			log.Fatalf("Could not write `%s`", name)
		}
	}
}
