package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tc39tracker/tracker/internal/config"
)

type strArray []string

func (i *strArray) String() string {
	return strings.Join(*i, ";")
}

func (i *strArray) Set(value string) error {
	*i = append(*i, value)
	return nil
}

var outPaths strArray

// Writes the default config file, so new deployments start from every known key.
func main() {
	flag.Var(&outPaths, "target", "File paths where the config is written. Specify multiple times for multiple targets")
	flag.Parse()

	if len(outPaths) == 0 {
		log.Fatalln("No targets specified")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config.Default()); err != nil {
		log.Fatalln(err)
	}

	for _, path := range outPaths {
		if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
			log.Printf("Could not write config to %s: %v\n", path, err)
		}
	}
}
