package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/davecgh/go-spew/spew"
)

// ConfigStruct is the glue for all configuration sections
type ConfigStruct struct {
	Common CommonConf `toml:"common"`
	Site   SiteConf   `toml:"site"`
	Server ServerConf `toml:"server"`
}

// CommonConf is the data required by every command
type CommonConf struct {
	Debug  bool   `toml:"debug"`
	LogDir string `toml:"log_dir"`
	// DataDir holds proposals.yaml and the README files
	DataDir string `toml:"data_dir"`
	// FlagsPath is the JSON file with runtime flags
	FlagsPath string `toml:"flags_path"`
}

// SiteConf is the data required to assemble the static site
type SiteConf struct {
	Title     string `toml:"title"`
	OutputDir string `toml:"output_dir"`
}

// ServerConf is the data required for the preview server
type ServerConf struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

func (s ServerConf) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

var (
	Common CommonConf
	Site   SiteConf
	Server ServerConf
)

func Default() ConfigStruct {
	return ConfigStruct{
		Common: CommonConf{DataDir: "data", FlagsPath: "flags.json"},
		Site:   SiteConf{Title: "TC39 Proposals", OutputDir: "out"},
		Server: ServerConf{Host: "localhost", Port: 8070},
	}
}

// Decode reads the file at path on top of the defaults. A missing file is not an error.
func Decode(path string) (ConfigStruct, error) {
	conf := Default()
	md, err := toml.DecodeFile(path, &conf)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("No config file, using defaults", slog.String("path", path))
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("could not decode config %q: %w", path, err)
	}
	if len(md.Undecoded()) > 0 {
		slog.Warn("There were a few undecoded keys in the config", slog.String("keys", spew.Sdump(md.Undecoded())))
	}
	return conf, nil
}

// Load decodes the config and publishes its sections.
func Load(path string) error {
	conf, err := Decode(path)
	if err != nil {
		return err
	}
	Common = conf.Common
	Site = conf.Site
	Server = conf.Server
	return nil
}
