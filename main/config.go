package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/synqronlabs/authlens"
	"github.com/synqronlabs/authlens/authres"
	"github.com/synqronlabs/authlens/suffix"
)

// fileConfig is the YAML configuration file:
//
//	trust: strict        # or fallback-all
//	psl: icann           # or curated
//	delays:
//	  warning: 90s
//	  danger: 10m
type fileConfig struct {
	Trust  authres.TrustPolicy `yaml:"trust"`
	PSL    string              `yaml:"psl"`
	Delays struct {
		Warning time.Duration `yaml:"warning"`
		Danger  time.Duration `yaml:"danger"`
	} `yaml:"delays"`
}

func loadConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fc, nil
}

// apply overlays fc on c. Empty fields keep the analyzer defaults.
func (fc fileConfig) apply(c authlens.Config) (authlens.Config, error) {
	c.Trust = fc.Trust

	switch strings.ToLower(fc.PSL) {
	case "", "curated":
		c.Suffixes = suffix.Curated
	case "icann":
		c.Suffixes = suffix.ICANN
	default:
		return c, fmt.Errorf("unknown public suffix list %q", fc.PSL)
	}

	c.Delays.Warning = fc.Delays.Warning
	c.Delays.Danger = fc.Delays.Danger
	if c.Delays.Warning > 0 && c.Delays.Danger > 0 && c.Delays.Danger < c.Delays.Warning {
		return c, fmt.Errorf("danger delay %s is below warning delay %s", c.Delays.Danger, c.Delays.Warning)
	}
	return c, nil
}
