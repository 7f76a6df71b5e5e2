/*
 * config.go, part of molview.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config loads the molview settings from an optional YAML file,
// MOLVIEW_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/internal/logging"
	"github.com/rmera/molview/view"
)

const envPrefix = "MOLVIEW"

// Config is the full configuration of the molview executable.
type Config struct {
	Log     logging.Config `mapstructure:"log"`
	View    ViewConfig     `mapstructure:"view"`
	Bonding BondingConfig  `mapstructure:"bonding"`
	Convert ConvertConfig  `mapstructure:"convert"`
	Render  RenderConfig   `mapstructure:"render"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
}

type ViewConfig struct {
	Resolution      int `mapstructure:"resolution"`
	AORes           int `mapstructure:"ao_resolution"`
	SamplesPerFrame int `mapstructure:"samples_per_frame"`
}

// BondingConfig is the bonding window, in multiples of the sum of covalent radii.
type BondingConfig struct {
	MinFactor float64 `mapstructure:"min_factor"`
	MaxFactor float64 `mapstructure:"max_factor"`
}

type ConvertConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RenderConfig struct {
	FPS    int    `mapstructure:"fps"`
	Frames int    `mapstructure:"frames"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	// Empty disables the metrics endpoint.
	Addr string `mapstructure:"addr"`
}

// DefaultConvertURL is the structure conversion service used by default.
const DefaultConvertURL = "https://www.ebi.ac.uk/chembl/api/utils"

var defaults = map[string]interface{}{
	"log.level":              "info",
	"log.format":             "console",
	"log.output_paths":       []string{"stderr"},
	"view.resolution":        view.DefaultResolution,
	"view.ao_resolution":     view.DefaultAORes,
	"view.samples_per_frame": view.DefaultSamplesPerFrame,
	"bonding.min_factor":     chem.DefaultMinBondFactor,
	"bonding.max_factor":     chem.DefaultMaxBondFactor,
	"convert.base_url":       DefaultConvertURL,
	"convert.timeout":        15 * time.Second,
	"render.fps":             30,
	"render.frames":          16,
	"render.output":          "molview.png",
	"metrics.addr":           "",
}

// NewViper returns a viper instance with the molview defaults, YAML config type
// and MOLVIEW_ environment overrides, where "bonding.max_factor" is read from
// MOLVIEW_BONDING_MAX_FACTOR.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// Load reads the YAML file at path, if path is not empty, and returns the
// validated configuration.
func Load(path string) (*Config, error) {
	return LoadViper(NewViper(), path)
}

// LoadViper is Load on an existing viper instance, so callers can bind flags first.
func LoadViper(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %q: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values no component can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.View.Resolution <= 0 {
		errs = append(errs, fmt.Errorf("view.resolution must be positive, got %d", c.View.Resolution))
	}
	if c.View.AORes <= 0 {
		errs = append(errs, fmt.Errorf("view.ao_resolution must be positive, got %d", c.View.AORes))
	}
	if c.View.SamplesPerFrame <= 0 {
		errs = append(errs, fmt.Errorf("view.samples_per_frame must be positive, got %d", c.View.SamplesPerFrame))
	}
	if c.Bonding.MinFactor < 0 || c.Bonding.MaxFactor < c.Bonding.MinFactor {
		errs = append(errs, fmt.Errorf("bonding window [%g, %g] is not valid", c.Bonding.MinFactor, c.Bonding.MaxFactor))
	}
	if u, err := url.Parse(c.Convert.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("convert.base_url %q is not an http(s) URL", c.Convert.BaseURL))
	}
	if c.Convert.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("convert.timeout must be positive, got %s", c.Convert.Timeout))
	}
	if c.Render.FPS <= 0 {
		errs = append(errs, fmt.Errorf("render.fps must be positive, got %d", c.Render.FPS))
	}
	if c.Render.Frames <= 0 {
		errs = append(errs, fmt.Errorf("render.frames must be positive, got %d", c.Render.Frames))
	}
	return errors.Join(errs...)
}

// BondOptions returns the bonding window as loader options.
func (c *Config) BondOptions() []chem.BondOption {
	return []chem.BondOption{chem.WithBondFactors(c.Bonding.MinFactor, c.Bonding.MaxFactor)}
}

// ViewOptions returns the fixed view settings as view options.
func (c *Config) ViewOptions() []view.Option {
	return []view.Option{
		view.WithResolution(c.View.Resolution),
		view.WithAORes(c.View.AORes),
		view.WithSamplesPerFrame(c.View.SamplesPerFrame),
	}
}
