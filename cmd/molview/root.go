/*
 * root.go, part of molview.
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

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/convert"
	"github.com/rmera/molview/internal/config"
	"github.com/rmera/molview/internal/logging"
	"github.com/rmera/molview/session"
	"github.com/rmera/molview/view"
)

// app carries what every subcommand needs once the root command initialized it.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	logger     logging.Logger
}

// flagBindings maps config keys to the persistent flags that override them.
var flagBindings = map[string]string{
	"log.level":              "log-level",
	"log.format":             "log-format",
	"view.resolution":        "resolution",
	"view.ao_resolution":     "ao-resolution",
	"view.samples_per_frame": "samples",
	"bonding.min_factor":     "min-bond-factor",
	"bonding.max_factor":     "max-bond-factor",
	"convert.base_url":       "convert-url",
	"convert.timeout":        "convert-timeout",
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.NewViper(), logger: logging.NewNopLogger()}
	cmd := &cobra.Command{
		Use:   "molview",
		Short: "Ball-and-stick viewer for small molecules",
		Long: "molview infers the bonds of a molecular structure from its geometry and renders\n" +
			"it with ambient occlusion. Structures are XYZ or JSON files, or chemical line\n" +
			"notations converted by a remote service.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.Int("resolution", view.DefaultResolution, "output resolution in pixels")
	pf.Int("ao-resolution", view.DefaultAORes, "resolution of the ambient occlusion depth maps")
	pf.Int("samples", view.DefaultSamplesPerFrame, "occlusion samples per frame")
	pf.Float64("min-bond-factor", chem.DefaultMinBondFactor, "lower end of the bonding window")
	pf.Float64("max-bond-factor", chem.DefaultMaxBondFactor, "upper end of the bonding window")
	pf.String("convert-url", config.DefaultConvertURL, "base URL of the notation conversion service")
	pf.Duration("convert-timeout", 15*time.Second, "timeout of each conversion request")
	for key, flag := range flagBindings {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err) //the flag table above is wrong
		}
	}
	cmd.AddCommand(
		newRenderCommand(a),
		newInfoCommand(a),
		newConvertCommand(a),
		newTUICommand(a),
	)
	return cmd
}

func (a *app) init() error {
	cfg, err := config.LoadViper(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	a.logger = logger
	logging.SetDefault(logger)
	return nil
}

func (a *app) converter() *convert.Remote {
	return convert.NewRemote(
		convert.WithBaseURL(a.cfg.Convert.BaseURL),
		convert.WithTimeout(a.cfg.Convert.Timeout),
		convert.WithLogger(a.logger.Named("convert")),
	)
}

func (a *app) loader() *chem.Loader {
	return chem.NewLoader(a.cfg.BondOptions()...)
}

// records reads the structure in the file name, converting it first if the
// file holds a chemical notation.
func (a *app) records(ctx context.Context, name string) ([]chem.AtomRecord, error) {
	in, err := session.ReadInput(name)
	if err != nil {
		return nil, err
	}
	if in.Notation == "" {
		return in.Records, nil
	}
	a.logger.Info("converting notation", logging.String("file", name), logging.String("notation", in.Notation))
	return a.converter().Convert(ctx, in.Notation)
}

// system reads and loads the structure in the file name.
func (a *app) system(ctx context.Context, name string) (*chem.System, error) {
	recs, err := a.records(ctx, name)
	if err != nil {
		return nil, err
	}
	return a.loader().Load(recs)
}
