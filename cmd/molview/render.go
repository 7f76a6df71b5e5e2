/*
 * render.go, part of molview.
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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rmera/molview/internal/logging"
	"github.com/rmera/molview/internal/metrics"
	"github.com/rmera/molview/raster"
	"github.com/rmera/molview/render"
	"github.com/rmera/molview/session"
	"github.com/rmera/molview/view"
)

type renderOptions struct {
	seed  int64
	ascii int
}

func newRenderCommand(a *app) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a structure to a PNG file",
		Long: "render loads FILE (XYZ, JSON, or a chemical notation on its first line) and\n" +
			"accumulates the given number of progressive frames before writing the image.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.IntP("frames", "n", 16, "frames to accumulate")
	f.StringP("output", "o", "molview.png", "output PNG file")
	f.Int("fps", 30, "frame rate")
	f.Int64Var(&opts.seed, "seed", 1, "seed of the occlusion sampler")
	f.IntVar(&opts.ascii, "ascii", 0, "also print an ASCII preview this many columns wide")
	a.v.BindPFlag("render.frames", f.Lookup("frames"))
	a.v.BindPFlag("render.output", f.Lookup("output"))
	a.v.BindPFlag("render.fps", f.Lookup("fps"))
	return cmd
}

// errorPanel turns the first error reported by a session into the result of a
// batch run.
type errorPanel struct {
	errc chan error
}

func (p *errorPanel) Report(err error) {
	select {
	case p.errc <- err:
	default:
	}
}

func (p *errorPanel) Clear() {}

// frameCounter stops a batch run once enough frames of a non-empty system were accumulated.
type frameCounter struct {
	*metrics.Metrics
	done   func() bool
	target chan struct{}
	fired  bool
}

func (f *frameCounter) FrameRendered() {
	f.Metrics.FrameRendered()
	if !f.fired && f.done() {
		f.fired = true
		close(f.target)
	}
}

func (a *app) render(cmd *cobra.Command, name string, opts *renderOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	cfg := a.cfg
	r := raster.New(raster.WithSeed(opts.seed))
	m := metrics.New("molview", false)
	obs := &frameCounter{Metrics: m, target: make(chan struct{})}
	panel := &errorPanel{errc: make(chan error, 1)}
	s, err := session.New(r, obs,
		session.WithLogger(a.logger.Named("session")),
		session.WithPanel(panel),
		session.WithRecorder(m),
		session.WithLoader(a.loader()),
		session.WithConverter(a.converter()),
		session.WithView(view.New(cfg.ViewOptions()...)),
	)
	if err != nil {
		return err
	}
	defer s.Close()
	obs.done = func() bool { return s.System().Len() > 0 && r.Frames() >= cfg.Render.Frames }

	if err := s.Open(name); err != nil {
		return err
	}
	ticks := render.NewIntervalTicks(cfg.Render.FPS)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Run(gctx, ticks); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		select {
		case <-obs.target:
			return nil
		case err := <-panel.errc:
			return err
		case <-gctx.Done():
			return nil
		}
	})
	if err := g.Wait(); err != nil {
		return err
	}
	select {
	case <-obs.target:
	default:
		return ctx.Err()
	}

	out, err := os.Create(cfg.Render.Output)
	if err != nil {
		return err
	}
	if err := r.WritePNG(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	a.logger.Info("image written",
		logging.String("file", cfg.Render.Output),
		logging.String("formula", s.System().Formula()),
		logging.Int("frames", r.Frames()),
		logging.Int("samples", r.Samples()))
	if opts.ascii > 0 {
		fmt.Fprint(cmd.OutOrStdout(), r.ASCII(opts.ascii, opts.ascii/2))
	}
	return nil
}
