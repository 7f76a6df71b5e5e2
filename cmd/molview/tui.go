/*
 * tui.go, part of molview.
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
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rmera/molview/internal/logging"
	"github.com/rmera/molview/internal/metrics"
	"github.com/rmera/molview/raster"
	"github.com/rmera/molview/session"
	"github.com/rmera/molview/tui"
	"github.com/rmera/molview/view"
)

type tuiOptions struct {
	watch   bool
	logFile string
}

func newTUICommand(a *app) *cobra.Command {
	opts := &tuiOptions{}
	cmd := &cobra.Command{
		Use:   "tui [FILE]",
		Short: "Explore a structure interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return a.tui(cmd.Context(), file, opts)
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&opts.watch, "watch", "w", false, "reload FILE when it changes")
	f.StringVar(&opts.logFile, "log-file", "", "log to this file, logs are discarded otherwise")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	a.v.BindPFlag("metrics.addr", f.Lookup("metrics-addr"))
	return cmd
}

func (a *app) tui(ctx context.Context, file string, opts *tuiOptions) error {
	if opts.watch && file == "" {
		return errors.New("--watch needs a file")
	}
	// The terminal belongs to the viewer.
	logger := logging.NewNopLogger()
	if opts.logFile != "" {
		lc := a.cfg.Log
		lc.OutputPaths = []string{opts.logFile}
		l, err := logging.NewLogger(lc)
		if err != nil {
			return err
		}
		defer l.Sync()
		logger = l
	}

	m := metrics.New("molview", true)
	panel := &tui.Panel{}
	queue := session.NewQueue()
	r := raster.New(raster.WithSeed(time.Now().UnixNano()))
	s, err := session.New(r, m,
		session.WithLogger(logger.Named("session")),
		session.WithPanel(panel),
		session.WithDispatcher(queue),
		session.WithRecorder(m),
		session.WithLoader(a.loader()),
		session.WithConverter(a.converter()),
		session.WithView(view.New(a.cfg.ViewOptions()...)),
	)
	if err != nil {
		return err
	}
	defer s.Close()
	if file != "" {
		// errors are on the panel
		s.Open(file)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	model := tui.New(s, r, panel, queue, a.cfg.Render.FPS)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(gctx))
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil {
			// stopped because another task failed, or from outside
			return nil
		}
		return err
	})
	if opts.watch {
		g.Go(func() error {
			return watchFile(gctx, file, logger.Named("watch"), func() { p.Send(tui.ReloadMsg{Path: file}) })
		})
	}
	if addr := a.cfg.Metrics.Addr; addr != "" {
		g.Go(func() error { return serveMetrics(gctx, addr, m, logger) })
	}
	return g.Wait()
}

// serveMetrics serves the Prometheus endpoint until ctx is done.
func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics, logger logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("serving metrics", logging.String("addr", addr))
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
