/*
 * session.go, part of molview.
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

//Package session is the interactive viewer: it owns the displayed system, the
//view and the render coordinator, and turns pointer, wheel, keyboard and load
//events into changes of them.
//
//All the methods of a Session run on a single control flow: either the loop
//started by Run, or a host loop of its own (the terminal UI runs them from its
//update function). Remote conversions run in background goroutines and hand
//their results back through a Dispatcher, so the system is only replaced on
//that control flow.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/clash"
	"github.com/rmera/molview/convert"
	"github.com/rmera/molview/internal/logging"
	"github.com/rmera/molview/internal/metrics"
	"github.com/rmera/molview/render"
	"github.com/rmera/molview/view"
)

//ErrorPanel shows errors to the user.
type ErrorPanel interface {
	Report(err error)
	Clear()
}

//Dispatcher runs functions on the session's control flow.
type Dispatcher interface {
	Dispatch(f func())
}

//Recorder receives load and conversion results. *metrics.Metrics is one.
type Recorder interface {
	LoadDone(result string, atoms int)
	ConversionDone(result string, d time.Duration)
}

//Session is the viewer state and its event handlers.
type Session struct {
	logger     logging.Logger
	panel      ErrorPanel
	dispatcher Dispatcher
	recorder   Recorder
	loader     *chem.Loader
	converter  convert.Converter

	coord *render.Coordinator
	view  *view.State
	sys   *chem.System

	generation uint64
	pending    int
	dragging   bool
	lastX      float64
	lastY      float64
	held       map[rune]bool

	events    chan func()
	ctx       context.Context //parent of the conversions
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closed    chan struct{}
}

//Option configures a Session.
type Option func(*Session)

func WithLogger(l logging.Logger) Option       { return func(s *Session) { s.logger = l } }
func WithPanel(p ErrorPanel) Option            { return func(s *Session) { s.panel = p } }
func WithDispatcher(d Dispatcher) Option       { return func(s *Session) { s.dispatcher = d } }
func WithRecorder(r Recorder) Option           { return func(s *Session) { s.recorder = r } }
func WithLoader(l *chem.Loader) Option         { return func(s *Session) { s.loader = l } }
func WithConverter(c convert.Converter) Option { return func(s *Session) { s.converter = c } }
func WithView(v *view.State) Option            { return func(s *Session) { s.view = v } }

type nopPanel struct{}

func (nopPanel) Report(error) {}
func (nopPanel) Clear()       {}

type nopRecorder struct{}

func (nopRecorder) LoadDone(string, int)                 {}
func (nopRecorder) ConversionDone(string, time.Duration) {}

//New returns a session drawing with r. The coordinator is built with the
//observer obs, which can be nil. The session starts with an empty system.
func New(r render.Renderer, obs render.Observer, opts ...Option) (*Session, error) {
	var copts []render.Option
	if obs != nil {
		copts = append(copts, render.WithObserver(obs))
	}
	coord, err := render.NewCoordinator(r, copts...)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		logger:    logging.NewNopLogger(),
		panel:     nopPanel{},
		recorder:  nopRecorder{},
		loader:    chem.NewLoader(),
		converter: convert.NewRemote(),
		coord:     coord,
		sys:       chem.NewSystem(),
		held:      make(map[rune]bool),
		events:    make(chan func(), 16),
		ctx:       ctx,
		cancel:    cancel,
		closed:    make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	if s.view == nil {
		s.view = view.New()
	}
	if s.dispatcher == nil {
		s.dispatcher = loopDispatcher{s}
	}
	if err := s.coord.Bind(s.sys, s.view); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

//View returns the current view. It must only be used from the session's control flow.
func (s *Session) View() *view.State { return s.view }

//System returns the displayed system.
func (s *Session) System() *chem.System { return s.sys }

//Coordinator returns the render coordinator.
func (s *Session) Coordinator() *render.Coordinator { return s.coord }

//Generation returns the number of load requests issued so far.
func (s *Session) Generation() uint64 { return s.generation }

//Pending returns the number of conversions in flight.
func (s *Session) Pending() int { return s.pending }

//guard is the failure boundary of every handler: it turns panics into errors,
//logs and reports errors, and returns them. It never repairs state.
func (s *Session) guard(name string, f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", name, r)
		}
		if err != nil {
			s.logger.Error("handler failed", logging.String("handler", name), logging.Err(err))
			s.panel.Report(err)
		}
	}()
	return f()
}

//PointerDown starts a drag if button is the primary one (0).
func (s *Session) PointerDown(button int, x, y float64) {
	if button != 0 {
		return
	}
	s.dragging = true
	s.lastX, s.lastY = x, y
}

//PointerUp ends a drag.
func (s *Session) PointerUp(button int) {
	if button == 0 {
		s.dragging = false
	}
}

//PointerMove rotates the view while dragging, or pans it if shift is held.
func (s *Session) PointerMove(x, y float64, shift bool) {
	s.guard("pointer", func() error {
		if !s.dragging {
			return nil
		}
		dx, dy := x-s.lastX, y-s.lastY
		s.lastX, s.lastY = x, y
		s.drag(dx, dy, shift)
		return nil
	})
}

//Drag applies a drag of dx, dy pixels at once. Hosts without a pointer use it.
//It leaves the pointer state, and any drag in progress, alone.
func (s *Session) Drag(dx, dy float64, shift bool) {
	s.guard("drag", func() error {
		s.drag(dx, dy, shift)
		return nil
	})
}

func (s *Session) drag(dx, dy float64, shift bool) {
	var c view.Class
	if shift {
		c = s.view.Translate(dx, dy)
	} else {
		c = s.view.Rotate(dx, dy)
	}
	s.coord.Apply(c)
}

//Wheel applies one wheel notch, see view.State.Wheel.
func (s *Session) Wheel(deltaY float64) view.Class {
	var c view.Class
	s.guard("wheel", func() error {
		c = s.view.Wheel(deltaY, s.isHeld)
		s.coord.Apply(c)
		return nil
	})
	return c
}

//KeyDown records a held key. Keys are case insensitive.
func (s *Session) KeyDown(key rune) { s.held[unicode.ToLower(key)] = true }

//KeyUp releases a key.
func (s *Session) KeyUp(key rune) { delete(s.held, unicode.ToLower(key)) }

//ReleaseKeys releases every held key.
func (s *Session) ReleaseKeys() { clear(s.held) }

func (s *Session) isHeld(key rune) bool { return s.held[key] }

//Adjust changes a view parameter directly and invalidates the render if needed.
func (s *Session) Adjust(name string, delta float64) error {
	return s.guard("adjust", func() error {
		c, err := s.view.Adjust(name, delta)
		if err != nil {
			return err
		}
		s.coord.Apply(c)
		return nil
	})
}

//LoadRecords replaces the displayed system with one built from recs. It is a new
//load request, so any conversion in flight is superseded. On error the displayed
//system is left as it was.
func (s *Session) LoadRecords(recs []chem.AtomRecord) error {
	s.generation++
	return s.guard("load", func() error { return s.apply(recs) })
}

func (s *Session) apply(recs []chem.AtomRecord) error {
	sys, err := s.loader.Load(recs)
	if err != nil {
		s.recorder.LoadDone(metrics.ResultError, 0)
		return err
	}
	if err := s.coord.Bind(sys, s.view); err != nil {
		s.recorder.LoadDone(metrics.ResultError, 0)
		return err
	}
	s.sys = sys
	s.coord.Apply(s.view.Center(sys))
	s.recorder.LoadDone(metrics.ResultOK, sys.Len())
	s.panel.Clear()
	s.logger.Info("structure loaded",
		logging.Int("atoms", sys.Len()),
		logging.Int("bonds", len(sys.Bonds())),
		logging.String("formula", sys.Formula()))
	if ov := clash.Find(sys); len(ov) > 0 {
		s.logger.Warn("atoms too close to be bonded",
			logging.Int("pairs", len(ov)),
			logging.Int("first", ov[0].At1),
			logging.Int("second", ov[0].At2),
			logging.Float64("distance", ov[0].Dist))
	}
	return nil
}

//SubmitNotation starts the conversion of a chemical notation. Text that does not
//look like a notation is rejected right away with chem.ErrUnrecognizedFormat,
//without any network call. The result of an accepted conversion is loaded when
//it arrives, unless a newer load request was issued in the meantime.
func (s *Session) SubmitNotation(text string) error {
	return s.guard("notation", func() error {
		if err := convert.CheckNotation(text); err != nil {
			return err
		}
		s.generation++
		gen := s.generation
		s.pending++
		s.wg.Add(1)
		go s.convert(gen, text)
		return nil
	})
}

//convert runs in its own goroutine. It must not touch the session except
//through the dispatcher.
func (s *Session) convert(gen uint64, text string) {
	defer s.wg.Done()
	start := time.Now()
	recs, err := s.converter.Convert(s.ctx, text)
	elapsed := time.Since(start)
	s.dispatcher.Dispatch(func() {
		s.pending--
		s.guard("conversion", func() error {
			if gen != s.generation {
				s.recorder.ConversionDone(metrics.ResultDiscarded, elapsed)
				s.logger.Debug("conversion superseded", logging.Int64("generation", int64(gen)))
				return nil
			}
			if err != nil {
				s.recorder.ConversionDone(metrics.ResultError, elapsed)
				return err
			}
			s.recorder.ConversionDone(metrics.ResultOK, elapsed)
			return s.apply(recs)
		})
	})
}

//Open loads the structure in the file name, converting it first if the file
//holds a chemical notation.
func (s *Session) Open(name string) error {
	in, err := ReadInput(name)
	if err != nil {
		s.generation++
		return s.guard("open", func() error { return err })
	}
	if in.Notation != "" {
		return s.SubmitNotation(in.Notation)
	}
	return s.LoadRecords(in.Records)
}

//Tick renders one frame.
func (s *Session) Tick() error {
	return s.guard("tick", func() error { return s.coord.Tick(s.view) })
}

//Post runs f on the session's control flow. It is the way for other goroutines
//to talk to a session started with Run. It returns false if the session was closed.
func (s *Session) Post(f func()) bool {
	select {
	case s.events <- f:
		return true
	case <-s.closed:
		return false
	}
}

type loopDispatcher struct{ s *Session }

func (d loopDispatcher) Dispatch(f func()) { d.s.Post(f) }

//Run processes posted events and ticks until ctx is done, and stops ticks on return.
func (s *Session) Run(ctx context.Context, ticks render.TickSource) error {
	defer ticks.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.closed:
			return nil
		case f := <-s.events:
			f()
		case <-ticks.C():
			s.Tick()
		}
	}
}

//Close cancels the conversions in flight and waits for their goroutines.
//Their results are dropped.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.closed)
	})
	s.wg.Wait()
	return nil
}
