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

//Package render coordinates a progressive renderer with the changes in the scene.
//A progressive renderer accumulates samples across frames; the Coordinator keeps
//track of whether the accumulated samples are still valid and asks the renderer to
//start over, exactly once, before the next frame whenever they are not.
package render

import (
	"sync/atomic"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/view"
)

//Renderer is a progressive renderer.
type Renderer interface {
	//SetSystem replaces the scene. It is called synchronously from Bind.
	SetSystem(sys *chem.System, v *view.State) error
	//Reset discards the accumulated samples.
	Reset()
	//Render draws one frame, adding samples to the accumulation.
	Render(v *view.State) error
}

//Observer is notified of buffer resets and rendered frames.
type Observer interface {
	BufferReset()
	FrameRendered()
}

//State is the validity of the renderer's accumulation buffer.
type State int32

const (
	//Stale means the accumulated samples no longer match the scene.
	Stale State = iota
	//Accumulating means the renderer keeps refining the current scene.
	Accumulating
)

func (s State) String() string {
	if s == Accumulating {
		return "accumulating"
	}
	return "stale"
}

//Coordinator owns the dirty flag of a progressive renderer.
//Invalidate can be called from any goroutine. Bind and Tick must be called
//from a single control flow, together with the renderer.
type Coordinator struct {
	r     Renderer
	obs   Observer
	state atomic.Int32
}

//Option configures a Coordinator.
type Option func(*Coordinator)

//WithObserver sets an observer for resets and frames.
func WithObserver(o Observer) Option {
	return func(C *Coordinator) { C.obs = o }
}

//NewCoordinator returns a coordinator for r, in the Stale state.
//It returns an error of kind chem.ErrRendererUnavailable if r is nil.
func NewCoordinator(r Renderer, opts ...Option) (*Coordinator, error) {
	if r == nil {
		err := chem.NewError(chem.ErrRendererUnavailable, nil, "no renderer")
		err.Decorate("NewCoordinator")
		return nil, err
	}
	C := &Coordinator{r: r}
	for _, o := range opts {
		o(C)
	}
	C.state.Store(int32(Stale))
	return C, nil
}

//State returns the current state of the accumulation buffer.
func (C *Coordinator) State() State {
	return State(C.state.Load())
}

//Invalidate marks the accumulation as stale. The renderer is reset at the
//start of the next tick, no matter how many times Invalidate is called before.
func (C *Coordinator) Invalidate() {
	C.state.Store(int32(Stale))
}

//Apply invalidates the accumulation if the view change c requires it.
//Shading changes do not, they are applied when the samples are composed.
func (C *Coordinator) Apply(c view.Class) {
	if c >= view.Geometry {
		C.Invalidate()
	}
}

//Bind gives a new system to the renderer and invalidates the accumulation.
func (C *Coordinator) Bind(sys *chem.System, v *view.State) error {
	if err := C.r.SetSystem(sys, v); err != nil {
		return err
	}
	C.Invalidate()
	return nil
}

//Tick renders one frame. If the accumulation was stale, the renderer is
//reset first, within the same tick.
func (C *Coordinator) Tick(v *view.State) error {
	if C.state.CompareAndSwap(int32(Stale), int32(Accumulating)) {
		C.r.Reset()
		if C.obs != nil {
			C.obs.BufferReset()
		}
	}
	if err := C.r.Render(v); err != nil {
		return err
	}
	if C.obs != nil {
		C.obs.FrameRendered()
	}
	return nil
}
