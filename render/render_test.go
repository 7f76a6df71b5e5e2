/*
 * render_test.go, part of molview.
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

package render

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	calls  []string
	failOn string
}

func (f *fakeRenderer) record(c string) error {
	f.calls = append(f.calls, c)
	if c == f.failOn {
		return errors.New(c + " failed")
	}
	return nil
}

func (f *fakeRenderer) SetSystem(*chem.System, *view.State) error { return f.record("set") }
func (f *fakeRenderer) Reset()                                    { f.record("reset") }
func (f *fakeRenderer) Render(*view.State) error                  { return f.record("render") }

type countingObserver struct{ resets, frames int }

func (c *countingObserver) BufferReset()   { c.resets++ }
func (c *countingObserver) FrameRendered() { c.frames++ }

func TestNilRenderer(t *testing.T) {
	_, err := NewCoordinator(nil)
	assert.ErrorIs(t, err, chem.ErrRendererUnavailable)
}

func TestResetBeforeRender(t *testing.T) {
	f := &fakeRenderer{}
	obs := &countingObserver{}
	C, err := NewCoordinator(f, WithObserver(obs))
	require.NoError(t, err)
	v := view.New()
	assert.Equal(t, Stale, C.State())

	require.NoError(t, C.Tick(v))
	require.NoError(t, C.Tick(v))
	assert.Equal(t, []string{"reset", "render", "render"}, f.calls)
	assert.Equal(t, Accumulating, C.State())

	//Several invalidations between two ticks give one reset.
	f.calls = nil
	C.Invalidate()
	C.Invalidate()
	C.Apply(view.Geometry)
	require.NoError(t, C.Tick(v))
	assert.Equal(t, []string{"reset", "render"}, f.calls)

	//Shading changes keep accumulating.
	f.calls = nil
	C.Apply(view.Shading)
	C.Apply(view.None)
	require.NoError(t, C.Tick(v))
	assert.Equal(t, []string{"render"}, f.calls)
	assert.Equal(t, 2, obs.resets)
	assert.Equal(t, 4, obs.frames)
}

func TestBind(t *testing.T) {
	f := &fakeRenderer{}
	C, err := NewCoordinator(f)
	require.NoError(t, err)
	v := view.New()
	require.NoError(t, C.Tick(v))
	require.NoError(t, C.Bind(chem.NewSystem(), v))
	assert.Equal(t, Stale, C.State())
	require.NoError(t, C.Tick(v))
	assert.Equal(t, []string{"reset", "render", "set", "reset", "render"}, f.calls)

	//A failed bind does not invalidate.
	f.failOn = "set"
	assert.Error(t, C.Bind(chem.NewSystem(), v))
	assert.Equal(t, Accumulating, C.State())
}

func TestConcurrentInvalidate(t *testing.T) {
	f := &fakeRenderer{}
	C, err := NewCoordinator(f)
	require.NoError(t, err)
	v := view.New()
	require.NoError(t, C.Tick(v))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			C.Invalidate()
		}()
	}
	wg.Wait()
	f.calls = nil
	require.NoError(t, C.Tick(v))
	assert.Equal(t, []string{"reset", "render"}, f.calls)
}

func TestManualTicks(t *testing.T) {
	m := NewManualTicks()
	got := make(chan time.Time, 1)
	go func() { got <- <-m.C() }()
	require.NoError(t, m.Fire(context.Background()))
	<-got
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Fire(ctx), context.Canceled)

	it := NewIntervalTicks(1000)
	defer it.Stop()
	select {
	case <-it.C():
	case <-time.After(time.Second):
		t.Fatal("interval source did not tick")
	}
}
