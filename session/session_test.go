/*
 * session_test.go, part of molview.
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

package session

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/mat"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/internal/metrics"
	"github.com/rmera/molview/render"
	v3 "github.com/rmera/molview/v3"
	"github.com/rmera/molview/view"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRenderer struct {
	calls   []string
	systems []*chem.System
	panicOn string
}

func (f *fakeRenderer) record(c string) {
	f.calls = append(f.calls, c)
	if c == f.panicOn {
		panic(c + " exploded")
	}
}

func (f *fakeRenderer) SetSystem(s *chem.System, _ *view.State) error {
	f.record("set")
	f.systems = append(f.systems, s)
	return nil
}
func (f *fakeRenderer) Reset()                   { f.record("reset") }
func (f *fakeRenderer) Render(*view.State) error { f.record("render"); return nil }

type recordingPanel struct {
	errs   []error
	clears int
}

func (p *recordingPanel) Report(err error) { p.errs = append(p.errs, err) }
func (p *recordingPanel) Clear()           { p.clears++ }

type result struct {
	recs []chem.AtomRecord
	err  error
}

//fakeConverter answers each notation when the test sends a result on its channel.
type fakeConverter struct {
	mu      sync.Mutex
	calls   int
	answers map[string]chan result
}

func newFakeConverter(notations ...string) *fakeConverter {
	f := &fakeConverter{answers: make(map[string]chan result)}
	for _, n := range notations {
		f.answers[n] = make(chan result, 1)
	}
	return f
}

func (f *fakeConverter) Convert(ctx context.Context, text string) ([]chem.AtomRecord, error) {
	f.mu.Lock()
	f.calls++
	ch := f.answers[text]
	f.mu.Unlock()
	if ch == nil {
		return nil, errors.New("unexpected notation " + text)
	}
	select {
	case r := <-ch:
		return r.recs, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeConverter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var (
	hydrogen = []chem.AtomRecord{
		{Symbol: "H", Position: []float64{0, 0, 0}},
		{Symbol: "H", Position: []float64{0, 0, 0.74}},
	}
	water = []chem.AtomRecord{
		{Symbol: "O", Position: []float64{0, 0, 0}},
		{Symbol: "H", Position: []float64{0.757, 0.586, 0}},
		{Symbol: "H", Position: []float64{-0.757, 0.586, 0}},
	}
)

type fixture struct {
	s     *Session
	r     *fakeRenderer
	panel *recordingPanel
	conv  *fakeConverter
	queue *Queue
	m     *metrics.Metrics
}

func newFixture(t *testing.T, notations ...string) *fixture {
	t.Helper()
	f := &fixture{
		r:     &fakeRenderer{},
		panel: &recordingPanel{},
		conv:  newFakeConverter(notations...),
		queue: NewQueue(),
		m:     metrics.New("test", false),
	}
	s, err := New(f.r, f.m,
		WithPanel(f.panel),
		WithConverter(f.conv),
		WithDispatcher(f.queue),
		WithRecorder(f.m))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	f.s = s
	return f
}

//waitDrain waits for a dispatched completion and runs it.
func (f *fixture) waitDrain(t *testing.T) {
	t.Helper()
	select {
	case <-f.queue.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("no completion arrived")
	}
	f.queue.Drain()
}

func TestNilRenderer(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, chem.ErrRendererUnavailable)
}

func TestLoadHydrogen(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.LoadRecords(hydrogen))
	sys := f.s.System()
	require.Equal(t, 2, sys.Len())
	require.Len(t, sys.Bonds(), 1)
	b := sys.Bonds()[0]
	assert.Equal(t, [2]int{0, 1}, [2]int{b.At1, b.At2})
	assert.InDelta(t, -0.37, sys.Position(0)[2], 1e-12)
	assert.InDelta(t, 0.37, sys.Position(1)[2], 1e-12)
	assert.Equal(t, render.Stale, f.s.Coordinator().State())
	assert.Same(t, sys, f.r.systems[len(f.r.systems)-1], "the renderer got the new system")
	assert.Equal(t, 1, f.panel.clears)
	assert.Less(t, 0.125, f.s.View().Zoom(), "the view was fitted to the small molecule")
}

func TestFailedLoadKeepsSystem(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.LoadRecords(water))
	before := f.s.System()
	binds := len(f.r.systems)
	require.NoError(t, f.s.Tick())

	err := f.s.LoadRecords(nil)
	assert.ErrorIs(t, err, chem.ErrEmptyInput)
	assert.Same(t, before, f.s.System())
	assert.Equal(t, 3, f.s.System().Len())
	assert.Equal(t, binds, len(f.r.systems), "no bind on failure")
	assert.Equal(t, render.Accumulating, f.s.Coordinator().State())
	require.Len(t, f.panel.errs, 1)
	assert.ErrorIs(t, f.panel.errs[0], chem.ErrEmptyInput)

	err = f.s.LoadRecords([]chem.AtomRecord{{Symbol: "Zz", Position: []float64{0, 0, 0}}})
	assert.ErrorIs(t, err, chem.ErrInvalidSymbol)
	assert.Same(t, before, f.s.System())
}

func TestWheelHotkeys(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.LoadRecords(water))
	require.NoError(t, f.s.Tick())
	require.Equal(t, render.Accumulating, f.s.Coordinator().State())

	f.s.KeyDown('A')
	assert.Equal(t, view.Geometry, f.s.Wheel(-100))
	assert.InDelta(t, 0.61, f.s.View().AtomScale(), 1e-12)
	assert.Equal(t, render.Stale, f.s.Coordinator().State())
	f.s.KeyUp('a')

	require.NoError(t, f.s.Tick())
	f.s.KeyDown('w')
	assert.Equal(t, view.Shading, f.s.Wheel(-100))
	assert.InDelta(t, 0.51, f.s.View().AtomShade(), 1e-12)
	assert.Equal(t, render.Accumulating, f.s.Coordinator().State(), "shading does not reset")
	pc, _ := f.s.View().Percent(view.AtomShade)
	assert.Equal(t, 51, pc)
	f.s.ReleaseKeys()

	z := f.s.View().Zoom()
	f.s.Wheel(100)
	assert.InDelta(t, z*0.9, f.s.View().Zoom(), 1e-12)
	assert.Equal(t, render.Stale, f.s.Coordinator().State())
}

func TestRejectedNotation(t *testing.T) {
	f := newFixture(t)
	gen := f.s.Generation()
	err := f.s.SubmitNotation("not a molecule")
	assert.ErrorIs(t, err, chem.ErrUnrecognizedFormat)
	assert.Equal(t, 0, f.conv.Calls())
	assert.Equal(t, 0, f.s.Pending())
	assert.Equal(t, gen, f.s.Generation())
	require.Len(t, f.panel.errs, 1)
}

func TestDragRotation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.LoadRecords(water))
	require.NoError(t, f.s.Tick())
	f.s.PointerMove(50, 50, false)
	assert.Equal(t, render.Accumulating, f.s.Coordinator().State(), "moves without a drag do nothing")

	f.s.PointerDown(0, 100, 100)
	f.s.PointerMove(110, 100, false)
	assert.Equal(t, render.Stale, f.s.Coordinator().State())
	f.s.PointerMove(100, 100, false)
	f.s.PointerUp(0)
	assert.True(t, mat.EqualApprox(f.s.View().Rotation, v3.Identity(), 1e-12))

	require.NoError(t, f.s.Tick())
	f.s.PointerDown(0, 0, 0)
	f.s.PointerMove(0, 0, true)
	assert.Equal(t, render.Accumulating, f.s.Coordinator().State(), "zero deltas are ignored")
	f.s.PointerMove(10, 0, true)
	f.s.PointerUp(0)
	assert.Less(t, f.s.View().TX, 0.0)

	f.s.PointerDown(2, 0, 0) //secondary button
	f.s.PointerMove(40, 40, false)
	assert.Less(t, math.Abs(f.s.View().TY), 1e-12)
}

func TestDragKeepsPointer(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.LoadRecords(water))
	f.s.PointerDown(0, 100, 100)
	f.s.PointerMove(120, 100, false)
	rot := mat.DenseCopyOf(f.s.View().Rotation)

	//an arrow key in the middle of a mouse drag
	f.s.Drag(0, 0, true)
	f.s.Drag(10, 0, false)
	f.s.Drag(-10, 0, false)
	assert.True(t, mat.EqualApprox(f.s.View().Rotation, rot, 1e-12))

	//the mouse drag goes on from where it was
	f.s.PointerMove(100, 100, false)
	assert.True(t, mat.EqualApprox(f.s.View().Rotation, v3.Identity(), 1e-12))
	f.s.PointerUp(0)
	f.s.PointerMove(150, 100, false)
	assert.True(t, mat.EqualApprox(f.s.View().Rotation, v3.Identity(), 1e-12))
}

func TestWheelResetClasses(t *testing.T) {
	cases := []struct {
		key   rune
		name  string
		class view.Class
		state render.State
	}{
		{'a', view.AtomScale, view.Geometry, render.Stale},
		{'z', view.RelativeAtomScale, view.Geometry, render.Stale},
		{'b', view.BondScale, view.Geometry, render.Stale},
		{'d', view.DofStrength, view.Shading, render.Accumulating},
		{'p', view.DofPosition, view.Shading, render.Accumulating},
		{'s', view.BondShade, view.Shading, render.Accumulating},
		{'w', view.AtomShade, view.Shading, render.Accumulating},
		{'o', view.AO, view.Shading, render.Accumulating},
		{'l', view.Brightness, view.Shading, render.Accumulating},
		{'q', view.Outline, view.Shading, render.Accumulating},
		{0, view.Zoom, view.Geometry, render.Stale},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.s.LoadRecords(water))
			require.NoError(t, f.s.Tick())
			require.Equal(t, render.Accumulating, f.s.Coordinator().State())
			p, err := view.LookupParam(c.name)
			require.NoError(t, err)
			assert.Equal(t, c.class, p.Class)
			before := f.s.View().Get(c.name)
			notch := -1.0 //up
			if before >= p.Max {
				notch = 1
			}
			if c.key != 0 {
				f.s.KeyDown(c.key)
			}
			assert.Equal(t, c.class, f.s.Wheel(notch))
			assert.NotEqual(t, before, f.s.View().Get(c.name))
			assert.Equal(t, c.state, f.s.Coordinator().State())
		})
	}
}

func TestConversion(t *testing.T) {
	f := newFixture(t, "CC(O)CC=O")
	require.NoError(t, f.s.LoadRecords(hydrogen))
	require.NoError(t, f.s.Tick())
	old := f.s.System()

	require.NoError(t, f.s.SubmitNotation("CC(O)CC=O"))
	assert.Equal(t, 1, f.s.Pending())

	//Input during the conversion changes the view but not the system.
	f.s.Drag(15, 5, false)
	assert.Equal(t, render.Stale, f.s.Coordinator().State())
	assert.Same(t, old, f.s.System())

	f.conv.answers["CC(O)CC=O"] <- result{recs: water}
	f.waitDrain(t)
	assert.Equal(t, 0, f.s.Pending())
	assert.Equal(t, 3, f.s.System().Len())
	assert.Equal(t, 1, f.conv.Calls())
}

func TestSupersededConversion(t *testing.T) {
	f := newFixture(t, "CCCCCCO", "OCCCCCO")
	require.NoError(t, f.s.SubmitNotation("CCCCCCO"))
	require.NoError(t, f.s.SubmitNotation("OCCCCCO"))
	assert.Equal(t, 2, f.s.Pending())

	f.conv.answers["CCCCCCO"] <- result{recs: hydrogen}
	f.waitDrain(t)
	assert.Equal(t, 0, f.s.System().Len(), "the older request lost")

	f.conv.answers["OCCCCCO"] <- result{recs: water}
	f.waitDrain(t)
	assert.Equal(t, 3, f.s.System().Len())
	assert.Equal(t, 0, f.s.Pending())

	//A direct load also supersedes a conversion in flight.
	f2 := newFixture(t, "CCCCCCO")
	require.NoError(t, f2.s.SubmitNotation("CCCCCCO"))
	require.NoError(t, f2.s.LoadRecords(hydrogen))
	f2.conv.answers["CCCCCCO"] <- result{recs: water}
	f2.waitDrain(t)
	assert.Equal(t, 2, f2.s.System().Len())
}

func TestFailedConversion(t *testing.T) {
	f := newFixture(t, "CCCCCCO")
	require.NoError(t, f.s.LoadRecords(hydrogen))
	require.NoError(t, f.s.SubmitNotation("CCCCCCO"))
	boom := chem.NewError(chem.ErrConversionFailed, errors.New("HTTP 500"), "")
	f.conv.answers["CCCCCCO"] <- result{err: boom}
	f.waitDrain(t)
	assert.Equal(t, 2, f.s.System().Len())
	require.Len(t, f.panel.errs, 1)
	assert.ErrorIs(t, f.panel.errs[0], chem.ErrConversionFailed)
}

func TestCloseCancelsConversions(t *testing.T) {
	f := newFixture(t, "CCCCCCO")
	require.NoError(t, f.s.SubmitNotation("CCCCCCO"))
	require.NoError(t, f.s.Close()) //waits for the conversion goroutine
	assert.Equal(t, 1, f.conv.Calls())
}

func TestPanicsAreReported(t *testing.T) {
	f := newFixture(t)
	f.r.panicOn = "render"
	err := f.s.Tick()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render exploded")
	require.Len(t, f.panel.errs, 1)
}

func TestRun(t *testing.T) {
	r := &fakeRenderer{}
	s, err := New(r, nil, WithConverter(newFakeConverter()))
	require.NoError(t, err)
	defer s.Close()
	ticks := render.NewManualTicks()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, ticks) }()

	loaded := make(chan error, 1)
	require.True(t, s.Post(func() { loaded <- s.LoadRecords(water) }))
	require.NoError(t, <-loaded)
	require.NoError(t, ticks.Fire(ctx))
	require.NoError(t, ticks.Fire(ctx))
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, []string{"set", "set", "reset", "render", "render"}, r.calls)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	xyz := filepath.Join(dir, "water.xyz")
	require.NoError(t, os.WriteFile(xyz, []byte("3\nwater\nO 0 0 0\nH 0.757 0.586 0\nH -0.757 0.586 0\n"), 0o644))
	smi := filepath.Join(dir, "hexanol.txt")
	require.NoError(t, os.WriteFile(smi, []byte("\nCCCCCCO\n"), 0o644))
	js := filepath.Join(dir, "h2.json")
	require.NoError(t, os.WriteFile(js, []byte(`[{"symbol":"H","position":[0,0,0]},{"symbol":"H","position":[0,0,0.74]}]`), 0o644))
	bad := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(bad, []byte("hello there\n"), 0o644))

	f := newFixture(t, "CCCCCCO")
	require.NoError(t, f.s.Open(xyz))
	assert.Equal(t, 3, f.s.System().Len())
	require.NoError(t, f.s.Open(js))
	assert.Equal(t, 2, f.s.System().Len())
	require.NoError(t, f.s.Open(smi))
	assert.Equal(t, 1, f.s.Pending())
	f.conv.answers["CCCCCCO"] <- result{recs: water}
	f.waitDrain(t)
	assert.Equal(t, 3, f.s.System().Len())

	assert.ErrorIs(t, f.s.Open(bad), chem.ErrUnrecognizedFormat)
	assert.Error(t, f.s.Open(filepath.Join(dir, "missing.xyz")))
	assert.Equal(t, 3, f.s.System().Len())
}
