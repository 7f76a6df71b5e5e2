/*
 * view.go, part of molview.
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

//Package view holds the camera and material state of the molecule viewer:
//rotation, translation, zoom and the named display parameters. Changing the
//view never touches a render buffer; every mutating method returns the Class
//of the change, so the caller can decide what to invalidate.
package view

import (
	"math"

	chem "github.com/rmera/molview"
	v3 "github.com/rmera/molview/v3"
	"gonum.org/v1/gonum/mat"
)

//Fixed render settings.
const (
	DefaultResolution      = 768
	DefaultAORes           = 256
	DefaultSamplesPerFrame = 32
)

//Radians of rotation per pixel of pointer motion.
const rotationSpeed = 0.005

//Multiplicative zoom factor per wheel notch.
const zoomFactor = 0.9

//Parameter change per wheel notch.
const wheelStep = 1.0 / 100

//State is the view state. It is not safe for concurrent use.
type State struct {
	//Rotation is applied on the right side of the coordinates, as all operators in v3.
	Rotation *mat.Dense
	TX, TY   float64

	Resolution      int
	AORes           int
	SamplesPerFrame int

	values  []float64 //indexed like the parameter table
	percent []int
}

//Option configures a new State.
type Option func(*State)

//WithResolution sets the output resolution, in pixels per side.
func WithResolution(res int) Option { return func(S *State) { S.Resolution = res } }

//WithAORes sets the resolution of the ambient occlusion maps.
func WithAORes(res int) Option { return func(S *State) { S.AORes = res } }

//WithSamplesPerFrame sets how many ambient occlusion samples a frame accumulates.
func WithSamplesPerFrame(n int) Option { return func(S *State) { S.SamplesPerFrame = n } }

//New returns a view with the default parameters and an identity rotation.
func New(opts ...Option) *State {
	S := &State{
		Rotation:        v3.Identity(),
		Resolution:      DefaultResolution,
		AORes:           DefaultAORes,
		SamplesPerFrame: DefaultSamplesPerFrame,
		values:          make([]float64, len(params)),
		percent:         make([]int, len(params)),
	}
	for i, p := range params {
		S.values[i] = p.Default
	}
	for _, o := range opts {
		o(S)
	}
	S.Resolve()
	return S
}

//Copy returns a deep copy of the view.
func (S *State) Copy() *State {
	ret := *S
	ret.Rotation = mat.DenseCopyOf(S.Rotation)
	ret.values = append([]float64(nil), S.values...)
	ret.percent = append([]int(nil), S.percent...)
	return &ret
}

//Get returns the current value of the parameter name, or 0 for unknown names.
func (S *State) Get(name string) float64 {
	i, ok := paramIndex[name]
	if !ok {
		return 0
	}
	return S.values[i]
}

//Set sets the parameter name to v, clamped to its range.
func (S *State) Set(name string, v float64) (Class, error) {
	i, ok := paramIndex[name]
	if !ok {
		_, err := LookupParam(name)
		return None, err
	}
	S.values[i] = v
	S.Resolve()
	return params[i].Class, nil
}

//Adjust adds delta to the parameter name and resolves the view. It returns
//the class of the change.
func (S *State) Adjust(name string, delta float64) (Class, error) {
	i, ok := paramIndex[name]
	if !ok {
		_, err := LookupParam(name)
		return None, err
	}
	return S.Set(name, S.values[i]+delta)
}

//Percent returns the display value of the parameter name, round(v*100),
//as of the last Resolve.
func (S *State) Percent(name string) (int, bool) {
	i, ok := paramIndex[name]
	if !ok {
		return 0, false
	}
	return S.percent[i], true
}

//Resolve clamps every parameter to its range and recomputes the display
//percentages. It is idempotent.
func (S *State) Resolve() {
	for i, p := range params {
		v := S.values[i]
		if math.IsNaN(v) {
			v = p.Default
		}
		S.values[i] = p.Clamp(v)
		S.percent[i] = int(math.Round(S.values[i] * 100))
	}
}

//Rotate composes a rotation from a pointer drag of dx, dy pixels with the current one.
//Horizontal motion turns the scene around the screen's y axis and vertical
//motion around its x axis. Opposite drags along the same axis cancel.
func (S *State) Rotate(dx, dy float64) Class {
	if dx == 0 && dy == 0 {
		return None
	}
	m := mat.NewDense(3, 3, nil)
	m.Mul(v3.RotatorAroundX(dy*rotationSpeed), v3.RotatorAroundY(dx*rotationSpeed))
	r := mat.NewDense(3, 3, nil)
	r.Mul(S.Rotation, m)
	S.Rotation = r
	return Geometry
}

//Translate pans the view by dx, dy pixels.
func (S *State) Translate(dx, dy float64) Class {
	if dx == 0 && dy == 0 {
		return None
	}
	scale := float64(S.Resolution) * S.Zoom()
	S.TX -= dx / scale
	S.TY += dy / scale
	return Geometry
}

//ZoomStep zooms in one notch for a positive direction and out one notch otherwise.
func (S *State) ZoomStep(direction int) Class {
	z := S.Zoom()
	if direction > 0 {
		z /= zoomFactor
	} else {
		z *= zoomFactor
	}
	c, _ := S.Set(Zoom, z)
	return c
}

//Wheel applies one wheel notch. A negative deltaY is a notch up.
//If a hotkey is held, the first held one (in priority order) changes
//its parameter by 1/100 of its unit range; otherwise the view zooms.
func (S *State) Wheel(deltaY float64, held func(key rune) bool) Class {
	dir := -1
	if deltaY < 0 {
		dir = 1
	}
	if p, ok := WheelTarget(held); ok {
		c, _ := S.Adjust(p.Name, float64(dir)*wheelStep)
		return c
	}
	return S.ZoomStep(dir)
}

//Project returns the rotated and translated position of p. The first two
//components are in the screen plane, the third one points to the viewer.
func (S *State) Project(p [3]float64) [3]float64 {
	r := v3.TransformVec(p, S.Rotation)
	r[0] -= S.TX
	r[1] -= S.TY
	return r
}

//AtomRadius is the display radius of an atom with the given van der Waals radius.
func (S *State) AtomRadius(vdw float64) float64 {
	return S.AtomScale() * (1 + (vdw-1)*S.RelativeAtomScale())
}

//BondRadius is the display radius of the bonds.
func (S *State) BondRadius() float64 {
	return 0.5 * S.BondScale() * S.AtomScale()
}

//Center zeroes the translation and fits the zoom so the whole system,
//seen through the current rotation, fits in the output. The system is
//expected to be centered. Empty systems only reset the translation.
func (S *State) Center(sys *chem.System) Class {
	S.TX, S.TY = 0, 0
	ext := 0.0
	for i := 0; i < sys.Len(); i++ {
		r := v3.TransformVec(sys.Position(i), S.Rotation)
		rad := S.AtomRadius(sys.Atom(i).Element().Vdwrad)
		ext = math.Max(ext, math.Max(math.Abs(r[0]), math.Abs(r[1]))+rad)
	}
	if ext > 0 {
		S.Set(Zoom, 1/(2*ext*1.01))
	}
	return Geometry
}

//Convenience accessors.

func (S *State) Zoom() float64              { return S.values[paramIndex[Zoom]] }
func (S *State) AtomScale() float64         { return S.values[paramIndex[AtomScale]] }
func (S *State) RelativeAtomScale() float64 { return S.values[paramIndex[RelativeAtomScale]] }
func (S *State) BondScale() float64         { return S.values[paramIndex[BondScale]] }
func (S *State) DofStrength() float64       { return S.values[paramIndex[DofStrength]] }
func (S *State) DofPosition() float64       { return S.values[paramIndex[DofPosition]] }
func (S *State) BondShade() float64         { return S.values[paramIndex[BondShade]] }
func (S *State) AtomShade() float64         { return S.values[paramIndex[AtomShade]] }
func (S *State) AO() float64                { return S.values[paramIndex[AO]] }
func (S *State) Brightness() float64        { return S.values[paramIndex[Brightness]] }
func (S *State) Outline() float64           { return S.values[paramIndex[Outline]] }
