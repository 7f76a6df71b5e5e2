/*
 * params.go, part of molview.
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

package view

import (
	"errors"
	"fmt"
)

//Class tells what a change in the view invalidates in an accumulating renderer.
//Classes are ordered: a Geometry change also implies anything a Shading change would.
type Class int

const (
	//None means nothing changed.
	None Class = iota
	//Shading changes only affect how accumulated samples are composed.
	Shading
	//Geometry changes invalidate the accumulated samples.
	Geometry
)

func (c Class) String() string {
	switch c {
	case Shading:
		return "shading"
	case Geometry:
		return "geometry"
	default:
		return "none"
	}
}

//Merge returns the stronger of both classes.
func (c Class) Merge(o Class) Class {
	if o > c {
		return o
	}
	return c
}

//ErrUnknownParam is returned when a parameter name is not in the parameter table.
var ErrUnknownParam = errors.New("unknown view parameter")

//Names of the adjustable parameters.
const (
	Zoom              = "zoom"
	AtomScale         = "atomScale"
	RelativeAtomScale = "relativeAtomScale"
	BondScale         = "bondScale"
	DofStrength       = "dofStrength"
	DofPosition       = "dofPosition"
	BondShade         = "bondShade"
	AtomShade         = "atomShade"
	AO                = "ao"
	Brightness        = "brightness"
	Outline           = "outline"
)

//Param describes an adjustable view parameter.
type Param struct {
	Name     string
	Default  float64
	Min, Max float64
	Class    Class
	Hotkey   rune //0 if the parameter has no hotkey.
}

//Clamp returns v limited to the range of the parameter.
func (p Param) Clamp(v float64) float64 {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

//The order of this table is the hotkey priority used by the wheel
//when several hotkeys are held at once.
var params = []Param{
	{AtomScale, 0.6, 0, 1, Geometry, 'a'},
	{RelativeAtomScale, 1.0, 0, 1, Geometry, 'z'},
	{DofStrength, 0.0, 0, 1, Shading, 'd'},
	{DofPosition, 0.5, 0, 1, Shading, 'p'},
	{BondScale, 0.5, 0, 1, Geometry, 'b'},
	{BondShade, 0.5, 0, 1, Shading, 's'},
	{AtomShade, 0.5, 0, 1, Shading, 'w'},
	{AO, 0.75, 0, 1, Shading, 'o'},
	{Brightness, 0.5, 0, 1, Shading, 'l'},
	{Outline, 0.0, 0, 1, Shading, 'q'},
	{Zoom, 0.125, 0.001, 2, Geometry, 0},
}

var paramIndex = func() map[string]int {
	m := make(map[string]int, len(params))
	for i, p := range params {
		m[p.Name] = i
	}
	return m
}()

//Params returns the parameter table, hotkeyed parameters first, in wheel priority order.
func Params() []Param {
	ret := make([]Param, len(params))
	copy(ret, params)
	return ret
}

//LookupParam returns the descriptor for the parameter name.
func LookupParam(name string) (Param, error) {
	i, ok := paramIndex[name]
	if !ok {
		return Param{}, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return params[i], nil
}

//HotkeyParam returns the parameter bound to key, if any.
func HotkeyParam(key rune) (Param, bool) {
	for _, p := range params {
		if p.Hotkey != 0 && p.Hotkey == key {
			return p, true
		}
	}
	return Param{}, false
}

//WheelTarget returns the parameter that a wheel notch should change, given
//a function that reports whether a key is held. The first held hotkey in
//priority order wins. ok is false when no hotkey is held, in which case
//the wheel zooms.
func WheelTarget(held func(key rune) bool) (p Param, ok bool) {
	for _, p := range params {
		if p.Hotkey != 0 && held(p.Hotkey) {
			return p, true
		}
	}
	return Param{}, false
}
