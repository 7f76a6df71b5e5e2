/*
 * system.go, part of molview.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package chem

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	v3 "github.com/rmera/molview/v3"
)

/**Note: Like in goChem, the accessors here panic instead of returning errors when given
 * an out-of-range index. That can only be a programming error.**/

//Atom contains the atomic information except for the coordinates, which
//are kept by the System in a v3.Matrix.
type Atom struct {
	Symbol string
	Index  int //position in the system, stable for the lifetime of the system.
}

//Element returns the reference data for the atom's element.
func (A *Atom) Element() *Element {
	e, ok := elementTable[A.Symbol]
	if !ok {
		panic(fmt.Sprintf("Atom %d has an unknown symbol %q", A.Index, A.Symbol)) //AddAtom doesn't let this happen.
	}
	return e
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

//System is a molecular system: an ordered set of atoms, their coordinates,
//and the bonds inferred from them.
//A System is not safe for concurrent use.
type System struct {
	atoms  []*Atom
	coords []float64 //row-major, 3 per atom
	bonds  []*Bond
	//set once CalculateBonds has run, so later position changes recompute the bonds.
	bonded   bool
	bondOpts bondOptions
}

//NewSystem returns an empty system.
func NewSystem() *System {
	return &System{bondOpts: defaultBondOptions()}
}

//AddAtom appends an atom with the given symbol and coordinates to the system.
//It returns an error of kind ErrInvalidSymbol if the symbol is not in the
//element table. Bonds are not affected, CalculateBonds must be called.
func (S *System) AddAtom(symbol string, x, y, z float64) error {
	e, ok := LookupElement(symbol)
	if !ok {
		err := NewError(ErrInvalidSymbol, nil, "%q (atom %d)", symbol, len(S.atoms))
		err.Decorate("AddAtom")
		return err
	}
	S.atoms = append(S.atoms, &Atom{Symbol: e.Symbol, Index: len(S.atoms)})
	S.coords = append(S.coords, x, y, z)
	return nil
}

//Len returns the number of atoms in the system.
func (S *System) Len() int {
	return len(S.atoms)
}

//Atom returns the Atom corresponding to the index i. Panics if
//out of range.
func (S *System) Atom(i int) *Atom {
	if i < 0 || i >= S.Len() {
		panic(fmt.Sprintf("System: Requested Atom %d out of bounds", i))
	}
	return S.atoms[i]
}

//Position returns the coordinates of the atom i. Panics if out of range.
func (S *System) Position(i int) [3]float64 {
	if i < 0 || i >= S.Len() {
		panic(fmt.Sprintf("System: Requested position %d out of bounds", i))
	}
	return [3]float64{S.coords[3*i], S.coords[3*i+1], S.coords[3*i+2]}
}

//Coords returns a matrix with the coordinates of the system, one row
//per atom, or nil if the system is empty. The matrix shares memory with
//the system and is only valid until the next AddAtom.
func (S *System) Coords() *v3.Matrix {
	if S.Len() == 0 {
		return nil
	}
	m, err := v3.NewMatrix(S.coords)
	if err != nil {
		panic(err.Error()) //the coordinate slice always has 3 elements per atom.
	}
	return m
}

//Bonds returns the bonds of the system, ordered by index. The slice is
//a copy, but the bonds are not.
func (S *System) Bonds() []*Bond {
	ret := make([]*Bond, len(S.bonds))
	copy(ret, S.bonds)
	return ret
}

//Neighbors returns the indexes of the atoms bonded to atom i, in increasing order.
func (S *System) Neighbors(i int) []int {
	ret := make([]int, 0, 4)
	for _, b := range S.bonds {
		if b.At1 == i || b.At2 == i {
			ret = append(ret, b.Cross(i))
		}
	}
	return ret
}

//Centroid returns the arithmetic mean of the atomic positions, or the
//origin for an empty system.
func (S *System) Centroid() [3]float64 {
	c := S.Coords()
	if c == nil {
		return [3]float64{}
	}
	return c.Centroid().Vec(0)
}

//Center translates the system so its centroid lies on the origin.
//It does nothing on an empty system. If bonds had been calculated, they
//are recalculated with the same options.
func (S *System) Center() {
	c := S.Coords()
	if c == nil {
		return
	}
	c.SubVec(c, c.Centroid())
	if S.bonded {
		S.calculateBonds(S.bondOpts)
	}
}

//Extent returns the minimum and maximum coordinates along each axis.
func (S *System) Extent() (lo, hi [3]float64) {
	c := S.Coords()
	if c == nil {
		return
	}
	return c.Extent()
}

//Radius returns the distance from the origin to the farthest atom surface,
//using van der Waals radii. Useful to frame a centered system.
func (S *System) Radius() float64 {
	r := 0.0
	for i, at := range S.atoms {
		p := S.Position(i)
		d := math.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]) + at.Element().Vdwrad
		r = math.Max(r, d)
	}
	return r
}

//Copy returns a deep copy of the system, including bonds.
func (S *System) Copy() *System {
	ret := &System{
		atoms:    make([]*Atom, len(S.atoms)),
		coords:   make([]float64, len(S.coords)),
		bonds:    make([]*Bond, len(S.bonds)),
		bonded:   S.bonded,
		bondOpts: S.bondOpts,
	}
	for i, a := range S.atoms {
		ret.atoms[i] = a.Copy()
	}
	copy(ret.coords, S.coords)
	for i, b := range S.bonds {
		nb := *b
		ret.bonds[i] = &nb
	}
	return ret
}

//Formula returns the molecular formula in Hill order: C and H first if
//there is carbon, then every other element alphabetically.
func (S *System) Formula() string {
	count := make(map[string]int)
	for _, at := range S.atoms {
		count[at.Symbol]++
	}
	syms := make([]string, 0, len(count))
	for s := range count {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	if count["C"] > 0 {
		head := []string{"C"}
		if count["H"] > 0 {
			head = append(head, "H")
		}
		for _, s := range syms {
			if s != "C" && s != "H" {
				head = append(head, s)
			}
		}
		syms = head
	}
	var b strings.Builder
	for _, s := range syms {
		b.WriteString(s)
		if n := count[s]; n > 1 {
			b.WriteString(strconv.Itoa(n))
		}
	}
	return b.String()
}
