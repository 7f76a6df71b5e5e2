/*
 * bonds.go, part of molview.
 *
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

package chem

import (
	"fmt"
	"math"
)

//The bonding window, as multiples of the sum of the covalent radii of both atoms.
//These are empirical display constants, similar in spirit to the criterion in
//DOI:10.1186/1758-2946-3-33, not physics.
const (
	DefaultMinBondFactor = 0.5
	DefaultMaxBondFactor = 1.25
)

//BondOrder is the (best-effort) order of a bond.
type BondOrder int

const (
	Undetermined BondOrder = iota
	Single
	Double
	Triple
)

func (o BondOrder) String() string {
	switch o {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	default:
		return "undetermined"
	}
}

//Bond is an inferred connection between the atoms with indexes At1 and At2.
//At1 is always smaller than At2.
type Bond struct {
	Index int
	At1   int
	At2   int
	Dist  float64
	Order BondOrder
}

//Cross returns the index of the atom at the other end of the bond from origin.
func (B *Bond) Cross(origin int) int {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //I think this got to be a programming error, so a panic is warranted.
}

func (B *Bond) String() string {
	return fmt.Sprintf("%d-%d %.3f %s", B.At1, B.At2, B.Dist, B.Order)
}

type bondOptions struct {
	min, max float64
}

func defaultBondOptions() bondOptions {
	return bondOptions{min: DefaultMinBondFactor, max: DefaultMaxBondFactor}
}

//BondOption modifies the bonding criterion for one CalculateBonds call.
type BondOption func(*bondOptions)

//WithBondFactors sets the bonding window to [minFactor, maxFactor] times the sum of the covalent radii.
func WithBondFactors(minFactor, maxFactor float64) BondOption {
	return func(o *bondOptions) {
		o.min = minFactor
		o.max = maxFactor
	}
}

//CalculateBonds replaces the bonds of the system with the ones inferred
//from the current positions. Two atoms are bonded when their distance d satisfies
//	min*(r1+r2) <= d <= max*(r1+r2)
//where r1 and r2 are the covalent radii. Both ends of the window are included.
//Pairs are visited in increasing index order, so the result depends only on the
//positions and the element table. The cost is quadratic in the number of atoms,
//which is fine for small molecules but a scaling risk for macromolecules.
func (S *System) CalculateBonds(opts ...BondOption) {
	o := defaultBondOptions()
	for _, opt := range opts {
		opt(&o)
	}
	S.calculateBonds(o)
}

func (S *System) calculateBonds(o bondOptions) {
	S.bondOpts = o
	S.bonded = true
	S.bonds = S.bonds[:0]
	tot := S.Len()
	if tot < 2 {
		return
	}
	coord := S.Coords()
	for i := 0; i < tot; i++ {
		e1 := S.atoms[i].Element()
		for j := i + 1; j < tot; j++ {
			e2 := S.atoms[j].Element()
			sum := e1.Covrad + e2.Covrad
			d := coord.Dist(i, j)
			if d < o.min*sum || d > o.max*sum {
				continue
			}
			S.bonds = append(S.bonds, &Bond{
				Index: len(S.bonds),
				At1:   i,
				At2:   j,
				Dist:  d,
				Order: bestEffortOrder(e1, e2, d),
			})
		}
	}
}

//bestEffortOrder guesses the bond order by comparing d with the single, double
//and triple bond lengths obtained from the multiple bond radii. Pairs without
//tabulated radii are single.
func bestEffortOrder(e1, e2 *Element, d float64) BondOrder {
	order := Single
	best := math.Inf(1)
	for k := 0; k < 3; k++ {
		r1, r2 := e1.MultiRad[k], e2.MultiRad[k]
		if r1 == 0 || r2 == 0 {
			break
		}
		if diff := math.Abs(d - (r1 + r2)); diff < best {
			best = diff
			order = BondOrder(k + 1)
		}
	}
	return order
}

//BondFactors returns the bonding window last used by CalculateBonds, or the
//default one.
func (S *System) BondFactors() (minFactor, maxFactor float64) {
	return S.bondOpts.min, S.bondOpts.max
}
