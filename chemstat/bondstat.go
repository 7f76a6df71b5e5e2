/*
 * bondstat.go, part of molview.
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

// Package chemstat computes simple statistics over the bonds of a system.
package chemstat

import (
	"sort"

	chem "github.com/rmera/molview"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PairStats summarizes the lengths of the bonds between two elements.
type PairStats struct {
	Pair    string  `json:"pair"` //symbols in alphabetical order, joined by "-"
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"` //0 for a single bond
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	lengths []float64
}

// Lengths returns the bond lengths of the pair, in bond order.
func (P *PairStats) Lengths() []float64 {
	return P.lengths
}

// PairName returns the canonical name of the pair of elements s1, s2.
func PairName(s1, s2 string) string {
	if s2 < s1 {
		s1, s2 = s2, s1
	}
	return s1 + "-" + s2
}

// BondLengths returns the lengths of all bonds of S, in bond order.
func BondLengths(S *chem.System) []float64 {
	bonds := S.Bonds()
	ret := make([]float64, len(bonds))
	for i, b := range bonds {
		ret[i] = b.Dist
	}
	return ret
}

// ByPair groups the bonds of S by element pair and summarizes each group.
// The result is sorted by pair name.
func ByPair(S *chem.System) []*PairStats {
	groups := make(map[string]*PairStats)
	for _, b := range S.Bonds() {
		name := PairName(S.Atom(b.At1).Symbol, S.Atom(b.At2).Symbol)
		g, ok := groups[name]
		if !ok {
			g = &PairStats{Pair: name}
			groups[name] = g
		}
		g.lengths = append(g.lengths, b.Dist)
	}
	ret := make([]*PairStats, 0, len(groups))
	for _, g := range groups {
		g.Count = len(g.lengths)
		g.Min = floats.Min(g.lengths)
		g.Max = floats.Max(g.lengths)
		if g.Count == 1 {
			g.Mean = g.lengths[0]
		} else {
			g.Mean, g.StdDev = stat.MeanStdDev(g.lengths, nil)
		}
		ret = append(ret, g)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Pair < ret[j].Pair })
	return ret
}

// OrderCounts returns how many bonds of each order S has.
func OrderCounts(S *chem.System) map[chem.BondOrder]int {
	ret := make(map[chem.BondOrder]int)
	for _, b := range S.Bonds() {
		ret[b.Order]++
	}
	return ret
}
