/*
 * graph_test.go, part of molview.
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

package chemgraph

import (
	"math"
	"testing"

	chem "github.com/rmera/molview"
)

// Two waters far apart, plus an argon.
func waters(Te *testing.T) *chem.System {
	recs := []chem.AtomRecord{
		{Symbol: "O", Position: []float64{0, 0, 0}},
		{Symbol: "H", Position: []float64{0.757, 0.586, 0}},
		{Symbol: "H", Position: []float64{-0.757, 0.586, 0}},
		{Symbol: "Ar", Position: []float64{0, 0, 5}},
		{Symbol: "O", Position: []float64{0, 0, 10}},
		{Symbol: "H", Position: []float64{0.757, 0.586, 10}},
		{Symbol: "H", Position: []float64{-0.757, 0.586, 10}},
	}
	S, err := chem.NewLoader().Load(recs)
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

func TestFragments(Te *testing.T) {
	T := TopologyFromSystem(waters(Te), nil)
	frags := T.Fragments()
	if len(frags) != 3 {
		Te.Fatalf("Expected 3 fragments, got %v", frags)
	}
	expected := [][]int{{0, 1, 2}, {3}, {4, 5, 6}}
	for i, f := range frags {
		if len(f) != len(expected[i]) {
			Te.Fatalf("Fragment %d: expected %v, got %v", i, expected[i], f)
		}
		for j := range f {
			if f[j] != expected[i][j] {
				Te.Errorf("Fragment %d: expected %v, got %v", i, expected[i], f)
			}
		}
	}
	if len(T.Atom(0).Bonds) != 2 {
		Te.Errorf("Oxygen should have 2 bonds, has %d", len(T.Atom(0).Bonds))
	}
}

func TestPath(Te *testing.T) {
	S := waters(Te)
	T := TopologyFromSystem(S, nil)
	p, w := T.Path(1, 2)
	if len(p) != 3 || p[0] != 1 || p[1] != 0 || p[2] != 2 {
		Te.Fatalf("Unexpected path %v", p)
	}
	d := S.Bonds()[0].Dist + S.Bonds()[1].Dist
	if math.Abs(w-d) > 1e-9 {
		Te.Errorf("Path weight %f, expected %f", w, d)
	}
	if p, w := T.Path(0, 4); p != nil || !math.IsInf(w, 1) {
		Te.Errorf("Disconnected atoms gave path %v, %f", p, w)
	}
	hops := TopologyFromSystem(S, func(*Bond) float64 { return 1 })
	if _, w := hops.Path(1, 2); w != 2 {
		Te.Errorf("Expected 2 hops, got %f", w)
	}
}
