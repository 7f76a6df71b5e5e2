/*
 * graph.go, part of molview.
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

// Package chemgraph exposes the bonds of a chem.System as a gonum graph, with
// atoms as nodes and bonds as weighted, undirected edges.
package chemgraph

import (
	"math"
	"sort"

	chem "github.com/rmera/molview"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Atom is a graph node. Its ID is the atom index in the system.
type Atom struct {
	*chem.Atom
	Bonds []*Bond
}

func (A *Atom) ID() int64 {
	return int64(A.Index)
}

// Bond is a weighted edge.
type Bond struct {
	*chem.Bond
	At1, At2   *Atom
	Weightfunc func(*Bond) float64
}

// Weight returns the bond weight, by default the bond length.
func (B *Bond) Weight() float64 {
	if B.Weightfunc == nil {
		return B.Dist
	}
	return B.Weightfunc(B)
}

func (B *Bond) From() graph.Node {
	return B.At1
}

func (B *Bond) To() graph.Node {
	return B.At2
}

// ReversedEdge returns a copy of the bond with the ends switched. Bonds are not directional.
func (B *Bond) ReversedEdge() graph.Edge {
	r := *B
	r.At1, r.At2 = B.At2, B.At1
	return &r
}

// Topology is the bond graph of a system. It implements graph.WeightedUndirected.
type Topology struct {
	*simple.WeightedUndirectedGraph
	atoms []*Atom
	bonds []*Bond
}

// TopologyFromSystem builds the bond graph of S with its current bonds.
// weightfunc can be nil, in which case bond lengths are the weights.
func TopologyFromSystem(S *chem.System, weightfunc func(*Bond) float64) *Topology {
	T := &Topology{
		WeightedUndirectedGraph: simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
		atoms:                   make([]*Atom, S.Len()),
	}
	for i := range T.atoms {
		T.atoms[i] = &Atom{Atom: S.Atom(i)}
		T.AddNode(T.atoms[i])
	}
	for _, b := range S.Bonds() {
		nb := &Bond{Bond: b, At1: T.atoms[b.At1], At2: T.atoms[b.At2], Weightfunc: weightfunc}
		nb.At1.Bonds = append(nb.At1.Bonds, nb)
		nb.At2.Bonds = append(nb.At2.Bonds, nb)
		T.bonds = append(T.bonds, nb)
		T.SetWeightedEdge(nb)
	}
	return T
}

// Atom returns the node for the atom with index i.
func (T *Topology) Atom(i int) *Atom {
	return T.atoms[i]
}

// Bonds returns the edges of the graph, in bond index order.
func (T *Topology) Bonds() []*Bond {
	return T.bonds
}

// Fragments returns the connected components of the graph as lists of atom
// indexes. Each list is sorted, and the lists are ordered by their first index.
// An isolated atom is a fragment of its own.
func (T *Topology) Fragments() [][]int {
	comps := topo.ConnectedComponents(T)
	ret := make([][]int, 0, len(comps))
	for _, c := range comps {
		frag := make([]int, 0, len(c))
		for _, n := range c {
			frag = append(frag, int(n.ID()))
		}
		sort.Ints(frag)
		ret = append(ret, frag)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// Path returns the atoms on the lightest bond path from atom from to atom to,
// both included, and its total weight. It returns nil and +Inf if the atoms
// are not connected.
func (T *Topology) Path(from, to int) ([]int, float64) {
	shortest := path.DijkstraFrom(T.atoms[from], T)
	nodes, w := shortest.To(int64(to))
	if len(nodes) == 0 {
		return nil, math.Inf(1)
	}
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	return ret, w
}
