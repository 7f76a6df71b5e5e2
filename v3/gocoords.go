/*
 * gocoords.go, part of molview.
 *
 * Copyright 2015 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//AddVec adds a vector to each vector of the matrix A, putting the result on the receiver.
//Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		for j := 0; j < 3; j++ {
			f[j] = a[j] + v[j]
		}
	}
}

//SubVec subtracts the vector to each vector of the matrix A, putting
//the result on the receiver. Panics if matrices are mismatched.
//vec is read once, so it may be a view of A.
func (F *Matrix) SubVec(A, vec *Matrix) {
	v := vec.Vec(0)
	neg := Zeros(1)
	neg.SetVec(0, -v[0], -v[1], -v[2])
	F.AddVec(A, neg)
}

//Centroid returns a 1-vector Matrix with the arithmetic mean of the vectors in F.
//For an empty matrix it returns the origin.
func (F *Matrix) Centroid() *Matrix {
	ret := Zeros(1)
	r, _ := F.Dims()
	if r == 0 {
		return ret
	}
	col := make([]float64, r)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, F.Dense)
		ret.Set(0, j, stat.Mean(col, nil))
	}
	return ret
}

//Extent returns, for each of the 3 axes, the minimum and maximum coordinate
//of the vectors in F.
func (F *Matrix) Extent() (lo, hi [3]float64) {
	r, _ := F.Dims()
	if r == 0 {
		return
	}
	col := make([]float64, r)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, F.Dense)
		lo[j] = floats.Min(col)
		hi[j] = floats.Max(col)
	}
	return
}

//Dist returns the euclidean distance between the vectors i and j of F.
func (F *Matrix) Dist(i, j int) float64 {
	return floats.Distance(F.RawRowView(i), F.RawRowView(j), 2)
}

//Norm returns the euclidean norm of the first vector of F.
func (F *Matrix) Norm() float64 {
	return floats.Norm(F.RawRowView(0), 2)
}

//Unit puts in the receiver the first vector of A, normalized.
//A zero vector is left unchanged.
func (F *Matrix) Unit(A *Matrix) {
	if A.Dense != F.Dense {
		F.Copy(A)
	}
	norm := F.Norm()
	if norm <= appzero {
		return
	}
	F.Scale(1.0/norm, F)
}

//Cross puts the cross product of the first vecs of a and b in the first vec of F. Panics if error.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	x := a.Vec(0)
	y := b.Vec(0)
	F.SetVec(0, x[1]*y[2]-x[2]*y[1], x[2]*y[0]-x[0]*y[2], x[0]*y[1]-x[1]*y[0])
}

//Returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, 0, r+2)
	v = append(v, "\n[")
	for i := 0; i < r; i++ {
		row := F.RawRowView(i)
		v = append(v, fmt.Sprintf(" %6.2f %6.2f %6.2f", row[0], row[1], row[2]))
	}
	v = append(v, " ]")
	return strings.Join(v, "\n")
}

//KronekerDelta is a naive implementation of the kroneker delta function.
func KronekerDelta(a, b, epsilon float64) float64 {
	if epsilon < 0 {
		epsilon = appzero
	}
	if math.Abs(a-b) <= epsilon {
		return 1
	}
	return 0
}
