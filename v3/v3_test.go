/*
 * v3_test.go, part of molview.
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
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("A slice not divisible by 3 should fail")
	}
	if _, err := NewMatrix(nil); err == nil {
		Te.Error("An empty slice should fail")
	}
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("Expected 2 vecs, got %d", A.NVecs())
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("Changes in a view should be reflected in the parent matrix")
	}
}

func TestCentroidAndSub(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 0, 0, 2, 4, 6, 4, 8, 12})
	if err != nil {
		Te.Fatal(err)
	}
	c := A.Centroid()
	if c.Vec(0) != [3]float64{2, 4, 6} {
		Te.Errorf("Wrong centroid %v", c.Vec(0))
	}
	A.SubVec(A, c)
	c2 := A.Centroid().Vec(0)
	for _, v := range c2 {
		if math.Abs(v) > 1e-12 {
			Te.Errorf("Centroid should be the origin after subtraction, got %v", c2)
		}
	}
	lo, hi := A.Extent()
	if lo != [3]float64{-2, -4, -6} || hi != [3]float64{2, 4, 6} {
		Te.Errorf("Wrong extent %v %v", lo, hi)
	}
}

func TestDistCross(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 0, 0, 0, 1, 0})
	if d := A.Dist(0, 1); math.Abs(d-math.Sqrt2) > 1e-12 {
		Te.Errorf("Wrong distance %f", d)
	}
	C := Zeros(1)
	C.Cross(A.VecView(0), A.VecView(1))
	if C.Vec(0) != [3]float64{0, 0, 1} {
		Te.Errorf("x cross y should be z, got %v", C.Vec(0))
	}
	U := Zeros(1)
	U.SetVec(0, 3, 0, 4)
	U.Unit(U)
	if math.Abs(U.Norm()-1) > 1e-12 {
		Te.Errorf("Unit vector has norm %f", U.Norm())
	}
}

func TestRotators(Te *testing.T) {
	v := [3]float64{1, 0, 0}
	r := TransformVec(v, RotatorAroundZ(math.Pi/2))
	if math.Abs(r[0]) > 1e-12 || math.Abs(r[1]-1) > 1e-12 {
		Te.Errorf("x rotated 90 degrees around z should be y, got %v", r)
	}
	r = TransformVec([3]float64{0, 0, 1}, RotatorAroundY(math.Pi/2))
	if math.Abs(r[0]-1) > 1e-12 || math.Abs(r[2]) > 1e-12 {
		Te.Errorf("z rotated 90 degrees around y should be x, got %v", r)
	}
	r = TransformVec([3]float64{0, 1, 0}, RotatorAroundX(math.Pi/2))
	if math.Abs(r[2]-1) > 1e-12 || math.Abs(r[1]) > 1e-12 {
		Te.Errorf("y rotated 90 degrees around x should be z, got %v", r)
	}
	op := mat.NewDense(3, 3, nil)
	op.Mul(RotatorAroundY(0.3), RotatorAroundY(-0.3))
	if !mat.EqualApprox(op, Identity(), 1e-12) {
		Te.Errorf("Opposite rotations should cancel:\n%v", mat.Formatted(op))
	}
	A, _ := NewMatrix([]float64{1, 0, 0, 0, 0, 1})
	A.Rotate(A, RotatorAroundZ(math.Pi))
	if math.Abs(A.At(0, 0)+1) > 1e-12 {
		Te.Errorf("In-place rotation failed: %v", A)
	}
}
