/*
 * rotation.go, part of molview.
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

	"gonum.org/v1/gonum/mat"
)

//All the rotators in this file return operators meant to be applied
//on the right side of a set of row vectors, i.e. rotated = coords x operator.

//RotatorAroundX returns an operator that will rotate a set of
//coordinates by alpha radians around the x axis.
func RotatorAroundX(alpha float64) *mat.Dense {
	s, c := math.Sincos(alpha)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, s,
		0, -s, c})
}

//RotatorAroundY returns an operator that will rotate a set of
//coordinates by beta radians around the y axis.
func RotatorAroundY(beta float64) *mat.Dense {
	s, c := math.Sincos(beta)
	return mat.NewDense(3, 3, []float64{
		c, 0, -s,
		0, 1, 0,
		s, 0, c})
}

//RotatorAroundZ returns an operator that will rotate a set of
//coordinates by gamma radians around the z axis.
func RotatorAroundZ(gamma float64) *mat.Dense {
	s, c := math.Sincos(gamma)
	return mat.NewDense(3, 3, []float64{
		c, s, 0,
		-s, c, 0,
		0, 0, 1})
}

//Identity returns the 3x3 identity operator.
func Identity() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1})
}

//Rotate puts in F the vectors of A rotated by the operator rot.
//F and A can be the same matrix.
func (F *Matrix) Rotate(A *Matrix, rot mat.Matrix) {
	if r, c := rot.Dims(); r != 3 || c != 3 {
		panic(ErrShape)
	}
	F.Mul(A, rot)
}

//TransformVec applies the operator rot to the single vector v.
func TransformVec(v [3]float64, rot mat.Matrix) [3]float64 {
	var out [3]float64
	for j := 0; j < 3; j++ {
		out[j] = v[0]*rot.At(0, j) + v[1]*rot.At(1, j) + v[2]*rot.At(2, j)
	}
	return out
}
