/*
 * gonum.go, part of molview.
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

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, wrapping a row-major gonum Dense.
//Within the package a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

//Dense2Matrix wraps A in a Matrix. A must have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	if _, c := A.Dims(); c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return nil, Error{"Input slice is empty", []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the ith vector of the matrix.
//Changes in the view are reflected in F and vice-versa
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Vec returns a copy of the ith vector of F as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	raw := F.RawRowView(i)
	return [3]float64{raw[0], raw[1], raw[2]}
}

//SetVec sets the ith vector of F to x, y, z
func (F *Matrix) SetVec(i int, x, y, z float64) {
	raw := F.RawRowView(i)
	raw[0], raw[1], raw[2] = x, y, z
}

//Mul wraps mat.Dense.Mul to take care of the case when one of the
//arguments is also the receiver.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if a, ok := A.(*Matrix); ok {
		A = a.Dense
	}
	if b, ok := B.(*Matrix); ok {
		B = b.Dense
	}
	F.Dense.Mul(A, B)
}

//Errors

//Error is the same as chem.CError but avoids a circular import.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("molview/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct  = PanicMsg("molview/v3: Invalid matrix for cross product")
	ErrShape           = PanicMsg("molview/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("molview/v3: index out of range")
)
