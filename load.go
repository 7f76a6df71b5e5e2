/*
 * load.go, part of molview.
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
	"math"
)

//AtomRecord is the boundary format for structures: an element symbol
//and a position with 3 components.
type AtomRecord struct {
	Symbol   string    `json:"symbol"`
	Position []float64 `json:"position"`
}

//Loader builds centered, bonded systems from lists of atom records.
//The zero value uses the default bonding window.
type Loader struct {
	BondOptions []BondOption
}

//NewLoader returns a Loader that calculates bonds with the given options.
func NewLoader(opts ...BondOption) *Loader {
	return &Loader{BondOptions: opts}
}

//Validate checks a list of records without building anything.
//It returns an error of kind ErrEmptyInput for an empty list, ErrMalformedInput
//for a record with a missing symbol, a position without exactly 3 components
//or a non-finite coordinate, and ErrInvalidSymbol for an unknown element.
func Validate(records []AtomRecord) error {
	if len(records) == 0 {
		err := NewError(ErrEmptyInput, nil, "no atom records")
		err.Decorate("Validate")
		return err
	}
	for i, r := range records {
		if NormalizeSymbol(r.Symbol) == "" {
			return decorated(NewError(ErrMalformedInput, nil, "record %d has no symbol", i), "Validate")
		}
		if len(r.Position) != 3 {
			return decorated(NewError(ErrMalformedInput, nil, "record %d has %d coordinates, 3 needed", i, len(r.Position)), "Validate")
		}
		for _, v := range r.Position {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return decorated(NewError(ErrMalformedInput, nil, "record %d has a non-finite coordinate", i), "Validate")
			}
		}
		if _, ok := LookupElement(r.Symbol); !ok {
			return decorated(NewError(ErrInvalidSymbol, nil, "record %d: %q", i, r.Symbol), "Validate")
		}
	}
	return nil
}

//Load validates records and, if all of them are valid, builds a new system
//with one atom per record, centers it and calculates its bonds.
//Loading is all-or-nothing: on error no system is returned, so whatever
//system the caller currently displays stays untouched.
func (L *Loader) Load(records []AtomRecord) (*System, error) {
	if err := Validate(records); err != nil {
		return nil, errDecorate(err, "Load")
	}
	sys := NewSystem()
	for _, r := range records {
		if err := sys.AddAtom(r.Symbol, r.Position[0], r.Position[1], r.Position[2]); err != nil {
			return nil, errDecorate(err, "Load") //can't really happen after Validate
		}
	}
	sys.Center()
	sys.CalculateBonds(L.BondOptions...)
	return sys, nil
}

//Records returns the atom records of the system, in order.
func (S *System) Records() []AtomRecord {
	ret := make([]AtomRecord, 0, S.Len())
	for i, at := range S.atoms {
		p := S.Position(i)
		ret = append(ret, AtomRecord{Symbol: at.Symbol, Position: []float64{p[0], p[1], p[2]}})
	}
	return ret
}

func decorated(err *CError, caller string) *CError {
	err.Decorate(caller)
	return err
}
