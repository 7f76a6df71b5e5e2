/*
 * json.go, part of molview.
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

package chemjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/chemgraph"
	"github.com/rmera/molview/chemstat"
	"github.com/rmera/molview/clash"
)

//An easily JSON-serializable error type.
type Error struct {
	deco     []string
	IsError  bool   //If this is false (no error) all the other fields will be at their zero-values.
	InInput  bool   //Was it in decoding the input?
	Line     int    //Which line of the input, 0 if unknown.
	Function string //which go function gave the error
	Message  string //the error itself
	cause    error
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Unwrap returns the original error, so errors.Is can see the chem error kinds.
func (J *Error) Unwrap() error {
	return J.cause
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - ")) //can't happen with these field types.
	}
	return ret
}

//NewError takes an error and some additional info to create a json-marshal-able error.
func NewError(input bool, line int, function string, err error) *Error {
	return &Error{IsError: true, InInput: input, Line: line, Function: function, Message: err.Error(), cause: err}
}

//Info is what a viewer built from a structure, to be passed back to the calling program.
type Info struct {
	Atoms     int
	Bonds     int
	Fragments int
	Clashes   int //pairs of atoms too close to be bonded
	Formula   string
	Bonded    [][2]int
	Pairs     []*chemstat.PairStats `json:",omitempty"`
}

//NewInfo summarizes the system sys.
func NewInfo(sys *chem.System) *Info {
	bonds := sys.Bonds()
	info := &Info{
		Atoms:     sys.Len(),
		Bonds:     len(bonds),
		Fragments: len(chemgraph.TopologyFromSystem(sys, nil).Fragments()),
		Clashes:   len(clash.Find(sys)),
		Formula:   sys.Formula(),
		Bonded:    make([][2]int, 0, len(bonds)),
		Pairs:     chemstat.ByPair(sys),
	}
	for _, b := range bonds {
		info.Bonded = append(info.Bonded, [2]int{b.At1, b.At2})
	}
	return info
}

//Send marshals the info and writes it to out.
func (J *Info) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError(false, 0, "Info.Send", err)
	}
	return nil
}

//DecodeRecords reads atom records from stream, either as a single JSON array
//or as one JSON object per line. Blank lines are skipped. The records are
//not validated, that is the job of chem.Loader.
func DecodeRecords(stream io.Reader) ([]chem.AtomRecord, *Error) {
	const funcname = "DecodeRecords"
	br := bufio.NewReader(stream)
	first, err := firstNonSpace(br)
	if err == io.EOF {
		return nil, NewError(true, 0, funcname, chem.NewError(chem.ErrEmptyInput, nil, "no JSON records"))
	}
	if err != nil {
		return nil, NewError(true, 0, funcname, err)
	}
	if first == '[' {
		var recs []chem.AtomRecord
		if err := json.NewDecoder(br).Decode(&recs); err != nil {
			return nil, NewError(true, 0, funcname, chem.NewError(chem.ErrMalformedInput, err, "JSON array"))
		}
		return recs, nil
	}
	var recs []chem.AtomRecord
	for lineno := 1; ; lineno++ {
		line, err := br.ReadBytes('\n') //Allocates more than needed, but structures are small.
		if len(bytes.TrimSpace(line)) > 0 {
			var r chem.AtomRecord
			if err := json.Unmarshal(line, &r); err != nil {
				return nil, NewError(true, lineno, funcname, chem.NewError(chem.ErrMalformedInput, err, "line %d", lineno))
			}
			recs = append(recs, r)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewError(true, lineno, funcname, err)
		}
	}
	return recs, nil
}

//firstNonSpace peeks the first non-blank byte of br, consuming the blanks before it.
func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b, br.UnreadByte()
	}
}

//EncodeRecords writes the records of the system to out, one JSON object per line.
func EncodeRecords(sys *chem.System, out io.Writer) *Error {
	enc := json.NewEncoder(out)
	for _, r := range sys.Records() {
		if err := enc.Encode(r); err != nil {
			return NewError(false, 0, "EncodeRecords", err)
		}
	}
	return nil
}
