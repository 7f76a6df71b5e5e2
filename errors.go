/*
 * errors.go, part of molview.
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
	"errors"
	"fmt"
	"strings"
)

//The error kinds of the library. Every error returned by molview packages
//that belongs to one of these classes satisfies errors.Is with the
//corresponding value.
var (
	//ErrInvalidSymbol means the element symbol has no entry in the element table.
	ErrInvalidSymbol = errors.New("invalid element symbol")
	//ErrMalformedInput means a structure record lacks required fields or has non-finite coordinates.
	ErrMalformedInput = errors.New("malformed structure input")
	//ErrEmptyInput means a structure with zero atoms was given.
	ErrEmptyInput = errors.New("empty structure input")
	//ErrUnrecognizedFormat means a text line failed the chemical notation check.
	ErrUnrecognizedFormat = errors.New("unrecognized structure format")
	//ErrConversionFailed means the remote notation conversion failed or returned unusable data.
	ErrConversionFailed = errors.New("structure conversion failed")
	//ErrRendererUnavailable means no usable rendering surface is present.
	ErrRendererUnavailable = errors.New("renderer unavailable")
)

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
}

//CError is the concrete error type of the chem package. It carries
//the kind of error (one of the Err* values), an optional cause,
//and the list of functions it went through.
type CError struct {
	msg   string
	kind  error
	cause error
	deco  []string
}

//NewError returns a *CError of the given kind. cause can be nil.
func NewError(kind error, cause error, format string, args ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, args...), kind: kind, cause: cause}
}

//Error returns a string with an error message.
func (err *CError) Error() string {
	parts := make([]string, 0, 3)
	if err.kind != nil {
		parts = append(parts, err.kind.Error())
	}
	if err.msg != "" {
		parts = append(parts, err.msg)
	}
	if err.cause != nil {
		parts = append(parts, err.cause.Error())
	}
	return strings.Join(parts, ": ")
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Is reports whether target is the kind of err.
func (err *CError) Is(target error) bool {
	return err.kind != nil && target == err.kind
}

//Unwrap returns the upstream cause, if any.
func (err *CError) Unwrap() error {
	return err.cause
}

//errDecorate decorates err with the caller's name if err implements Error,
//and returns it.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
