/*
 * input.go, part of molview.
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

package session

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/chemjson"
	"github.com/rmera/molview/convert"
)

//Input is a structure read from a file: either atom records or a
//chemical notation that still needs to be converted.
type Input struct {
	Records  []chem.AtomRecord
	Notation string
}

//ReadInput reads the structure in the file name. Compressed files (.zst, .gz)
//are XYZ. For anything else, a first line that looks like a chemical notation
//wins; otherwise the extension decides between XYZ (.xyz) and JSON records (.json).
func ReadInput(name string) (Input, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".zst") || strings.HasSuffix(lower, ".gz") {
		return readXYZ(name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return Input{}, err
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if convert.CheckNotation(line) == nil {
			return Input{Notation: line}, nil
		}
		break
	}
	switch filepath.Ext(lower) {
	case ".xyz":
		return readXYZ(name)
	case ".json":
		recs, jerr := chemjson.DecodeRecords(bytes.NewReader(data))
		if jerr != nil {
			jerr.Decorate("ReadInput")
			return Input{}, jerr
		}
		return Input{Records: recs}, nil
	}
	err = chem.NewError(chem.ErrUnrecognizedFormat, nil, "%s", filepath.Base(name))
	return Input{}, err
}

func readXYZ(name string) (Input, error) {
	frames, err := chem.ReadXYZFile(name)
	if err != nil {
		return Input{}, err
	}
	return Input{Records: frames[0]}, nil
}
