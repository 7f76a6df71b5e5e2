/*
 * xyz.go, part of molview.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//ReadXYZ reads all the frames of an XYZ stream. Each frame is a line with the
//number of atoms, a comment line, and one "Symbol x y z" line per atom.
//Extra columns after the coordinates are ignored. Blank lines between frames
//are tolerated. The records are not validated against the element table, use
//Validate or a Loader for that.
func ReadXYZ(r io.Reader) ([][]AtomRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineno++
		return sc.Text(), true
	}
	var frames [][]AtomRecord
	for {
		line, ok := next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || natoms < 0 {
			return nil, decorated(NewError(ErrMalformedInput, nil, "line %d: expected an atom count, got %q", lineno, line), "ReadXYZ")
		}
		if _, ok := next(); !ok { //comment
			return nil, decorated(NewError(ErrMalformedInput, nil, "frame %d: missing comment line", len(frames)), "ReadXYZ")
		}
		frame := make([]AtomRecord, 0, natoms)
		for i := 0; i < natoms; i++ {
			line, ok = next()
			if !ok {
				return nil, decorated(NewError(ErrMalformedInput, nil, "frame %d: expected %d atoms, got %d", len(frames), natoms, i), "ReadXYZ")
			}
			rec, err := parseXYZLine(line)
			if err != nil {
				return nil, decorated(NewError(ErrMalformedInput, err, "line %d", lineno), "ReadXYZ")
			}
			frame = append(frame, rec)
		}
		frames = append(frames, frame)
	}
	if err := sc.Err(); err != nil {
		return nil, decorated(NewError(ErrMalformedInput, err, "reading XYZ"), "ReadXYZ")
	}
	if len(frames) == 0 {
		return nil, decorated(NewError(ErrEmptyInput, nil, "no XYZ frames"), "ReadXYZ")
	}
	return frames, nil
}

func parseXYZLine(line string) (AtomRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return AtomRecord{}, fmt.Errorf("ill formed atom line %q", line)
	}
	pos := make([]float64, 3)
	for i := range pos {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return AtomRecord{}, err
		}
		pos[i] = v
	}
	return AtomRecord{Symbol: fields[0], Position: pos}, nil
}

//ReadXYZFile reads an XYZ file. Files ending in .zst or .gz are decompressed
//on the fly.
func ReadXYZFile(name string) ([][]AtomRecord, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	switch {
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, decorated(NewError(ErrMalformedInput, err, "%s", name), "ReadXYZFile")
		}
		defer dec.Close()
		r = dec
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, decorated(NewError(ErrMalformedInput, err, "%s", name), "ReadXYZFile")
		}
		defer gz.Close()
		r = gz
	}
	frames, err := ReadXYZ(r)
	return frames, errDecorate(err, "ReadXYZFile")
}

//WriteXYZ writes the system as a single XYZ frame, with the given comment.
func WriteXYZ(w io.Writer, S *System, comment string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-4d\n", S.Len())
	fmt.Fprintf(bw, "%s\n", strings.ReplaceAll(comment, "\n", " "))
	for i, at := range S.atoms {
		c := S.Position(i)
		if _, err := fmt.Fprintf(bw, "%-2s  %12.6f%12.6f%12.6f\n", at.Symbol, c[0], c[1], c[2]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

//WriteXYZFile writes the system to the file name, which will be created or
//overwritten. If the name ends in .zst, the file is zstd-compressed.
func WriteXYZFile(name string, S *System, comment string) (err error) {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if !strings.HasSuffix(name, ".zst") {
		return WriteXYZ(out, S, comment)
	}
	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	if err = WriteXYZ(enc, S, comment); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
