/*
 * output.go, part of molview.
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

package raster

import (
	"image"
	"image/png"
	"io"
	"strings"
)

//Image returns the last composed frame, or nil if nothing was rendered yet.
//The image is reused by the next Render.
func (R *Renderer) Image() *image.RGBA {
	return R.img
}

//WritePNG encodes the last composed frame as PNG.
func (R *Renderer) WritePNG(w io.Writer) error {
	if R.img == nil {
		return unavailable("WritePNG", R.res)
	}
	return png.Encode(w, R.img)
}

//darkest last
const ramp = " .:-=+*#%@"

//ASCII returns the last frame downsampled to cols x rows characters, darker
//pixels mapping to denser characters. Terminal cells are about twice as tall as
//wide, so rows is usually half of cols.
func (R *Renderer) ASCII(cols, rows int) string {
	if R.img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := R.img.Bounds()
	var sb strings.Builder
	sb.Grow((cols + 1) * rows)
	for r := 0; r < rows; r++ {
		y0 := b.Min.Y + r*b.Dy()/rows
		y1 := max(b.Min.Y+(r+1)*b.Dy()/rows, y0+1)
		for c := 0; c < cols; c++ {
			x0 := b.Min.X + c*b.Dx()/cols
			x1 := max(b.Min.X+(c+1)*b.Dx()/cols, x0+1)
			lum, n := 0.0, 0
			for y := y0; y < y1 && y < b.Max.Y; y++ {
				for x := x0; x < x1 && x < b.Max.X; x++ {
					px := R.img.RGBAAt(x, y)
					lum += (0.299*float64(px.R) + 0.587*float64(px.G) + 0.114*float64(px.B)) / 255
					n++
				}
			}
			if n > 0 {
				lum /= float64(n)
			}
			idx := int((1-lum)*float64(len(ramp)-1) + 0.5)
			sb.WriteByte(ramp[idx])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
