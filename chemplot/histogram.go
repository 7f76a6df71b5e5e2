/*
 * histogram.go, part of molview.
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

//Package chemplot draws plots of structural properties with gonum/plot.
package chemplot

import (
	"io"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/chemstat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

//Size of the saved plots.
const (
	Width  = 5 * vg.Inch
	Height = 4 * vg.Inch
)

//BondHistogram returns a histogram of the bond lengths of S, one series per
//element pair, each with the given number of bins. It returns an error of kind
//chem.ErrEmptyInput if S has no bonds.
func BondHistogram(S *chem.System, bins int, title string) (*plot.Plot, error) {
	stats := chemstat.ByPair(S)
	if len(stats) == 0 {
		err := chem.NewError(chem.ErrEmptyInput, nil, "no bonds to plot")
		err.Decorate("BondHistogram")
		return nil, err
	}
	if bins < 1 {
		bins = 1
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Bond length (Å)"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())
	for i, st := range stats {
		h, err := plotter.NewHist(plotter.Values(st.Lengths()), bins)
		if err != nil {
			return nil, err
		}
		h.FillColor = plotutil.Color(i)
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add(st.Pair, h)
	}
	p.Legend.Top = true
	return p, nil
}

//SaveBondHistogram writes the bond histogram of S to filename. The format
//is taken from the extension (png, svg, pdf...).
func SaveBondHistogram(S *chem.System, bins int, title, filename string) error {
	p, err := BondHistogram(S, bins, title)
	if err != nil {
		return err
	}
	return p.Save(Width, Height, filename)
}

//WriteBondHistogram writes the bond histogram of S to w, as format ("png", "svg"...).
func WriteBondHistogram(w io.Writer, S *chem.System, bins int, title, format string) error {
	p, err := BondHistogram(S, bins, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
