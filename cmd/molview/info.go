/*
 * info.go, part of molview.
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

package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/chemjson"
	"github.com/rmera/molview/chemplot"
	"github.com/rmera/molview/chemstat"
	"github.com/rmera/molview/clash"
	"github.com/rmera/molview/histo"
)

type infoOptions struct {
	json      bool
	histogram string
	bins      int
	bonds     bool
}

func newInfoCommand(a *app) *cobra.Command {
	opts := &infoOptions{}
	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Print the atoms, bonds and fragments of a structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := a.system(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.histogram != "" {
				if err := chemplot.SaveBondHistogram(sys, opts.bins, sys.Formula(), opts.histogram); err != nil {
					return err
				}
			}
			info := chemjson.NewInfo(sys)
			if opts.json {
				if jerr := info.Send(cmd.OutOrStdout()); jerr != nil {
					return jerr
				}
				return nil
			}
			return printInfo(cmd.OutOrStdout(), sys, info, opts)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.json, "json", false, "print JSON instead of text")
	f.StringVar(&opts.histogram, "histogram", "", "save a bond length histogram to this file (png, svg, pdf)")
	f.IntVar(&opts.bins, "bins", 10, "histogram bins")
	f.BoolVar(&opts.bonds, "bonds", false, "list every bond")
	return cmd
}

func printInfo(out io.Writer, sys *chem.System, info *chemjson.Info, opts *infoOptions) error {
	fmt.Fprintf(out, "Formula:   %s\n", info.Formula)
	fmt.Fprintf(out, "Atoms:     %d\n", info.Atoms)
	fmt.Fprintf(out, "Bonds:     %d\n", info.Bonds)
	fmt.Fprintf(out, "Fragments: %d\n", info.Fragments)
	orders := chemstat.OrderCounts(sys)
	fmt.Fprintf(out, "Orders:    %d single, %d double, %d triple\n", orders[chem.Single], orders[chem.Double], orders[chem.Triple])
	fmt.Fprintf(out, "Clashes:   %d\n", info.Clashes)
	if d, idx := clash.LowestDist(sys); !math.IsInf(d, 1) {
		fmt.Fprintf(out, "Closest:   %s%d-%s%d %.3f\n", sys.Atom(idx[0]).Symbol, idx[0], sys.Atom(idx[1]).Symbol, idx[1], d)
	}
	if len(info.Pairs) > 0 {
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PAIR\tCOUNT\tMEAN\tSTD\tMIN\tMAX")
		for _, p := range info.Pairs {
			fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\n", p.Pair, p.Count, p.Mean, p.StdDev, p.Min, p.Max)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if lengths := chemstat.BondLengths(sys); len(lengths) > 0 {
		fmt.Fprintln(out)
		fmt.Fprint(out, histo.NewData(histo.Covering(lengths, opts.bins), lengths).Bars(30))
	}
	if opts.bonds {
		fmt.Fprintln(out)
		for _, b := range sys.Bonds() {
			fmt.Fprintf(out, "%s%d-%s%d %.3f %s\n", sys.Atom(b.At1).Symbol, b.At1, sys.Atom(b.At2).Symbol, b.At2, b.Dist, b.Order)
		}
	}
	return nil
}
