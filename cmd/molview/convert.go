/*
 * convert.go, part of molview.
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
	"github.com/spf13/cobra"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/internal/logging"
)

func newConvertCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert NOTATION",
		Short: "Convert a chemical line notation to an XYZ structure",
		Long: "convert asks the conversion service for 3D coordinates of NOTATION and writes\n" +
			"them, centered, as XYZ. Output files ending in .zst are compressed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := a.converter().Convert(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sys, err := a.loader().Load(recs)
			if err != nil {
				return err
			}
			a.logger.Info("converted",
				logging.String("notation", args[0]),
				logging.String("formula", sys.Formula()),
				logging.Int("bonds", len(sys.Bonds())))
			if output == "" || output == "-" {
				return chem.WriteXYZ(cmd.OutOrStdout(), sys, args[0])
			}
			return chem.WriteXYZFile(output, sys, args[0])
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output XYZ file, standard output if empty")
	return cmd
}
