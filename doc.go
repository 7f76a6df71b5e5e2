/*
 * doc.go, part of molview.
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

/*Package chem is the molecular model of molview. It provides the element table,
the System (atoms, coordinates and the bonds inferred from them), the loader that
turns lists of atom records into centered, bonded systems, and XYZ reading and writing.

	**Capabilities**

    Element data: covalent (Cordero) and van der Waals radii, multiple bond
	radii (Pyykko), masses and display colors.

    Bond inference from geometry only, with a configurable window around the
	sum of the covalent radii, and a best-effort bond order.

    All-or-nothing loading of atom records, with errors that can be checked with
	errors.Is against the Err* values of this package.

    Reads multi-frame XYZ files, plain or compressed with zstd or gzip. Writes XYZ.

The bonds are a plausible visual graph, not chemistry: there is no valence checking
of any kind.

Coordinates are kept in v3.Matrix objects (one row per atom), and rotations are, as
in goChem, 3x3 operators applied on the right side of the coordinates.

*/
package chem
