/*
 * elements.go, part of molview.
 *
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
	"image/color"
	"sort"
	"strings"
	"unicode"
)

//Element contains the static reference data for one chemical element.
type Element struct {
	Symbol string
	Number int
	Mass   float64
	//Covalent radius from Cordero et al., 2008 (DOI:10.1039/B801115J). Used to infer bonds.
	Covrad float64
	//van der Waals radius, from 10.1021/j100785a001 and 10.1021/jp8111556, or from
	//Alvarez, 2013 (DOI:10.1039/C3DT50599E) for the elements neither covers. Used for display.
	Vdwrad float64
	//Single, double and triple bond covalent radii from Pyykko & Atsumi
	//(DOI:10.1002/chem.200800987). Zero means not tabulated.
	MultiRad [3]float64
	Color    color.RGBA
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

//Elements 1 to 96, the range of the covalent radii table.
//Colors are the usual Jmol ones.
var elementData = []Element{
	{"H", 1, 1.008, 0.31, 1.10, [3]float64{0.32, 0, 0}, rgb(0xFFFFFF)},
	{"He", 2, 4.0026, 0.28, 1.40, [3]float64{}, rgb(0xD9FFFF)},
	{"Li", 3, 6.94, 1.28, 1.82, [3]float64{}, rgb(0xCC80FF)},
	{"Be", 4, 9.012, 0.96, 1.53, [3]float64{}, rgb(0xC2FF00)},
	{"B", 5, 10.81, 0.84, 1.92, [3]float64{0.85, 0.78, 0.73}, rgb(0xFFB5B5)},
	{"C", 6, 12.011, 0.76, 1.70, [3]float64{0.75, 0.67, 0.60}, rgb(0x909090)},
	{"N", 7, 14.007, 0.71, 1.55, [3]float64{0.71, 0.60, 0.54}, rgb(0x3050F8)},
	{"O", 8, 15.999, 0.66, 1.52, [3]float64{0.63, 0.57, 0.53}, rgb(0xFF0D0D)},
	{"F", 9, 18.998, 0.57, 1.47, [3]float64{}, rgb(0x90E050)},
	{"Ne", 10, 20.180, 0.58, 1.54, [3]float64{}, rgb(0xB3E3F5)},
	{"Na", 11, 22.990, 1.66, 2.27, [3]float64{}, rgb(0xAB5CF2)},
	{"Mg", 12, 24.305, 1.41, 1.73, [3]float64{}, rgb(0x8AFF00)},
	{"Al", 13, 26.982, 1.21, 1.84, [3]float64{}, rgb(0xBFA6A6)},
	{"Si", 14, 28.085, 1.11, 2.10, [3]float64{1.16, 1.07, 1.02}, rgb(0xF0C8A0)},
	{"P", 15, 30.974, 1.07, 1.80, [3]float64{1.11, 1.02, 0.94}, rgb(0xFF8000)},
	{"S", 16, 32.06, 1.05, 1.80, [3]float64{1.03, 0.94, 0.95}, rgb(0xFFFF30)},
	{"Cl", 17, 35.45, 1.02, 1.75, [3]float64{}, rgb(0x1FF01F)},
	{"Ar", 18, 39.948, 1.06, 1.88, [3]float64{}, rgb(0x80D1E3)},
	{"K", 19, 39.098, 2.03, 2.75, [3]float64{}, rgb(0x8F40D4)},
	{"Ca", 20, 40.078, 1.76, 2.31, [3]float64{}, rgb(0x3DFF00)},
	{"Sc", 21, 44.956, 1.70, 2.58, [3]float64{}, rgb(0xE6E6E6)},
	{"Ti", 22, 47.867, 1.60, 2.11, [3]float64{}, rgb(0xBFC2C7)},
	{"V", 23, 50.942, 1.53, 2.42, [3]float64{}, rgb(0xA6A6AB)},
	{"Cr", 24, 51.996, 1.39, 1.97, [3]float64{}, rgb(0x8A99C7)},
	{"Mn", 25, 54.938, 1.61, 1.96, [3]float64{}, rgb(0x9C7AC7)}, //hs
	{"Fe", 26, 55.845, 1.52, 1.96, [3]float64{}, rgb(0xE06633)}, //hs
	{"Co", 27, 58.933, 1.50, 1.95, [3]float64{}, rgb(0xF090A0)}, //hs
	{"Ni", 28, 58.693, 1.24, 1.63, [3]float64{}, rgb(0x50D050)},
	{"Cu", 29, 63.546, 1.32, 2.00, [3]float64{}, rgb(0xC88033)},
	{"Zn", 30, 65.38, 1.22, 2.02, [3]float64{}, rgb(0x7D80B0)},
	{"Ga", 31, 69.723, 1.22, 1.87, [3]float64{}, rgb(0xC28F8F)},
	{"Ge", 32, 72.630, 1.20, 2.11, [3]float64{}, rgb(0x668F8F)},
	{"As", 33, 74.922, 1.19, 1.85, [3]float64{}, rgb(0xBD80E3)},
	{"Se", 34, 78.971, 1.20, 1.90, [3]float64{}, rgb(0xFFA100)},
	{"Br", 35, 79.904, 1.20, 1.83, [3]float64{}, rgb(0xA62929)},
	{"Kr", 36, 83.798, 1.16, 2.02, [3]float64{}, rgb(0x5CB8D1)},
	{"Rb", 37, 85.468, 2.20, 3.03, [3]float64{}, rgb(0x702EB0)},
	{"Sr", 38, 87.62, 1.95, 2.49, [3]float64{}, rgb(0x00FF00)},
	{"Y", 39, 88.906, 1.90, 2.75, [3]float64{}, rgb(0x94FFFF)},
	{"Zr", 40, 91.224, 1.75, 2.52, [3]float64{}, rgb(0x94E0E0)},
	{"Nb", 41, 92.906, 1.64, 2.56, [3]float64{}, rgb(0x73C2C9)},
	{"Mo", 42, 95.95, 1.54, 2.45, [3]float64{}, rgb(0x54B5B5)},
	{"Tc", 43, 98, 1.47, 2.44, [3]float64{}, rgb(0x3B9E9E)},
	{"Ru", 44, 101.07, 1.46, 2.46, [3]float64{}, rgb(0x248F8F)},
	{"Rh", 45, 102.91, 1.42, 2.44, [3]float64{}, rgb(0x0A7D8C)},
	{"Pd", 46, 106.42, 1.39, 1.63, [3]float64{}, rgb(0x006985)},
	{"Ag", 47, 107.87, 1.45, 1.72, [3]float64{}, rgb(0xC0C0C0)},
	{"Cd", 48, 112.41, 1.44, 1.58, [3]float64{}, rgb(0xFFD98F)},
	{"In", 49, 114.82, 1.42, 1.93, [3]float64{}, rgb(0xA67573)},
	{"Sn", 50, 118.71, 1.39, 2.17, [3]float64{}, rgb(0x668080)},
	{"Sb", 51, 121.76, 1.39, 2.06, [3]float64{}, rgb(0x9E63B5)},
	{"Te", 52, 127.60, 1.38, 2.06, [3]float64{}, rgb(0xD47A00)},
	{"I", 53, 126.90, 1.39, 1.98, [3]float64{}, rgb(0x940094)},
	{"Xe", 54, 131.29, 1.40, 2.16, [3]float64{}, rgb(0x429EB0)},
	{"Cs", 55, 132.91, 2.44, 3.43, [3]float64{}, rgb(0x57178F)},
	{"Ba", 56, 137.33, 2.15, 2.68, [3]float64{}, rgb(0x00C900)},
	{"La", 57, 138.91, 2.07, 2.98, [3]float64{}, rgb(0x70D4FF)},
	{"Ce", 58, 140.12, 2.04, 2.88, [3]float64{}, rgb(0xFFFFC7)},
	{"Pr", 59, 140.91, 2.03, 2.92, [3]float64{}, rgb(0xD9FFC7)},
	{"Nd", 60, 144.24, 2.01, 2.95, [3]float64{}, rgb(0xC7FFC7)},
	{"Pm", 61, 145, 1.99, 2.90, [3]float64{}, rgb(0xA3FFC7)},
	{"Sm", 62, 150.36, 1.98, 2.90, [3]float64{}, rgb(0x8FFFC7)},
	{"Eu", 63, 151.96, 1.98, 2.87, [3]float64{}, rgb(0x61FFC7)},
	{"Gd", 64, 157.25, 1.96, 2.83, [3]float64{}, rgb(0x45FFC7)},
	{"Tb", 65, 158.93, 1.94, 2.79, [3]float64{}, rgb(0x30FFC7)},
	{"Dy", 66, 162.50, 1.92, 2.87, [3]float64{}, rgb(0x1FFFC7)},
	{"Ho", 67, 164.93, 1.92, 2.81, [3]float64{}, rgb(0x00FF9C)},
	{"Er", 68, 167.26, 1.89, 2.83, [3]float64{}, rgb(0x00E675)},
	{"Tm", 69, 168.93, 1.90, 2.79, [3]float64{}, rgb(0x00D452)},
	{"Yb", 70, 173.05, 1.87, 2.80, [3]float64{}, rgb(0x00BF38)},
	{"Lu", 71, 174.97, 1.87, 2.74, [3]float64{}, rgb(0x00AB24)},
	{"Hf", 72, 178.49, 1.75, 2.63, [3]float64{}, rgb(0x4DC2FF)},
	{"Ta", 73, 180.95, 1.70, 2.53, [3]float64{}, rgb(0x4DA6FF)},
	{"W", 74, 183.84, 1.62, 2.57, [3]float64{}, rgb(0x2194D6)},
	{"Re", 75, 186.21, 1.51, 2.49, [3]float64{}, rgb(0x267DAB)},
	{"Os", 76, 190.23, 1.44, 2.48, [3]float64{}, rgb(0x266696)},
	{"Ir", 77, 192.22, 1.41, 2.41, [3]float64{}, rgb(0x175487)},
	{"Pt", 78, 195.08, 1.36, 1.75, [3]float64{}, rgb(0xD0D0E0)},
	{"Au", 79, 196.97, 1.36, 1.66, [3]float64{}, rgb(0xFFD123)},
	{"Hg", 80, 200.59, 1.32, 1.55, [3]float64{}, rgb(0xB8B8D0)},
	{"Tl", 81, 204.38, 1.45, 1.96, [3]float64{}, rgb(0xA6544D)},
	{"Pb", 82, 207.2, 1.46, 2.02, [3]float64{}, rgb(0x575961)},
	{"Bi", 83, 208.98, 1.48, 2.07, [3]float64{}, rgb(0x9E4FB5)},
	{"Po", 84, 209, 1.40, 1.97, [3]float64{}, rgb(0xAB5C00)},
	{"At", 85, 210, 1.50, 2.02, [3]float64{}, rgb(0x754F45)},
	{"Rn", 86, 222, 1.50, 2.20, [3]float64{}, rgb(0x428296)},
	{"Fr", 87, 223, 2.60, 3.48, [3]float64{}, rgb(0x420066)},
	{"Ra", 88, 226, 2.21, 2.83, [3]float64{}, rgb(0x007D00)},
	{"Ac", 89, 227, 2.15, 2.80, [3]float64{}, rgb(0x70ABFA)},
	{"Th", 90, 232.04, 2.06, 2.93, [3]float64{}, rgb(0x00BAFF)},
	{"Pa", 91, 231.04, 2.00, 2.88, [3]float64{}, rgb(0x00A1FF)},
	{"U", 92, 238.03, 1.96, 2.71, [3]float64{}, rgb(0x008FFF)},
	{"Np", 93, 237, 1.90, 2.82, [3]float64{}, rgb(0x0080FF)},
	{"Pu", 94, 244, 1.87, 2.81, [3]float64{}, rgb(0x006BFF)},
	{"Am", 95, 243, 1.80, 2.83, [3]float64{}, rgb(0x545CF2)},
	{"Cm", 96, 247, 1.69, 3.05, [3]float64{}, rgb(0x785CE3)},
}

var elementTable = func() map[string]*Element {
	t := make(map[string]*Element, len(elementData))
	for i := range elementData {
		t[elementData[i].Symbol] = &elementData[i]
	}
	return t
}()

//NormalizeSymbol returns symbol with the first letter in upper case and the
//rest in lower case, so "CL" and "cl" become "Cl".
func NormalizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	r := []rune(strings.ToLower(symbol))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

//LookupElement returns the element data for symbol, and whether it was found.
//The symbol is normalized first. The returned pointer must not be modified.
func LookupElement(symbol string) (*Element, bool) {
	e, ok := elementTable[NormalizeSymbol(symbol)]
	return e, ok
}

//Symbols returns the symbols in the element table, sorted by atomic number.
func Symbols() []string {
	ret := make([]string, 0, len(elementData))
	for _, v := range elementData {
		ret = append(ret, v.Symbol)
	}
	sort.Slice(ret, func(i, j int) bool { return elementTable[ret[i]].Number < elementTable[ret[j]].Number })
	return ret
}
