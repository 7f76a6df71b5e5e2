//Package clash finds atoms that are too close to each other, which in a
//structure coming from outside usually means duplicated or misplaced atoms.
package clash

import (
	"math"

	chem "github.com/rmera/molview"
)

//Overlap is a pair of atoms closer than the lower end of the bonding window,
//so they were left unbonded.
type Overlap struct {
	At1, At2 int
	Dist     float64
	Limit    float64
}

//Find returns the pairs of atoms of S closer than the lower bonding factor
//S was bonded with, times the sum of their covalent radii, in increasing
//index order.
func Find(S *chem.System) []Overlap {
	minFactor, _ := S.BondFactors()
	var ret []Overlap
	coord := S.Coords()
	for i := 0; i < S.Len(); i++ {
		r1 := S.Atom(i).Element().Covrad
		for j := i + 1; j < S.Len(); j++ {
			limit := minFactor * (r1 + S.Atom(j).Element().Covrad)
			if d := coord.Dist(i, j); d < limit {
				ret = append(ret, Overlap{At1: i, At2: j, Dist: d, Limit: limit})
			}
		}
	}
	return ret
}

//LowestDist returns the shortest interatomic distance in S and the atoms
//at that distance. It returns +Inf for systems with less than 2 atoms.
func LowestDist(S *chem.System) (dist float64, indexes [2]int) {
	dist = math.Inf(1)
	coord := S.Coords()
	for i := 0; i < S.Len(); i++ {
		for j := i + 1; j < S.Len(); j++ {
			if dt := coord.Dist(i, j); dt < dist {
				dist = dt
				indexes = [2]int{i, j}
			}
		}
	}
	return
}

//HighestOverlap returns the largest overlap of van der Waals spheres,
//r1+r2-d, between atoms that are neither bonded nor share a bonded neighbor,
//and the atoms involved. A negative value means no such spheres touch.
//It returns -Inf if there are no such pairs.
func HighestOverlap(S *chem.System) (over float64, indexes [2]int) {
	over = math.Inf(-1)
	coord := S.Coords()
	for i := 0; i < S.Len(); i++ {
		near := make(map[int]bool)
		for _, n := range S.Neighbors(i) {
			near[n] = true
			for _, m := range S.Neighbors(n) {
				near[m] = true
			}
		}
		r1 := S.Atom(i).Element().Vdwrad
		for j := i + 1; j < S.Len(); j++ {
			if near[j] {
				continue
			}
			ov := r1 + S.Atom(j).Element().Vdwrad - coord.Dist(i, j)
			if ov > over {
				over = ov
				indexes = [2]int{i, j}
			}
		}
	}
	return
}
