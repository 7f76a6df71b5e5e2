/*
 * raster.go, part of molview.
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

//Package raster is a software progressive renderer. It draws atoms as spheres and
//bonds as capsules (chains of overlapping spheres) with an orthographic camera,
//and refines a stochastic ambient occlusion estimate with every frame.
//
//Only the scene geometry is accumulated. Material settings (shading, brightness,
//outline, depth of field and the strength of the occlusion) are applied when the
//accumulated samples are composed into the output image, so changing them does
//not require a reset.
package raster

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/view"
	"gonum.org/v1/gonum/spatial/r3"
)

type sphere struct {
	c    r3.Vec
	r    float64
	col  [3]float64
	bond bool
}

//one pixel of the geometry buffer.
type pixel struct {
	hit  bool
	z    float64
	pos  r3.Vec
	n    r3.Vec
	col  [3]float64
	bond bool
	lit  float64 //accumulated visibility
}

//Renderer implements render.Renderer on the CPU.
type Renderer struct {
	sys     *chem.System
	res     int
	aoRes   int
	rng     *rand.Rand
	dirty   bool
	scene   []sphere
	gbuf    []pixel
	depth   []float64
	samples int
	frames  int
	img     *image.RGBA
}

//Option configures a Renderer.
type Option func(*Renderer)

//WithSeed makes the ambient occlusion sampling deterministic.
func WithSeed(seed int64) Option {
	return func(R *Renderer) { R.rng = rand.New(rand.NewSource(seed)) }
}

//New returns an empty renderer.
func New(opts ...Option) *Renderer {
	R := &Renderer{rng: rand.New(rand.NewSource(1)), dirty: true}
	for _, o := range opts {
		o(R)
	}
	return R
}

func unavailable(caller string, res int) error {
	err := chem.NewError(chem.ErrRendererUnavailable, nil, "resolution %d", res)
	err.Decorate(caller)
	return err
}

//SetSystem sets the system to draw. The view gives the output and occlusion resolutions.
func (R *Renderer) SetSystem(sys *chem.System, v *view.State) error {
	if v.Resolution <= 0 || v.AORes <= 0 {
		return unavailable("SetSystem", v.Resolution)
	}
	R.sys = sys
	R.res = v.Resolution
	R.aoRes = v.AORes
	R.dirty = true
	return nil
}

//Reset discards the accumulated samples. The geometry is rebuilt from the
//view on the next Render.
func (R *Renderer) Reset() {
	R.dirty = true
}

//Samples returns the number of occlusion samples accumulated since the last reset.
func (R *Renderer) Samples() int { return R.samples }

//Frames returns the number of frames rendered since the last reset.
func (R *Renderer) Frames() int { return R.frames }

//Render adds v.SamplesPerFrame occlusion samples and composes a new image.
func (R *Renderer) Render(v *view.State) error {
	if v.Resolution <= 0 {
		return unavailable("Render", v.Resolution)
	}
	if R.dirty || R.res != v.Resolution || R.gbuf == nil {
		R.res = v.Resolution
		if v.AORes > 0 {
			R.aoRes = v.AORes
		}
		R.buildScene(v)
		R.rasterize(v)
		R.dirty = false
	}
	for i := 0; i < v.SamplesPerFrame; i++ {
		R.occlusionSample()
	}
	R.frames++
	R.compose(v)
	return nil
}

func (R *Renderer) buildScene(v *view.State) {
	R.scene = R.scene[:0]
	R.samples = 0
	R.frames = 0
	if R.sys == nil {
		return
	}
	toVec := func(p [3]float64) r3.Vec { return r3.Vec{X: p[0], Y: p[1], Z: p[2]} }
	colorOf := func(i int) [3]float64 {
		c := R.sys.Atom(i).Element().Color
		return [3]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
	}
	for i := 0; i < R.sys.Len(); i++ {
		R.scene = append(R.scene, sphere{
			c:   toVec(v.Project(R.sys.Position(i))),
			r:   v.AtomRadius(R.sys.Atom(i).Element().Vdwrad),
			col: colorOf(i),
		})
	}
	br := v.BondRadius()
	if br <= 0 {
		return
	}
	for _, b := range R.sys.Bonds() {
		a := toVec(v.Project(R.sys.Position(b.At1)))
		c := toVec(v.Project(R.sys.Position(b.At2)))
		d := r3.Sub(c, a)
		n := int(math.Ceil(r3.Norm(d) / (0.5 * br)))
		if n < 2 {
			n = 2
		}
		for k := 0; k <= n; k++ {
			t := float64(k) / float64(n)
			col := colorOf(b.At1)
			if t > 0.5 {
				col = colorOf(b.At2)
			}
			R.scene = append(R.scene, sphere{c: r3.Add(a, r3.Scale(t, d)), r: br, col: col, bond: true})
		}
	}
}

//rasterize fills the geometry buffer. The camera looks down -z, one pixel
//is 1/(res*zoom) units wide and the origin is at the center of the image.
func (R *Renderer) rasterize(v *view.State) {
	res := R.res
	if len(R.gbuf) != res*res {
		R.gbuf = make([]pixel, res*res)
	}
	for i := range R.gbuf {
		R.gbuf[i] = pixel{z: math.Inf(-1)}
	}
	scale := float64(res) * v.Zoom()
	half := float64(res) / 2
	for _, s := range R.scene {
		x0 := int(math.Floor(half + (s.c.X-s.r)*scale))
		x1 := int(math.Ceil(half + (s.c.X+s.r)*scale))
		y0 := int(math.Floor(half - (s.c.Y+s.r)*scale))
		y1 := int(math.Ceil(half - (s.c.Y-s.r)*scale))
		for py := max(y0, 0); py < min(y1, res); py++ {
			wy := (half - (float64(py) + 0.5)) / scale
			for px := max(x0, 0); px < min(x1, res); px++ {
				wx := (float64(px) + 0.5 - half) / scale
				dx, dy := wx-s.c.X, wy-s.c.Y
				h := s.r*s.r - dx*dx - dy*dy
				if h < 0 {
					continue
				}
				dz := math.Sqrt(h)
				p := &R.gbuf[py*res+px]
				if s.c.Z+dz <= p.z {
					continue
				}
				*p = pixel{
					hit:  true,
					z:    s.c.Z + dz,
					pos:  r3.Vec{X: wx, Y: wy, Z: s.c.Z + dz},
					n:    r3.Unit(r3.Vec{X: dx, Y: dy, Z: dz + 1e-12}),
					col:  s.col,
					bond: s.bond,
				}
			}
		}
	}
}

//occlusionSample renders the scene from a random direction into a depth map and
//marks every visible pixel that the direction reaches without obstruction.
func (R *Renderer) occlusionSample() {
	if len(R.scene) == 0 {
		return
	}
	d := randomDirection(R.rng)
	u, w := basis(d)
	var center r3.Vec
	for _, s := range R.scene {
		center = r3.Add(center, s.c)
	}
	center = r3.Scale(1/float64(len(R.scene)), center)
	extent := 0.0
	for _, s := range R.scene {
		extent = math.Max(extent, r3.Norm(r3.Sub(s.c, center))+s.r)
	}
	if extent <= 0 {
		return
	}
	n := R.aoRes
	if len(R.depth) != n*n {
		R.depth = make([]float64, n*n)
	}
	for i := range R.depth {
		R.depth[i] = math.Inf(-1)
	}
	cell := 2 * extent / float64(n)
	toCell := func(p r3.Vec) (float64, float64, float64) {
		q := r3.Sub(p, center)
		return (r3.Dot(q, u) + extent) / cell, (r3.Dot(q, w) + extent) / cell, r3.Dot(q, d)
	}
	for _, s := range R.scene {
		cu, cw, cd := toCell(s.c)
		rc := s.r / cell
		for j := max(int(cw-rc), 0); j <= min(int(cw+rc), n-1); j++ {
			for i := max(int(cu-rc), 0); i <= min(int(cu+rc), n-1); i++ {
				du, dw := float64(i)+0.5-cu, float64(j)+0.5-cw
				h := rc*rc - du*du - dw*dw
				if h < 0 {
					continue
				}
				z := cd + math.Sqrt(h)*cell
				if z > R.depth[j*n+i] {
					R.depth[j*n+i] = z
				}
			}
		}
	}
	bias := 2 * cell
	for k := range R.gbuf {
		p := &R.gbuf[k]
		if !p.hit || r3.Dot(p.n, d) <= 0 {
			continue
		}
		pu, pw, pd := toCell(p.pos)
		i, j := int(pu), int(pw)
		if i < 0 || j < 0 || i >= n || j >= n {
			continue
		}
		if pd >= R.depth[j*n+i]-bias {
			p.lit++
		}
	}
	R.samples++
}

func randomDirection(rng *rand.Rand) r3.Vec {
	for {
		v := r3.Vec{X: 2*rng.Float64() - 1, Y: 2*rng.Float64() - 1, Z: 2*rng.Float64() - 1}
		if n := r3.Norm(v); n > 1e-6 && n <= 1 {
			return r3.Scale(1/n, v)
		}
	}
}

//basis returns two unit vectors orthogonal to d and to each other.
func basis(d r3.Vec) (r3.Vec, r3.Vec) {
	a := r3.Vec{X: 1}
	if math.Abs(d.X) > 0.9 {
		a = r3.Vec{Y: 1}
	}
	u := r3.Unit(r3.Cross(d, a))
	return u, r3.Cross(d, u)
}

//compose turns the accumulated samples into an image, applying the material settings of v.
func (R *Renderer) compose(v *view.State) {
	res := R.res
	if R.img == nil || R.img.Bounds().Dx() != res {
		R.img = image.NewRGBA(image.Rect(0, 0, res, res))
	}
	shaded := make([][3]float64, len(R.gbuf))
	zmin, zmax := math.Inf(1), math.Inf(-1)
	for k, p := range R.gbuf {
		if !p.hit {
			shaded[k] = [3]float64{1, 1, 1}
			continue
		}
		zmin, zmax = math.Min(zmin, p.z), math.Max(zmax, p.z)
		occ := 1.0
		if R.samples > 0 {
			//a fully exposed point sees half of the directions.
			occ = math.Min(1, 2*p.lit/float64(R.samples))
		}
		f := 1 - v.AO()*(1-occ)
		shade := v.AtomShade()
		if p.bond {
			shade = v.BondShade()
		}
		f *= 1 - shade*(1-p.n.Z)
		f *= 0.5 + v.Brightness()
		for c := range p.col {
			shaded[k][c] = math.Min(1, p.col[c]*f)
		}
	}
	focus := zmin + (1-v.DofPosition())*(zmax-zmin)
	zrange := math.Max(zmax-zmin, 1e-9)
	for py := 0; py < res; py++ {
		for px := 0; px < res; px++ {
			k := py*res + px
			c := shaded[k]
			p := R.gbuf[k]
			if p.hit && v.DofStrength() > 0 {
				wgt := math.Min(1, v.DofStrength()*math.Abs(p.z-focus)/zrange*2)
				avg := R.neighborhood(shaded, px, py)
				for i := range c {
					c[i] = (1-wgt)*c[i] + wgt*avg[i]
				}
			}
			if p.hit && v.Outline() > 0 && R.edge(px, py) {
				for i := range c {
					c[i] *= 1 - v.Outline()
				}
			}
			R.img.SetRGBA(px, py, color.RGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: 0xff})
		}
	}
}

func (R *Renderer) neighborhood(shaded [][3]float64, px, py int) [3]float64 {
	var sum [3]float64
	n := 0.0
	for y := max(py-1, 0); y <= min(py+1, R.res-1); y++ {
		for x := max(px-1, 0); x <= min(px+1, R.res-1); x++ {
			for i, v := range shaded[y*R.res+x] {
				sum[i] += v
			}
			n++
		}
	}
	for i := range sum {
		sum[i] /= n
	}
	return sum
}

//edge reports whether the pixel borders the background or a jump in depth.
func (R *Renderer) edge(px, py int) bool {
	p := R.gbuf[py*R.res+px]
	for _, o := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		x, y := px+o[0], py+o[1]
		if x < 0 || y < 0 || x >= R.res || y >= R.res {
			return true
		}
		q := R.gbuf[y*R.res+x]
		if !q.hit || math.Abs(q.z-p.z) > 0.5 {
			return true
		}
	}
	return false
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
