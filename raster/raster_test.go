/*
 * raster_test.go, part of molview.
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
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/view"
)

func waterScene(Te *testing.T) (*chem.System, *view.State) {
	Te.Helper()
	sys, err := chem.NewLoader().Load([]chem.AtomRecord{
		{Symbol: "O", Position: []float64{0, 0, 0}},
		{Symbol: "H", Position: []float64{0.757, 0.586, 0}},
		{Symbol: "H", Position: []float64{-0.757, 0.586, 0}},
	})
	if err != nil {
		Te.Fatal(err)
	}
	v := view.New(view.WithResolution(64), view.WithAORes(32), view.WithSamplesPerFrame(4))
	v.Center(sys)
	return sys, v
}

func TestUnavailable(Te *testing.T) {
	R := New()
	sys, _ := waterScene(Te)
	err := R.SetSystem(sys, view.New(view.WithResolution(0)))
	if !errors.Is(err, chem.ErrRendererUnavailable) {
		Te.Errorf("Expected ErrRendererUnavailable, got %v", err)
	}
	if err := R.WritePNG(&bytes.Buffer{}); !errors.Is(err, chem.ErrRendererUnavailable) {
		Te.Errorf("Writing before rendering should fail, got %v", err)
	}
}

func TestProgressive(Te *testing.T) {
	sys, v := waterScene(Te)
	R := New(WithSeed(3))
	if err := R.SetSystem(sys, v); err != nil {
		Te.Fatal(err)
	}
	R.Reset()
	for i := 0; i < 2; i++ {
		if err := R.Render(v); err != nil {
			Te.Fatal(err)
		}
	}
	if R.Samples() != 8 || R.Frames() != 2 {
		Te.Errorf("Expected 8 samples in 2 frames, got %d in %d", R.Samples(), R.Frames())
	}
	img := R.Image()
	white := color.RGBA{255, 255, 255, 255}
	if img.RGBAAt(0, 0) != white {
		Te.Errorf("The corner should be background, got %v", img.RGBAAt(0, 0))
	}
	center := img.RGBAAt(32, 32)
	if center == white {
		Te.Error("The center of the image should show the oxygen")
	}
	//Material changes keep the accumulation and change the output.
	v.Set(view.Brightness, 0)
	if err := R.Render(v); err != nil {
		Te.Fatal(err)
	}
	if R.Samples() != 12 {
		Te.Errorf("Samples should keep accumulating, got %d", R.Samples())
	}
	if img.RGBAAt(32, 32) == center {
		Te.Error("Brightness had no effect")
	}
	R.Reset()
	R.Render(v)
	if R.Samples() != 4 {
		Te.Errorf("Reset should discard the samples, got %d", R.Samples())
	}
	var buf bytes.Buffer
	if err := R.WritePNG(&buf); err != nil || buf.Len() == 0 {
		Te.Errorf("PNG encoding failed: %v", err)
	}
}

func TestDeterministic(Te *testing.T) {
	sys, v := waterScene(Te)
	v.Set(view.Outline, 1)
	v.Set(view.DofStrength, 0.5)
	var pix [][]byte
	for i := 0; i < 2; i++ {
		R := New(WithSeed(42))
		R.SetSystem(sys, v)
		R.Render(v)
		pix = append(pix, append([]byte(nil), R.Image().Pix...))
	}
	if !bytes.Equal(pix[0], pix[1]) {
		Te.Error("Renderers with the same seed gave different images")
	}
}

func TestASCII(Te *testing.T) {
	sys, v := waterScene(Te)
	R := New()
	if R.ASCII(10, 5) != "" {
		Te.Error("Nothing rendered, the preview should be empty")
	}
	R.SetSystem(sys, v)
	R.Render(v)
	art := R.ASCII(20, 10)
	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	if len(lines) != 10 {
		Te.Fatalf("Expected 10 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if len(l) != 20 {
			Te.Errorf("Wrong line width %d", len(l))
		}
	}
	if strings.TrimSpace(art) == "" {
		Te.Error("The preview is blank")
	}
}
