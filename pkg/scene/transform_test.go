// Copyright 2020-2021 The OS-NVR Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scene

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddAlignment(t *testing.T) {
	cases := map[string]struct {
		align    Alignment
		cx, cy   int32
		expected Vec2
	}{
		"center":      {AlignCenter, 100, 50, Vec2{X: 50, Y: 25}},
		"topLeft":     {AlignLeft | AlignTop, 100, 50, Vec2{X: 0, Y: 0}},
		"bottomRight": {AlignRight | AlignBottom, 100, 50, Vec2{X: 100, Y: 50}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			pos := Vec2{}
			addAlignment(&pos, tc.align, tc.cx, tc.cy)
			require.Equal(t, tc.expected, pos)
		})
	}
}

func TestCalcCxCy(t *testing.T) {
	// S7: crop(10,20,5,15) on a (100,100) source yields (70, 80).
	item := NewItem(1, 42)
	item.Crop = Crop{Left: 10, Right: 20, Top: 5, Bottom: 15}

	require.Equal(t, uint32(70), calcCx(item, 100))
	require.Equal(t, uint32(80), calcCy(item, 100))
}

func TestCalcCxCyMinimumSize(t *testing.T) {
	item := NewItem(1, 42)
	item.Crop = Crop{Left: 50, Right: 60}

	require.Equal(t, uint32(2), calcCx(item, 100))
	require.Equal(t, uint32(100), calcCy(item, 100))
}

func TestUpdateItemTransformBasic(t *testing.T) {
	// S2: pos (100,200), scale (2,2), bounds None, source (1920,1080).
	item := NewItem(1, 42)
	item.Pos = Vec2{X: 100, Y: 200}
	item.Scale = Vec2{X: 2, Y: 2}

	UpdateItemTransform(item, 1920, 1080)

	require.False(t, item.TransformDirty)
	require.Equal(t, uint32(1920), item.LastWidth)
	require.Equal(t, uint32(1080), item.LastHeight)
	require.Equal(t, Vec2{X: 2, Y: 2}, item.OutputScale)
}

func TestUpdateItemTransformSkipsWhenClean(t *testing.T) {
	item := NewItem(1, 42)
	UpdateItemTransform(item, 1920, 1080)

	item.TransformDirty = false
	before := item.DrawTransform

	UpdateItemTransform(item, 1920, 1080)
	require.Equal(t, before, item.DrawTransform)
}

func TestUpdateItemTransformBoundsStretch(t *testing.T) {
	// S3: bounds=Stretch, bounds=(640,360), scale=(1,1), source (1920,1080).
	item := NewItem(1, 42)
	item.BoundsType = BoundsStretch
	item.Bounds = Vec2{X: 640, Y: 360}
	item.Scale = Vec2{X: 1, Y: 1}

	UpdateItemTransform(item, 1920, 1080)

	require.False(t, item.TransformDirty)
	require.InDelta(t, float64(640)/1920, item.OutputScale.X, 1e-4)
	require.InDelta(t, float64(360)/1080, item.OutputScale.Y, 1e-4)
}

func TestUpdateItemTransformMaxOnlyPromotesToScaleInner(t *testing.T) {
	item := NewItem(1, 42)
	item.BoundsType = BoundsMaxOnly
	item.Bounds = Vec2{X: 100, Y: 100}
	item.Scale = Vec2{X: 1, Y: 1}

	UpdateItemTransform(item, 1920, 1080)

	require.LessOrEqual(t, item.OutputScale.X*1920, float32(100.5))
}
