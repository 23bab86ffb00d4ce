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

// Package scene implements the compositor's scene graph: item placement,
// transform caching, and the read-mostly scene store.
package scene

// Vec2 is a 2-component float vector, used for position, scale and bounds.
type Vec2 struct {
	X, Y float32
}

// Crop is a per-edge crop in source pixels.
type Crop struct {
	Left, Right, Top, Bottom int32
}

// IsEnabled reports whether any edge of the crop is non-zero.
func (c Crop) IsEnabled() bool {
	return c.Left != 0 || c.Right != 0 || c.Top != 0 || c.Bottom != 0
}

// BoundsType controls how an item is fit into its bounds box.
type BoundsType uint32

// BoundsType values, stable wire values per the external interface.
const (
	BoundsNone BoundsType = iota
	BoundsStretch
	BoundsScaleInner
	BoundsScaleOuter
	BoundsScaleToWidth
	BoundsScaleToHeight
	BoundsMaxOnly
)

// Alignment is a bitfield anchor within a box. Absence of the horizontal
// bit means horizontal center; same for vertical. Having both LEFT and
// RIGHT set is ill-formed and left to the caller to avoid.
type Alignment uint32

// Alignment bits.
const (
	AlignCenter Alignment = 0
	AlignLeft   Alignment = 1 << 0
	AlignRight  Alignment = 1 << 1
	AlignTop    Alignment = 1 << 2
	AlignBottom Alignment = 1 << 3
)

// HasLeft reports whether the LEFT bit is set.
func (a Alignment) HasLeft() bool { return a&AlignLeft != 0 }

// HasRight reports whether the RIGHT bit is set.
func (a Alignment) HasRight() bool { return a&AlignRight != 0 }

// HasTop reports whether the TOP bit is set.
func (a Alignment) HasTop() bool { return a&AlignTop != 0 }

// HasBottom reports whether the BOTTOM bit is set.
func (a Alignment) HasBottom() bool { return a&AlignBottom != 0 }

// BlendMode selects how an item composites with the layers below it.
type BlendMode uint32

// BlendMode values.
const (
	BlendNormal BlendMode = iota
	BlendAdditive
	BlendSubtract
	BlendScreen
	BlendMultiply
	BlendLighten
	BlendDarken
)

// ScaleFilter selects the resampling filter applied when an item's scale
// differs from 1:1.
type ScaleFilter uint32

// ScaleFilter values.
const (
	ScaleFilterDisable ScaleFilter = iota
	ScaleFilterPoint
	ScaleFilterBilinear
	ScaleFilterBicubic
	ScaleFilterLanczos
	ScaleFilterArea
)

// Item is the geometric placement of one source within a Scene.
type Item struct {
	ID       int64
	SourceID uint64

	Pos      Vec2
	Scale    Vec2
	Rotation float32 // degrees
	Align    Alignment

	BoundsType  BoundsType
	BoundsAlign Alignment
	Bounds      Vec2

	CropToBounds bool
	Crop         Crop
	BoundsCrop   Crop // derived; never written by callers

	// Cached transforms, valid iff !TransformDirty.
	DrawTransform [16]float32
	BoxTransform  [16]float32
	OutputScale   Vec2
	BoxScale      Vec2

	TransformDirty bool
	LastWidth      uint32
	LastHeight     uint32

	BlendMode   BlendMode
	ScaleFilter ScaleFilter

	Visible  bool
	Locked   bool
	Selected bool
	IsGroup  bool
}

// NewItem returns a new Item with default properties: unit scale, visible,
// and dirty so the first transform recompute always runs.
func NewItem(id int64, sourceID uint64) *Item {
	return &Item{
		ID:             id,
		SourceID:       sourceID,
		Scale:          Vec2{X: 1, Y: 1},
		TransformDirty: true,
		Visible:        true,
	}
}

// MarkTransformDirty marks the item's cached transforms as stale.
func (it *Item) MarkTransformDirty() {
	it.TransformDirty = true
}

// SourceSizeChanged reports whether the source dimensions differ from
// those observed at the item's last transform recompute.
func (it *Item) SourceSizeChanged(width, height uint32) bool {
	return it.LastWidth != width || it.LastHeight != height
}

// UsesItemTexture reports whether rendering this item requires drawing
// through an intermediate texture rather than directly: true iff it has
// any active crop (user or bounds-derived) or a non-Disable scale filter.
func (it *Item) UsesItemTexture() bool {
	return it.Crop.IsEnabled() || it.BoundsCrop.IsEnabled() || it.ScaleFilter != ScaleFilterDisable
}
