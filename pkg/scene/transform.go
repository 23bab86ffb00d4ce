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
	"math"

	"gonum.org/v1/gonum/mat"
)

// addAlignment applies an alignment anchor offset to pos for a box of
// size (cx, cy).
func addAlignment(pos *Vec2, align Alignment, cx, cy int32) {
	if align.HasRight() {
		pos.X += float32(cx)
	} else if !align.HasLeft() {
		pos.X += float32(cx / 2)
	}

	if align.HasBottom() {
		pos.Y += float32(cy)
	} else if !align.HasTop() {
		pos.Y += float32(cy / 2)
	}
}

// signum32 matches Rust's f32::signum: 1 for positive/+0, -1 for
// negative/-0, propagating NaN.
func signum32(v float32) float32 {
	if math.IsNaN(float64(v)) {
		return v
	}
	if math.Signbit(float64(v)) {
		return -1
	}
	return 1
}

// roundHalfAwayFromZero matches Rust's f32::round.
func roundHalfAwayFromZero(v float32) float32 {
	return float32(math.Round(float64(v)))
}

// saturatingUint32 matches Rust's `as u32` float-to-int cast (saturating
// since Rust 1.45): NaN and negative values saturate to 0, values beyond
// the uint32 range saturate to math.MaxUint32. Go's own float-to-uint32
// conversion is implementation-defined for out-of-range inputs, so a
// flipped (negative) scale must be guarded explicitly rather than relying
// on a bare conversion.
func saturatingUint32(v float32) uint32 {
	if math.IsNaN(float64(v)) || v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// calculateBoundsData applies bounds-fitting, updates origin/scale/cx/cy in
// place, and derives item.BoundsCrop when crop-to-bounds overdraw applies.
func calculateBoundsData(item *Item, origin, scale *Vec2, cx, cy *uint32) {
	bounds := item.Bounds
	width := float32(*cx) * float32(math.Abs(float64(scale.X)))
	height := float32(*cy) * float32(math.Abs(float64(scale.Y)))
	itemAspect := width / height
	boundsAspect := bounds.X / bounds.Y
	boundsType := item.BoundsType

	if boundsType == BoundsMaxOnly && (width > bounds.X || height > bounds.Y) {
		boundsType = BoundsScaleInner
	}

	switch boundsType {
	case BoundsScaleInner, BoundsScaleOuter:
		useWidth := boundsAspect < itemAspect
		if boundsType == BoundsScaleOuter {
			useWidth = !useWidth
		}

		var mul float32
		if useWidth {
			mul = bounds.X / width
		} else {
			mul = bounds.Y / height
		}
		scale.X *= mul
		scale.Y *= mul
	case BoundsScaleToWidth:
		mul := bounds.X / width
		scale.X *= mul
		scale.Y *= mul
	case BoundsScaleToHeight:
		mul := bounds.Y / height
		scale.X *= mul
		scale.Y *= mul
	case BoundsStretch:
		scale.X = bounds.X / float32(*cx) * signum32(scale.X)
		scale.Y = bounds.Y / float32(*cy) * signum32(scale.Y)
	}

	newWidth := float32(*cx) * scale.X
	newHeight := float32(*cy) * scale.Y

	widthDiff := bounds.X - float32(math.Abs(float64(newWidth)))
	heightDiff := bounds.Y - float32(math.Abs(float64(newHeight)))
	*cx = saturatingUint32(bounds.X)
	*cy = saturatingUint32(bounds.Y)

	addAlignment(origin, item.BoundsAlign, -int32(widthDiff), -int32(heightDiff))

	if item.CropToBounds && (widthDiff < -0.1 || heightDiff < -0.1) {
		cropWidth := widthDiff < -0.1
		var cropFlipped bool
		if cropWidth {
			cropFlipped = newWidth < 0
		} else {
			cropFlipped = newHeight < 0
		}

		var cropDiff, cropScale float32
		if cropWidth {
			cropDiff, cropScale = widthDiff, scale.X
		} else {
			cropDiff, cropScale = heightDiff, scale.Y
		}

		var cropAlignMask Alignment
		if cropWidth {
			cropAlignMask = AlignLeft | AlignRight
		} else {
			cropAlignMask = AlignTop | AlignBottom
		}
		cropAlign := item.BoundsAlign & cropAlignMask

		overdraw := float32(math.Abs(float64(cropDiff / cropScale)))

		var overdrawTL float32
		switch {
		case cropAlign&(AlignTop|AlignLeft) != 0:
			overdrawTL = 0
		case cropAlign&(AlignBottom|AlignRight) != 0:
			overdrawTL = overdraw
		default:
			overdrawTL = overdraw / 2
		}
		overdrawBR := overdraw - overdrawTL

		var cropBR, cropTL int32
		if cropFlipped {
			cropBR = int32(roundHalfAwayFromZero(overdrawTL))
			cropTL = int32(roundHalfAwayFromZero(overdrawBR))
		} else {
			cropBR = int32(roundHalfAwayFromZero(overdrawBR))
			cropTL = int32(roundHalfAwayFromZero(overdrawTL))
		}

		if cropWidth {
			item.BoundsCrop.Right = cropBR
			item.BoundsCrop.Left = cropTL
		} else {
			item.BoundsCrop.Bottom = cropBR
			item.BoundsCrop.Top = cropTL
		}
	}

	if newWidth < 0 {
		origin.X += newWidth
	}
	if newHeight < 0 {
		origin.Y += newHeight
	}
}

// calcCx returns the crop-adjusted width, or 2 when the total horizontal
// crop exceeds width. A crop that leaves less than 2 pixels without
// exceeding width is returned as is.
func calcCx(item *Item, width uint32) uint32 {
	cropCx := uint32(item.Crop.Left + item.Crop.Right + item.BoundsCrop.Left + item.BoundsCrop.Right)
	if cropCx > width {
		return 2
	}
	return width - cropCx
}

// calcCy returns the crop-adjusted height, or 2 when the total vertical
// crop exceeds height. A crop that leaves less than 2 pixels without
// exceeding height is returned as is.
func calcCy(item *Item, height uint32) uint32 {
	cropCy := uint32(item.Crop.Top + item.Crop.Bottom + item.BoundsCrop.Top + item.BoundsCrop.Bottom)
	if cropCy > height {
		return 2
	}
	return height - cropCy
}

// UpdateItemTransform recomputes item's DrawTransform and BoxTransform
// against the current source dimensions. A no-op unless TransformDirty.
func UpdateItemTransform(item *Item, sourceWidth, sourceHeight uint32) {
	if !item.TransformDirty {
		return
	}

	item.BoundsCrop = Crop{}

	cx := calcCx(item, sourceWidth)
	cy := calcCy(item, sourceHeight)
	item.LastWidth = sourceWidth
	item.LastHeight = sourceHeight

	width := cx
	height := cy

	baseOrigin := Vec2{}
	origin := Vec2{}
	scale := item.Scale
	position := item.Pos

	if item.BoundsType != BoundsNone {
		calculateBoundsData(item, &origin, &scale, &cx, &cy)
	} else {
		cx = saturatingUint32(float32(width) * scale.X)
		cy = saturatingUint32(float32(height) * scale.Y)
	}

	addAlignment(&origin, item.Align, int32(cx), int32(cy))

	item.DrawTransform = composeTransform(position, item.Rotation, origin, scale)
	item.OutputScale = scale

	var boxScale Vec2
	if item.BoundsType != BoundsNone {
		boxScale = item.Bounds
	} else {
		boxScale = Vec2{X: scale.X * float32(width), Y: scale.Y * float32(height)}
	}
	item.BoxScale = boxScale

	addAlignment(&baseOrigin, item.Align, int32(boxScale.X), int32(boxScale.Y))

	item.BoxTransform = composeTransform(position, item.Rotation, baseOrigin, boxScale)

	item.TransformDirty = false
}

// composeTransform builds T(position) * Rz(rotation) * T(-origin) * S(scale),
// frozen into a column-major [16]float32 for the §6 wire contract. Assembly
// uses gonum's mat.Dense for the 4×4 multiplies; the result is narrowed to
// float32 once per recompute, not per frame.
func composeTransform(position Vec2, rotationDeg float32, origin, scale Vec2) [16]float32 {
	t := translationMatrix(position.X, position.Y)
	r := rotationZMatrix(rotationDeg)
	tNegOrigin := translationMatrix(-origin.X, -origin.Y)
	s := scaleMatrix(scale.X, scale.Y)

	result := mat.NewDense(4, 4, nil)
	result.Mul(t, r)
	result.Mul(result, tNegOrigin)
	result.Mul(result, s)

	var out [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = float32(result.At(row, col))
		}
	}
	return out
}

func translationMatrix(x, y float32) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, float64(x),
		0, 1, 0, float64(y),
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

func rotationZMatrix(degrees float32) *mat.Dense {
	rad := float64(degrees) * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return mat.NewDense(4, 4, []float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

func scaleMatrix(sx, sy float32) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		float64(sx), 0, 0, 0,
		0, float64(sy), 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}
