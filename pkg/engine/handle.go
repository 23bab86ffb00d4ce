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

// Package engine is the opaque-handle facade over the scene graph, video
// output pipeline, and audio mixer: every boundary crossing is an int32
// token into a registry, plus plain-old-data structs, so a caller never
// holds a Go pointer directly.
package engine

// Handle is an opaque token identifying a scene, video output, or mixer.
// Zero is never issued; negative values are reserved for error returns.
type Handle int32
