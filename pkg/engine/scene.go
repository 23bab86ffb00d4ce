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

package engine

import (
	"sync"

	"compositor/pkg/scene"
)

// ItemPOD is the minimum item creation surface: source_id, position,
// scale, rotation, and the two boolean flags. Every other Item field
// (crop, bounds, blend mode, ...) is left at its construction default;
// this facade has no call that changes those fields after creation.
type ItemPOD struct {
	SourceID uint64
	PosX     float32
	PosY     float32
	ScaleX   float32
	ScaleY   float32
	Rotation float32
	Visible  bool
	Locked   bool
}

// RenderCallback receives one render command per visible item, in scene
// order.
type RenderCallback func(sourceID uint64, transform [16]float32, blendMode uint32, userCtx interface{})

var (
	scenesMu sync.Mutex
	scenes   = map[Handle]*scene.Scene{}
	nextScene Handle
)

// CreateScene allocates a new empty scene of the given output dimensions
// and returns its handle.
func CreateScene(width, height uint32) Handle {
	scenesMu.Lock()
	defer scenesMu.Unlock()
	nextScene++
	h := nextScene
	scenes[h] = scene.NewScene(width, height)
	return h
}

// DestroySceneHandle releases a scene handle. Unknown handles are a no-op.
func DestroySceneHandle(h Handle) {
	scenesMu.Lock()
	defer scenesMu.Unlock()
	delete(scenes, h)
}

func lookupScene(h Handle) (*scene.Scene, bool) {
	scenesMu.Lock()
	defer scenesMu.Unlock()
	s, ok := scenes[h]
	return s, ok
}

// AddItem adds an item built from pod to the scene and returns its id
// (always ≥ 1 on success), or -1 if h is not a valid scene handle.
func AddItem(h Handle, pod ItemPOD) int64 {
	s, ok := lookupScene(h)
	if !ok {
		return -1
	}

	item := scene.NewItem(0, pod.SourceID)
	item.Pos = scene.Vec2{X: pod.PosX, Y: pod.PosY}
	item.Scale = scene.Vec2{X: pod.ScaleX, Y: pod.ScaleY}
	item.Rotation = pod.Rotation
	item.Visible = pod.Visible
	item.Locked = pod.Locked

	return s.AddItem(item)
}

// RemoveItem removes an item by id, returning 1 if it was found and
// removed, 0 otherwise (including an invalid scene handle).
func RemoveItem(h Handle, id int64) int {
	s, ok := lookupScene(h)
	if !ok {
		return 0
	}
	if s.RemoveItem(id) {
		return 1
	}
	return 0
}

// ItemCount returns the number of items in the scene, or 0 for an
// invalid handle.
func ItemCount(h Handle) int {
	s, ok := lookupScene(h)
	if !ok {
		return 0
	}
	return s.ItemCount()
}

// UpdateTransforms recomputes transforms for items whose source dimensions
// changed or whose transform is already marked dirty. A no-op for an
// invalid scene handle.
func UpdateTransforms(h Handle, dims []scene.SourceDims) {
	s, ok := lookupScene(h)
	if !ok {
		return
	}
	s.UpdateTransforms(dims)
}

// Render invokes cb once per visible item, in scene order, passing the
// item's draw transform and blend mode. A no-op for an invalid scene
// handle.
func Render(h Handle, cb RenderCallback, userCtx interface{}) {
	s, ok := lookupScene(h)
	if !ok {
		return
	}
	for _, cmd := range scene.RenderScene(s) {
		cb(cmd.SourceID, cmd.Transform, uint32(cmd.BlendMode), userCtx)
	}
}
