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

// Command is one render instruction extracted from a visible scene item.
type Command struct {
	SourceID       uint64
	Transform      [16]float32
	BlendMode      BlendMode
	UseItemTexture bool
}

// FromItem builds the render Command for a single item.
func FromItem(it *Item) Command {
	return Command{
		SourceID:       it.SourceID,
		Transform:      it.DrawTransform,
		BlendMode:      it.BlendMode,
		UseItemTexture: it.UsesItemTexture(),
	}
}

// RenderScene extracts one Command per visible item, in scene order.
func RenderScene(s *Scene) []Command {
	var commands []Command
	s.RenderItems(func(it *Item) {
		commands = append(commands, FromItem(it))
	})
	return commands
}

// Predicate filters items during RenderSceneFiltered; it is evaluated
// inside the scene's read hold.
type Predicate func(*Item) bool

// RenderSceneFiltered is RenderScene with an additional caller-supplied
// filter evaluated alongside visibility.
func RenderSceneFiltered(s *Scene, keep Predicate) []Command {
	var commands []Command
	s.RenderItems(func(it *Item) {
		if keep(it) {
			commands = append(commands, FromItem(it))
		}
	})
	return commands
}
