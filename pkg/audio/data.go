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

package audio

// Format enumerates the sample encodings a source may present.
type Format uint8

// Sample formats, matching the wire enum in spec.md §6.
const (
	FormatUnknown Format = iota
	FormatU8Bit
	FormatI16Bit
	FormatI32Bit
	FormatFloat32Bit
	FormatU8BitPlanar
	FormatI16BitPlanar
	FormatI32BitPlanar
	FormatFloat32Planar
)

// IsPlanar reports whether samples of this format are stored one channel
// per buffer rather than interleaved.
func (f Format) IsPlanar() bool {
	return f >= FormatU8BitPlanar
}

// SpeakerLayout enumerates supported channel layouts.
type SpeakerLayout uint8

// Speaker layouts, matching the wire enum in spec.md §6. SevenOne is
// pinned to 8, not 7 — the wire value equals the layout's channel count,
// and seven-one has eight channels (five-one's 5 positional + LFE, plus
// the extra rear pair).
const (
	LayoutUnknown SpeakerLayout = iota
	LayoutMono
	LayoutStereo
	LayoutTwoOne
	LayoutQuad
	LayoutFourOne
	LayoutFiveOne
	LayoutSevenOne SpeakerLayout = 8
)

// ChannelCount is the number of channels implied by the layout.
func (l SpeakerLayout) ChannelCount() int {
	switch l {
	case LayoutMono:
		return 1
	case LayoutStereo:
		return 2
	case LayoutTwoOne:
		return 3
	case LayoutQuad:
		return 4
	case LayoutFourOne:
		return 5
	case LayoutFiveOne:
		return 6
	case LayoutSevenOne:
		return 8
	default:
		return 0
	}
}

// Config describes the fixed audio parameters a Mixer's buses are built
// with. Sample rate and frame count are uniform across every bus.
type Config struct {
	SampleRate uint32
	Channels   int
	Frames     int
	Format     Format
	Layout     SpeakerLayout
}

// DefaultConfig matches the original's default: 48kHz stereo, 1024-frame
// buffers, planar float32.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Channels:   2,
		Frames:     1024,
		Format:     FormatFloat32Planar,
		Layout:     LayoutStereo,
	}
}

// Data is one buffer's worth of planar float32 audio: one []float32 per
// channel, each Frames samples long.
type Data struct {
	Channels  [][]float32
	Frames    int
	Timestamp uint64
}

// NewData allocates a zeroed planar buffer for the given channel/frame
// count.
func NewData(channels, frames int) Data {
	ch := make([][]float32, channels)
	for i := range ch {
		ch[i] = make([]float32, frames)
	}
	return Data{Channels: ch, Frames: frames}
}

// Clear zeros every channel in place.
func (d *Data) Clear() {
	for _, ch := range d.Channels {
		for i := range ch {
			ch[i] = 0
		}
	}
}

// Clone returns an independent deep copy, matching the semantics encoder
// connections rely on (each dispatched buffer must not alias the bus's own
// accumulator once sent).
func (d Data) Clone() Data {
	ch := make([][]float32, len(d.Channels))
	for i, c := range d.Channels {
		cp := make([]float32, len(c))
		copy(cp, c)
		ch[i] = cp
	}
	return Data{Channels: ch, Frames: d.Frames, Timestamp: d.Timestamp}
}
