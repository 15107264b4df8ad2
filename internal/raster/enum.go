package raster

import (
	"fmt"
	"strings"
)

// Enum values match the WebGL constants of the same name.
type Enum uint32

const (
	Points        Enum = 0x0000
	Lines         Enum = 0x0001
	LineLoop      Enum = 0x0002
	LineStrip     Enum = 0x0003
	Triangles     Enum = 0x0004
	TriangleStrip Enum = 0x0005
	TriangleFan   Enum = 0x0006

	DepthBufferBit Enum = 0x0100
	ColorBufferBit Enum = 0x4000

	Never    Enum = 0x0200
	Less     Enum = 0x0201
	Equal    Enum = 0x0202
	LEqual   Enum = 0x0203
	Greater  Enum = 0x0204
	NotEqual Enum = 0x0205
	GEqual   Enum = 0x0206
	Always   Enum = 0x0207

	DepthTest Enum = 0x0B71

	UnsignedShort Enum = 0x1403
	Float         Enum = 0x1406

	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4

	FragmentShaderType Enum = 0x8B30
	VertexShaderType   Enum = 0x8B31
)

var modeNames = map[Enum]string{
	Points:        "POINTS",
	Lines:         "LINES",
	LineLoop:      "LINE_LOOP",
	LineStrip:     "LINE_STRIP",
	Triangles:     "TRIANGLES",
	TriangleStrip: "TRIANGLE_STRIP",
	TriangleFan:   "TRIANGLE_FAN",
}

func (e Enum) String() string {
	if s, ok := modeNames[e]; ok {
		return s
	}
	return fmt.Sprintf("0x%04X", uint32(e))
}

// ParseMode maps a primitive name such as "LINE_STRIP" to its enum.
// Matching ignores case.
func ParseMode(name string) (Enum, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for mode, s := range modeNames {
		if s == name {
			return mode, true
		}
	}
	return 0, false
}

func isMode(e Enum) bool {
	_, ok := modeNames[e]
	return ok
}

func isDepthFunc(e Enum) bool {
	return e >= Never && e <= Always
}
