package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"
)

func compareFunc(c gputypes.CompareFunction) (uint32, error) {
	switch c {
	case gputypes.CompareFunctionNever:
		return gl.NEVER, nil
	case gputypes.CompareFunctionLess:
		return gl.LESS, nil
	case gputypes.CompareFunctionEqual:
		return gl.EQUAL, nil
	case gputypes.CompareFunctionLessEqual:
		return gl.LEQUAL, nil
	case gputypes.CompareFunctionGreater:
		return gl.GREATER, nil
	case gputypes.CompareFunctionNotEqual:
		return gl.NOTEQUAL, nil
	case gputypes.CompareFunctionGreaterEqual:
		return gl.GEQUAL, nil
	case gputypes.CompareFunctionAlways, gputypes.CompareFunctionUndefined:
		return gl.ALWAYS, nil
	}
	return 0, fmt.Errorf("%w: compare function %v", ErrUnsupported, c)
}

// cullFace returns the face to cull, or 0 when culling is off.
func cullFace(m gputypes.CullMode) (uint32, error) {
	switch m {
	case gputypes.CullModeNone:
		return 0, nil
	case gputypes.CullModeFront:
		return gl.FRONT, nil
	case gputypes.CullModeBack:
		return gl.BACK, nil
	}
	return 0, fmt.Errorf("%w: cull mode %v", ErrUnsupported, m)
}

func frontFace(f gputypes.FrontFace) uint32 {
	if f == gputypes.FrontFaceCW {
		return gl.CW
	}
	return gl.CCW
}

func topology(t gputypes.PrimitiveTopology) (uint32, error) {
	switch t {
	case gputypes.PrimitiveTopologyTriangleList:
		return gl.TRIANGLES, nil
	case gputypes.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP, nil
	case gputypes.PrimitiveTopologyLineList:
		return gl.LINES, nil
	case gputypes.PrimitiveTopologyLineStrip:
		return gl.LINE_STRIP, nil
	case gputypes.PrimitiveTopologyPointList:
		return gl.POINTS, nil
	}
	return 0, fmt.Errorf("%w: topology %v", ErrUnsupported, t)
}

// attrib is one glVertexAttribPointer call.
type attrib struct {
	location   uint32
	components int32
	xtype      uint32
	normalized bool
	offset     uintptr
}

func attribFormat(f gputypes.VertexFormat) (components int32, xtype uint32, normalized bool, err error) {
	switch f {
	case gputypes.VertexFormatFloat32, gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatFloat32x3, gputypes.VertexFormatFloat32x4:
		return int32(f.Size() / 4), gl.FLOAT, false, nil
	case gputypes.VertexFormatUnorm8x2, gputypes.VertexFormatUnorm8x4:
		return int32(f.Size()), gl.UNSIGNED_BYTE, true, nil
	}
	return 0, 0, false, fmt.Errorf("%w: vertex format %v", ErrUnsupported, f)
}

// attribs flattens a buffer layout into attribute pointer calls.
func attribs(l gputypes.VertexBufferLayout) ([]attrib, error) {
	out := make([]attrib, 0, len(l.Attributes))
	for _, a := range l.Attributes {
		n, xt, norm, err := attribFormat(a.Format)
		if err != nil {
			return nil, err
		}
		if a.Offset+a.Format.Size() > l.ArrayStride {
			return nil, fmt.Errorf("%w: attribute %d ends past stride %d", ErrUnsupported, a.ShaderLocation, l.ArrayStride)
		}
		out = append(out, attrib{
			location:   a.ShaderLocation,
			components: n,
			xtype:      xt,
			normalized: norm,
			offset:     uintptr(a.Offset),
		})
	}
	return out, nil
}
