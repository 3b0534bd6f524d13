package shader

import (
	"strconv"
	"strings"
)

// wgslPrimitiveLayoutMap holds size and alignment of host-shareable WGSL types.
// See https://www.w3.org/TR/WGSL/#alignment-and-size
var wgslPrimitiveLayoutMap = map[string]wgslTypeLayout{
	"f32": {4, 4},
	"i32": {4, 4},
	"u32": {4, 4},

	"vec2f":     {8, 8},
	"vec2<f32>": {8, 8},
	"vec3f":     {12, 16},
	"vec3<f32>": {12, 16},
	"vec4f":     {16, 16},
	"vec4<f32>": {16, 16},

	"vec2u":     {8, 8},
	"vec2<u32>": {8, 8},
	"vec4u":     {16, 16},
	"vec4<u32>": {16, 16},

	"mat3x3f":     {48, 16},
	"mat3x3<f32>": {48, 16},
	"mat4x4f":     {64, 16},
	"mat4x4<f32>": {64, 16},
}

// roundUpAlign rounds value up to a multiple of alignment, which must be a power of two.
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// resolveTypeLayout resolves primitives, known structs and fixed-size arrays.
// Runtime-sized arrays resolve to a single element stride.
func resolveTypeLayout(typeName string, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if layout, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return layout, true
	}
	if layout, ok := knownTypes[typeName]; ok {
		return layout, true
	}

	if !strings.HasPrefix(typeName, "array<") || !strings.HasSuffix(typeName, ">") {
		return wgslTypeLayout{}, false
	}
	parts := strings.SplitN(typeName[6:len(typeName)-1], ",", 2)
	elem, ok := resolveTypeLayout(strings.TrimSpace(parts[0]), knownTypes)
	if !ok {
		return wgslTypeLayout{}, false
	}
	stride := roundUpAlign(elem.align, elem.size)
	if len(parts) == 1 {
		return wgslTypeLayout{stride, elem.align}, true
	}
	count, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	return wgslTypeLayout{count * stride, elem.align}, true
}

// computeStructLayout places each member at its next aligned offset and rounds the total
// up to the widest member alignment.
func computeStructLayout(ps parsedStruct, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	offset := uint64(0)
	maxAlign := uint64(1)

	for _, field := range ps.fields {
		if field.isBuiltin {
			continue
		}
		layout, ok := resolveTypeLayout(field.typeName, knownTypes)
		if !ok {
			return wgslTypeLayout{}, false
		}
		offset = roundUpAlign(layout.align, offset) + layout.size
		if layout.align > maxAlign {
			maxAlign = layout.align
		}
	}

	return wgslTypeLayout{roundUpAlign(maxAlign, offset), maxAlign}, true
}

// computeStructSizes resolves struct layouts until no further progress is made, so structs
// may nest other structs declared later in the source.
func computeStructSizes(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	remaining := append([]parsedStruct(nil), structs...)

	for len(remaining) > 0 {
		next := remaining[:0]
		for _, ps := range remaining {
			if layout, ok := computeStructLayout(ps, resolved); ok {
				resolved[ps.name] = layout
			} else {
				next = append(next, ps)
			}
		}
		if len(next) == len(remaining) {
			break
		}
		remaining = next
	}

	return resolved
}
