package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestExtractFrustumNormalizesPlanes(t *testing.T) {
	f := ExtractFrustum(viewProjection(3, mgl32.DegToRad(90), 1, 0.1, 100))
	for i, p := range f.Planes {
		assert.InDelta(t, 1.0, p.Normal.Len(), 1e-5, "plane %d", i)
	}
}

func TestContainsSphere(t *testing.T) {
	cube := float32(math.Sqrt(3))
	tests := []struct {
		name     string
		distance float32
		fov      float32
		center   mgl32.Vec3
		radius   float32
		want     bool
	}{
		{"default camera holds the cube", 3, 90, mgl32.Vec3{}, cube, true},
		{"camera too close", 1.5, 90, mgl32.Vec3{}, cube, false},
		{"narrow fov", 3, 20, mgl32.Vec3{}, cube, false},
		{"behind the camera", 3, 90, mgl32.Vec3{0, 0, 10}, 0.5, false},
		{"beyond far plane", 3, 90, mgl32.Vec3{0, 0, -200}, 0.5, false},
		{"small sphere off center", 3, 90, mgl32.Vec3{1, 1, 0}, 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ExtractFrustum(viewProjection(tt.distance, mgl32.DegToRad(tt.fov), 1280.0/720.0, 0.1, 100))
			assert.Equal(t, tt.want, f.ContainsSphere(tt.center, tt.radius))
		})
	}
}
