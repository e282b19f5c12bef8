package nbt

import (
	"fmt"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Spatial values follow the layout the native runtime uses on entities:
// positions and motion are lists of three doubles, rotations are lists of
// two floats (yaw, pitch).

// Vec3List encodes a vector as a list of three doubles.
func Vec3List(v mgl64.Vec3) *List {
	return NewList(v[0], v[1], v[2])
}

// Vec3FromList decodes a vector from a list of three doubles. Any other
// shape reports an error wrapping ErrCorruptData.
func Vec3FromList(l *List) (mgl64.Vec3, error) {
	if l == nil || l.Len() != 3 || l.ElementType() != TagDouble {
		return mgl64.Vec3{}, fmt.Errorf("%w: vector must be a list of three %v", ErrCorruptData, TagDouble)
	}
	return mgl64.Vec3{
		l.At(0).(float64),
		l.At(1).(float64),
		l.At(2).(float64),
	}, nil
}

// RotationList encodes a rotation as a list of two floats, yaw first.
func RotationList(r cube.Rotation) *List {
	return NewList(float32(r.Yaw()), float32(r.Pitch()))
}

// RotationFromList decodes a rotation from a list of two floats. Any other
// shape reports an error wrapping ErrCorruptData.
func RotationFromList(l *List) (cube.Rotation, error) {
	if l == nil || l.Len() != 2 || l.ElementType() != TagFloat {
		return cube.Rotation{}, fmt.Errorf("%w: rotation must be a list of two %v", ErrCorruptData, TagFloat)
	}
	return cube.Rotation{
		float64(l.At(0).(float32)),
		float64(l.At(1).(float32)),
	}, nil
}

// SetVec3 stores a vector under key as a list of three doubles.
func (c *Compound) SetVec3(key string, v mgl64.Vec3) {
	c.Set(key, Vec3List(v))
}

// Vec3 returns the vector stored under key. Absence reports false; a
// present entry that is not a three-double list reports an error wrapping
// ErrCorruptData.
func (c *Compound) Vec3(key string) (mgl64.Vec3, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return mgl64.Vec3{}, false, nil
	}
	l, ok := v.(*List)
	if !ok {
		return mgl64.Vec3{}, true, fmt.Errorf("%w: key %q does not hold a list", ErrCorruptData, key)
	}
	vec, err := Vec3FromList(l)
	return vec, true, err
}
