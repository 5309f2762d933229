package spatialmath

import (
	"math"

	"go.viam.com/rigcalib/utils"
)

// EulerAngles is a camera orientation as yaw, pitch and roll in radians.
type EulerAngles struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// NewEulerAnglesDegrees builds EulerAngles from angles given in degrees.
func NewEulerAnglesDegrees(yaw, pitch, roll float64) EulerAngles {
	return EulerAngles{Yaw: utils.DegToRad(yaw), Pitch: utils.DegToRad(pitch), Roll: utils.DegToRad(roll)}
}

// Degrees returns yaw, pitch and roll in degrees.
func (ea EulerAngles) Degrees() (yaw, pitch, roll float64) {
	return utils.RadToDeg(ea.Yaw), utils.RadToDeg(ea.Pitch), utils.RadToDeg(ea.Roll)
}

// CameraToWorld returns the camera-to-world transform for these angles.
func (ea EulerAngles) CameraToWorld() RotationMatrix {
	return CameraToWorldTransform(ea.Yaw, ea.Pitch, ea.Roll)
}

// YawTransform rotates around the Y axis, from X toward Z.
func YawTransform(yaw float64) RotationMatrix {
	s, c := math.Sincos(yaw)
	return RotationMatrix{c, 0, s, 0, 1, 0, -s, 0, c}
}

// PitchTransform rotates around the X axis, from Y toward Z.
func PitchTransform(pitch float64) RotationMatrix {
	s, c := math.Sincos(pitch)
	return RotationMatrix{1, 0, 0, 0, c, s, 0, -s, c}
}

// RollTransform rotates around the Z axis, from Y toward X.
func RollTransform(roll float64) RotationMatrix {
	s, c := math.Sincos(roll)
	return RotationMatrix{c, -s, 0, s, c, 0, 0, 0, 1}
}

// CameraToWorldTransform returns the transform taking camera coordinates into the world:
// roll, then pitch, then yaw.
func CameraToWorldTransform(yaw, pitch, roll float64) RotationMatrix {
	return Concatenate(Concatenate(RollTransform(roll), PitchTransform(pitch)), YawTransform(yaw))
}

// WorldToCameraTransform returns the inverse of CameraToWorldTransform.
func WorldToCameraTransform(yaw, pitch, roll float64) RotationMatrix {
	return Concatenate(Concatenate(YawTransform(-yaw), PitchTransform(-pitch)), RollTransform(-roll))
}

// CameraToWorldAngles decomposes a camera-to-world transform into yaw, pitch and roll.
// When pitch is +-90 degrees yaw and roll are indistinguishable; roll is then reported as 0.
func CameraToWorldAngles(m RotationMatrix) EulerAngles {
	r := math.Hypot(m[1], m[4])
	if r != 0 {
		return EulerAngles{
			Yaw:   math.Atan2(-m[6], m[8]),
			Pitch: math.Atan2(-m[7], r),
			Roll:  math.Atan2(-m[1], m[4]),
		}
	}
	return EulerAngles{
		Yaw:   math.Atan2(m[2], m[0]),
		Pitch: math.Atan2(-m[7], 0),
	}
}

// WorldToCameraAngles decomposes a world-to-camera transform into yaw, pitch and roll.
// In the singular case roll is reported as 0, as in CameraToWorldAngles.
func WorldToCameraAngles(m RotationMatrix) EulerAngles {
	r := math.Hypot(m[3], m[4])
	if r != 0 {
		return EulerAngles{
			Yaw:   math.Atan2(-m[2], m[8]),
			Pitch: math.Atan2(-m[5], r),
			Roll:  math.Atan2(-m[3], m[4]),
		}
	}
	return EulerAngles{
		Yaw:   math.Atan2(m[6], m[0]),
		Pitch: math.Atan2(-m[5], 0),
	}
}
