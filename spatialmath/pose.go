package spatialmath

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rigcalib/utils"
)

// Pose places a camera in a rig: Rotation is its camera-to-world transform and Translation
// the position of its optical center, in the units of the rig description.
type Pose struct {
	Rotation    RotationMatrix
	Translation r3.Vector
}

// NewPoseFromAngles builds a Y-up pose from yaw, pitch and roll.
func NewPoseFromAngles(angles EulerAngles, translation r3.Vector) Pose {
	return Pose{Rotation: angles.CameraToWorld(), Translation: translation}
}

// Transform maps a point from camera coordinates into the world.
func (p Pose) Transform(v r3.Vector) r3.Vector {
	return p.Rotation.TransformVector(v).Add(p.Translation)
}

// Invert returns the world-to-camera pose.
func (p Pose) Invert() Pose {
	return Pose{Rotation: p.Rotation.Transpose(), Translation: p.Rotation.InverseTransformVector(p.Translation).Mul(-1)}
}

// ConvertBasis expresses p in another basis.
func (p Pose) ConvertBasis(from, to Basis) (Pose, error) {
	rot, err := ConvertTransform(p.Rotation, from, to)
	if err != nil {
		return Pose{}, err
	}
	trans, err := ConvertVector(p.Translation, from, to)
	if err != nil {
		return Pose{}, err
	}
	return Pose{Rotation: rot, Translation: trans}, nil
}

// PoseAlmostEqual reports whether two poses agree within eps in every matrix element and
// translation component.
func PoseAlmostEqual(a, b Pose, eps float64) bool {
	for i := range a.Rotation {
		if !utils.Float64AlmostEqual(a.Rotation[i], b.Rotation[i], eps) {
			return false
		}
	}
	return a.Translation.Sub(b.Translation).Norm() <= eps
}
