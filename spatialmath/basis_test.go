package spatialmath

import (
	"errors"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

var bases = []Basis{YUp, YDown, ZUp}

func TestVectorConversions(t *testing.T) {
	up := r3.Vector{Y: 1}
	test.That(t, ConvertVectorYupToYdown(up), test.ShouldResemble, r3.Vector{Y: -1})
	test.That(t, ConvertVectorYupToZup(up), test.ShouldResemble, r3.Vector{Z: 1})
	test.That(t, ConvertVectorYdownToZup(r3.Vector{Y: -1}), test.ShouldResemble, r3.Vector{Z: 1})

	v := r3.Vector{X: 1, Y: 2, Z: 3}
	test.That(t, ConvertVectorYdownToYup(ConvertVectorYupToYdown(v)), test.ShouldResemble, v)
	test.That(t, ConvertVectorZupToYup(ConvertVectorYupToZup(v)), test.ShouldResemble, v)
	test.That(t, ConvertVectorZupToYdown(ConvertVectorYdownToZup(v)), test.ShouldResemble, v)
	test.That(t, ConvertVectorYdownToZup(ConvertVectorYupToYdown(v)), test.ShouldResemble, ConvertVectorYupToZup(v))
}

func TestTransformConversions(t *testing.T) {
	m := CameraToWorldTransform(0.3, -0.7, 1.9)
	v := r3.Vector{X: 0.5, Y: -2, Z: 4}

	for _, from := range bases {
		for _, to := range bases {
			cm, err := ConvertTransform(m, from, to)
			test.That(t, err, test.ShouldBeNil)
			cv, err := ConvertVector(v, from, to)
			test.That(t, err, test.ShouldBeNil)
			want, err := ConvertVector(m.TransformVector(v), from, to)
			test.That(t, err, test.ShouldBeNil)

			got := cm.TransformVector(cv)
			test.That(t, got.Sub(want).Norm(), test.ShouldBeLessThan, 1e-12)
			test.That(t, cm.IsRotation(1e-12), test.ShouldBeTrue)

			back, err := ConvertTransform(cm, to, from)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, back, test.ShouldResemble, m)
		}
	}
}

func TestBasisNames(t *testing.T) {
	for _, b := range bases {
		parsed, err := ParseBasis(b.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, b)
	}
	_, err := ParseBasis("xup")
	test.That(t, errors.Is(err, ErrUnknownBasis), test.ShouldBeTrue)

	_, err = ConvertVector(r3.Vector{}, YUp, Basis(7))
	test.That(t, errors.Is(err, ErrUnknownBasis), test.ShouldBeTrue)
	_, err = ConvertTransform(NewIdentityRotation(), Basis(-1), YUp)
	test.That(t, errors.Is(err, ErrUnknownBasis), test.ShouldBeTrue)
}

func TestPose(t *testing.T) {
	p := NewPoseFromAngles(EulerAngles{Yaw: 0.5, Pitch: 0.1}, r3.Vector{X: 10, Z: -3})
	v := r3.Vector{X: 1, Y: 1, Z: 1}
	back := p.Invert().Transform(p.Transform(v))
	test.That(t, back.Sub(v).Norm(), test.ShouldBeLessThan, 1e-12)

	zup, err := p.ConvertBasis(YUp, ZUp)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, zup.Translation, test.ShouldResemble, r3.Vector{X: 10, Y: 3, Z: 0})
	want := ConvertVectorYupToZup(p.Transform(v))
	test.That(t, zup.Transform(ConvertVectorYupToZup(v)).Sub(want).Norm(), test.ShouldBeLessThan, 1e-12)

	yup, err := zup.ConvertBasis(ZUp, YUp)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, PoseAlmostEqual(yup, p, 1e-15), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(yup, p.Invert(), 1e-3), test.ShouldBeFalse)
}
