// Package config reads rig descriptions: the cameras of a multi-camera rig with their sizes,
// lens models, intrinsics and poses.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rigcalib/spatialmath"
)

// Layout describes how the cameras of a rig are arranged.
type Layout string

const (
	// LayoutEquatorial rigs have their cameras around a horizontal ring.
	LayoutEquatorial = Layout("equatorial")
	// LayoutGeneral rigs place cameras arbitrarily.
	LayoutGeneral = Layout("general")
)

// Config describes a camera rig.
type Config struct {
	ConfigFilePath string `json:"-"`

	Name          string   `json:"name,omitempty"`
	Layout        Layout   `json:"layout,omitempty"`
	RigDiameterCm float64  `json:"rig_diameter_cm,omitempty"`
	Basis         string   `json:"basis,omitempty"`
	Cameras       []Camera `json:"cameras"`
}

// CoordinateBasis returns the basis poses in the file are expressed in, Y-up by default.
func (c *Config) CoordinateBasis() (spatialmath.Basis, error) {
	if c.Basis == "" {
		return spatialmath.YUp, nil
	}
	return spatialmath.ParseBasis(c.Basis)
}

// Validate checks the rig and every camera, returning all problems found combined.
func (c *Config) Validate(path string) error {
	var errs error
	switch c.Layout {
	case "", LayoutEquatorial, LayoutGeneral:
	default:
		errs = multierr.Append(errs, NewValidationError(joinPath(path, "layout"), errors.Errorf("unknown layout %q", c.Layout)))
	}
	if c.RigDiameterCm < 0 {
		errs = multierr.Append(errs, NewValidationError(joinPath(path, "rig_diameter_cm"), errors.New("must not be negative")))
	}
	if _, err := c.CoordinateBasis(); err != nil {
		errs = multierr.Append(errs, NewValidationError(joinPath(path, "basis"), err))
	}
	if len(c.Cameras) == 0 {
		errs = multierr.Append(errs, NewFieldRequiredError(path, "cameras"))
	}

	seen := make(map[string]int, len(c.Cameras))
	for idx := range c.Cameras {
		camPath := joinPath(path, fmt.Sprintf("cameras.%d", idx))
		errs = multierr.Append(errs, c.Cameras[idx].Validate(camPath))
		name := c.Cameras[idx].Name
		if prev, ok := seen[name]; ok && name != "" {
			errs = multierr.Append(errs, NewValidationError(camPath, errors.Errorf("duplicate camera name %q, also cameras.%d", name, prev)))
		}
		seen[name] = idx
	}
	return errs
}

// Camera returns the camera with the given name.
func (c *Config) Camera(name string) (*Camera, bool) {
	for idx := range c.Cameras {
		if c.Cameras[idx].Name == name {
			return &c.Cameras[idx], true
		}
	}
	return nil, false
}

// Poses returns every camera pose converted to the Y-up basis, keyed by camera name.
func (c *Config) Poses() (map[string]spatialmath.Pose, error) {
	basis, err := c.CoordinateBasis()
	if err != nil {
		return nil, err
	}
	poses := make(map[string]spatialmath.Pose, len(c.Cameras))
	for idx := range c.Cameras {
		pose, err := c.Cameras[idx].Pose(basis)
		if err != nil {
			return nil, errors.Wrapf(err, "camera %q", c.Cameras[idx].Name)
		}
		poses[c.Cameras[idx].Name] = pose
	}
	return poses, nil
}
