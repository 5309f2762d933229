package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/rigcalib/logging"
)

// Read reads a rig description from the given file. Environment variables in the file are
// expanded before it is parsed.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a rig description from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
) (*Config, error) {
	cfg := Config{
		ConfigFilePath: originalPath,
	}
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}

	for idx := range cfg.Cameras {
		cam := &cfg.Cameras[idx]
		camLogger := logger.WithFields("camera", cam.Name)
		flags := cam.SetFlags()
		if flags.Has(FlagFocalLength | FlagFieldOfView) {
			camLogger.Warnw("camera has both a focal length and a field of view, using the focal length",
				"focal_length_px", cam.FocalLengthPx)
		}
		camLogger.CDebugw(ctx, "camera read", "lens", cam.Lens, "set", flags.String())
	}
	logger.CDebugw(ctx, "rig read", "path", originalPath, "cameras", len(cfg.Cameras))
	return &cfg, nil
}
