// Package cli contains the rigcalib command line tool.
package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rigcalib/logging"
)

const (
	flagDebug         = "debug"
	flagLogLevel      = "log-level"
	flagWidth         = "width"
	flagHeight        = "height"
	flagHFOV          = "hfov"
	flagVFOV          = "vfov"
	flagLens          = "lens"
	flagRadius        = "radius"
	flagCoefficients  = "coeffs"
	flagYaw           = "yaw"
	flagPitch         = "pitch"
	flagRoll          = "roll"
	flagBasis         = "basis"
	flagWorldToCamera = "world-to-camera"
	flagPoint         = "point"
	flagMaxRadius     = "max-radius"
	flagSlope         = "slope"
	flagRig           = "rig"
	flagReference     = "reference"
	flagCandidate     = "candidate"
	flagJSON          = "json"
	flagCamera        = "camera"
	flagOut           = "out"
	defaultLoggerName = "rigcalib"
)

func lensFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagLens,
		Value: "brown",
		Usage: "lens model: fisheye or brown",
	}
}

func coefficientsFlag() cli.Flag {
	return &cli.Float64SliceFlag{
		Name:  flagCoefficients,
		Usage: "comma separated distortion coefficients in rig file order",
	}
}

// NewApp returns the rigcalib application writing to the given outputs.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "rigcalib",
		Usage:           "inspect and compare camera rig calibrations",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "info",
				Usage: "minimum level logged: debug, info, warn or error",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			{
				Name:  "focal",
				Usage: "estimate a focal length in pixels from a field of view",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagWidth, Required: true, Usage: "image width in pixels"},
					&cli.IntFlag{Name: flagHeight, Required: true, Usage: "image height in pixels"},
					&cli.Float64Flag{Name: flagHFOV, Usage: "horizontal field of view in degrees"},
					&cli.Float64Flag{Name: flagVFOV, Usage: "vertical field of view in degrees"},
					lensFlag(),
					&cli.Float64Flag{Name: flagRadius, Usage: "radius of the valid fisheye image circle in pixels"},
				},
				Action: FocalAction,
			},
			{
				Name:  "pose",
				Usage: "print the rotation matrix of a camera from yaw, pitch and roll in degrees",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: flagYaw},
					&cli.Float64Flag{Name: flagPitch},
					&cli.Float64Flag{Name: flagRoll},
					&cli.StringFlag{Name: flagBasis, Value: "yup", Usage: "basis to print the matrix in: yup, ydown or zup"},
					&cli.BoolFlag{Name: flagWorldToCamera, Usage: "print the world to camera transform"},
					&cli.Float64SliceFlag{Name: flagPoint, Usage: "also rotate the point `X,Y,Z`, given in the same basis"},
				},
				Action: PoseAction,
			},
			{
				Name:      "angles",
				Usage:     "decompose a row-major rotation matrix into yaw, pitch and roll in degrees",
				ArgsUsage: "<m0> ... <m8>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagWorldToCamera, Usage: "the matrix is a world to camera transform"},
				},
				Action: AnglesAction,
			},
			{
				Name:      "invert",
				Usage:     "undistort normalized radii",
				ArgsUsage: "<radius>...",
				Flags: []cli.Flag{
					lensFlag(),
					coefficientsFlag(),
					&cli.Float64Flag{Name: flagMaxRadius, Usage: "upper bound of the undistorted radius, found from the lens when unset"},
				},
				Action: InvertAction,
			},
			{
				Name:  "flat",
				Usage: "find where a lens model stops increasing",
				Flags: []cli.Flag{
					lensFlag(),
					coefficientsFlag(),
					&cli.Float64Flag{Name: flagSlope, Usage: "slope to search for"},
				},
				Action: FlatAction,
			},
			{
				Name:  "check",
				Usage: "check that every lens of a rig can be inverted across its image",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagRig, Aliases: []string{"c"}, Required: true, Usage: "rig description `FILE`"},
				},
				Action: CheckAction,
			},
			{
				Name:  "compare",
				Usage: "compare a candidate rig calibration against a reference",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagReference, Required: true, Usage: "reference rig `FILE`"},
					&cli.PathFlag{Name: flagCandidate, Required: true, Usage: "candidate rig `FILE`"},
					&cli.BoolFlag{Name: flagJSON, Usage: "print the report as json"},
				},
				Action: CompareAction,
			},
			{
				Name:  "plot",
				Usage: "plot the reference and candidate lens curves of a camera",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagReference, Required: true, Usage: "reference rig `FILE`"},
					&cli.PathFlag{Name: flagCandidate, Required: true, Usage: "candidate rig `FILE`"},
					&cli.StringFlag{Name: flagCamera, Required: true, Usage: "camera to plot"},
					&cli.PathFlag{Name: flagOut, Value: "lens.png", Usage: "output image `FILE`; png, svg and pdf are supported"},
				},
				Action: PlotAction,
			},
		},
	}
}

// Run runs the rigcalib application and returns the process exit code. A failure is reported
// once, on errOut.
func Run(args []string, out, errOut io.Writer) int {
	app := NewApp(out, errOut)
	// the exit code is left to the caller
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(args)
	if err == nil {
		return 0
	}
	code := 1
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	if msg := err.Error(); msg != "" {
		printf(errOut, "Error: %s", msg)
	}
	return code
}

// setupLogging sends logs to the error writer so command output stays parseable.
func setupLogging(c *cli.Context) error {
	level, err := logging.LevelFromString(c.String(flagLogLevel))
	if err != nil {
		return err
	}
	logger := logging.NewLogger(defaultLoggerName, c.App.ErrWriter)
	if c.Bool(flagDebug) {
		level = logging.DEBUG
		c.Context = logging.EnableDebugMode(c.Context, defaultLoggerName)
	}
	logger.SetLevel(level)
	logging.ReplaceGlobal(logger)
	return nil
}
