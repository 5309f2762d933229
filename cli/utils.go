package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rigcalib/transform"
)

// printf prints a message with a newline to the given writer.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func newTable(header ...interface{}) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row(header))
	return t
}

// distorterFromFlags builds the lens model named by the lens and coefficient flags.
func distorterFromFlags(c *cli.Context) (transform.Distorter, error) {
	lens := transform.DistortionType(c.String(flagLens))
	d, err := transform.NewDistorter(lens, c.Float64Slice(flagCoefficients))
	if err != nil {
		return nil, errors.Wrapf(err, "%s lens", lens)
	}
	return d, nil
}
