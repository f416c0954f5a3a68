// Command ndarray builds a fixed-shape array from a nested-list literal and
// prints it.
//
//	ndarray render --shape 2,5 --literal '[[1, 2, 3], [1, 2, 3, 4, 5]]'
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openfluke/ndarray/internal/log"
)

// arrayOptions are the flags shared by every subcommand that builds an array.
type arrayOptions struct {
	shape   string
	literal string
	fill    string
	dtype   string
}

func (o *arrayOptions) bind(cmd *cobra.Command, defaultDType string) {
	f := cmd.Flags()
	f.StringVar(&o.shape, "shape", "2,5", "comma-separated extents, outermost first")
	f.StringVar(&o.literal, "literal", "[[1, 2, 3], [1, 2, 3, 4, 5]]", "nested list literal (JSON or YAML)")
	f.StringVar(&o.fill, "fill", "", "broadcast this scalar instead of reading --literal")
	f.StringVar(&o.dtype, "dtype", defaultDType, "element type")
}

// source returns the text handed to the literal parser. An explicit --fill
// wins over --literal even when its value is empty.
func (o *arrayOptions) source(cmd *cobra.Command) string {
	if cmd.Flags().Changed("fill") {
		return o.fill
	}
	return o.literal
}

func parseShape(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	shape := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid extent %q in --shape", p)
		}
		shape = append(shape, d)
	}
	return shape, nil
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "ndarray",
		Short:         "Build and print fixed-shape multidimensional arrays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Configure(log.Config{Level: logLevel, Output: cmd.ErrOrStderr()})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default $NDARRAY_LOG_LEVEL or warn)")

	root.AddCommand(newRenderCmd(), newEncodeCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
