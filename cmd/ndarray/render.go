package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/openfluke/ndarray/gpu"
	"github.com/openfluke/ndarray/internal/log"
	"github.com/openfluke/ndarray/literal"
	"github.com/openfluke/ndarray/ndarray"
)

func newRenderCmd() *cobra.Command {
	var (
		opts   arrayOptions
		viaGPU bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print an array and its dimensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, err := parseShape(opts.shape)
			if err != nil {
				return err
			}
			out, src := cmd.OutOrStdout(), opts.source(cmd)
			switch opts.dtype {
			case "int":
				return render[int](out, src, shape)
			case "float64":
				return render[float64](out, src, shape)
			case "string":
				return render[string](out, src, shape)
			case "bool":
				return render[bool](out, src, shape)
			case "float32":
				a, err := literal.Parse[float32](src, shape...)
				if err != nil {
					return err
				}
				if viaGPU {
					a = roundTripGPU(a)
				}
				return printArray(out, a)
			default:
				return fmt.Errorf("unsupported --dtype %q", opts.dtype)
			}
		},
	}
	opts.bind(cmd, "int")
	cmd.Flags().BoolVar(&viaGPU, "gpu", false, "round-trip float32 data through a device buffer")
	return cmd
}

func render[T any](w io.Writer, src string, shape []int) error {
	a, err := literal.Parse[T](src, shape...)
	if err != nil {
		return err
	}
	return printArray(w, a)
}

func printArray[T any](w io.Writer, a *ndarray.Array[T]) error {
	_, err := fmt.Fprintf(w, "%v\nCurrent dimensions of arr: %v\n", a, a.Dims())
	return err
}

// roundTripGPU returns the device copy of a, or a itself when no device is
// usable.
func roundTripGPU(a *ndarray.Array[float32]) *ndarray.Array[float32] {
	logger := log.WithComponent("render")

	buf, err := gpu.Upload(a)
	if errors.Is(err, gpu.ErrNoGPU) {
		logger.Warn().Msg("no GPU backend, printing host copy")
		return a
	}
	if err != nil {
		logger.Error().Err(err).Msg("upload failed")
		return a
	}
	defer buf.Release()

	back, err := buf.Download()
	if err != nil {
		logger.Error().Err(err).Msg("download failed")
		return a
	}
	logger.Debug().Stringer("dims", back.Dims()).Msg("read back from device")
	return back
}
