package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/openfluke/ndarray/literal"
	"github.com/openfluke/ndarray/ndarray"
	"github.com/openfluke/ndarray/safetensors"
)

func newEncodeCmd() *cobra.Command {
	var (
		opts arrayOptions
		name string
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the safetensors encoding of an array as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, err := parseShape(opts.shape)
			if err != nil {
				return err
			}
			out, src := cmd.OutOrStdout(), opts.source(cmd)
			switch opts.dtype {
			case "int32":
				return encode[int32](out, name, src, shape)
			case "int64":
				return encode[int64](out, name, src, shape)
			case "uint8":
				return encode[uint8](out, name, src, shape)
			case "float32":
				return encode[float32](out, name, src, shape)
			case "float64":
				return encode[float64](out, name, src, shape)
			default:
				return fmt.Errorf("unsupported --dtype %q", opts.dtype)
			}
		},
	}
	opts.bind(cmd, "int32")
	cmd.Flags().StringVar(&name, "name", "arr", "tensor name in the header")
	return cmd
}

func encode[T safetensors.Numeric](w io.Writer, name, src string, shape []int) error {
	a, err := literal.Parse[T](src, shape...)
	if err != nil {
		return err
	}
	data, err := safetensors.Encode(map[string]*ndarray.Array[T]{name: a})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hex.EncodeToString(data))
	return err
}
