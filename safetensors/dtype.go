package safetensors

import (
	"fmt"
	"math"
	"reflect"
)

// Numeric is the set of element types that have a safetensors dtype.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// DType returns the safetensors dtype tag for T.
func DType[T Numeric]() (string, error) {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float64:
		return "F64", nil
	case reflect.Float32:
		return "F32", nil
	case reflect.Int64:
		return "I64", nil
	case reflect.Int32:
		return "I32", nil
	case reflect.Int16:
		return "I16", nil
	case reflect.Int8:
		return "I8", nil
	case reflect.Uint64:
		return "U64", nil
	case reflect.Uint32:
		return "U32", nil
	case reflect.Uint16:
		return "U16", nil
	case reflect.Uint8:
		return "U8", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedDType, reflect.TypeFor[T]())
}

// bytesPerElement returns 0 for dtypes this package cannot read.
func bytesPerElement(dtype string) int {
	switch dtype {
	case "F64", "I64", "U64":
		return 8
	case "F32", "I32", "U32":
		return 4
	case "F16", "BF16", "I16", "U16":
		return 2
	case "I8", "U8":
		return 1
	default:
		return 0
	}
}

// float16ToFloat32 converts a float16 (half precision) to float32
func float16ToFloat32(f16 uint16) float32 {
	sign := uint32((f16 >> 15) & 0x1)
	exponent := uint32((f16 >> 10) & 0x1F)
	mantissa := uint32(f16 & 0x3FF)

	var f32bits uint32
	switch {
	case exponent == 0 && mantissa == 0:
		f32bits = sign << 31
	case exponent == 0:
		// subnormal: normalise the mantissa
		exponent = 1
		for (mantissa & 0x400) == 0 {
			mantissa <<= 1
			exponent--
		}
		mantissa &= 0x3FF
		f32bits = (sign << 31) | ((exponent + (127 - 15)) << 23) | (mantissa << 13)
	case exponent == 0x1F:
		// Inf or NaN
		f32bits = (sign << 31) | (0xFF << 23) | (mantissa << 13)
	default:
		f32bits = (sign << 31) | ((exponent + (127 - 15)) << 23) | (mantissa << 13)
	}
	return math.Float32frombits(f32bits)
}

// bfloat16ToFloat32 converts a bfloat16 to float32; bfloat16 is the top
// 16 bits of a float32.
func bfloat16ToFloat32(bf16 uint16) float32 {
	return math.Float32frombits(uint32(bf16) << 16)
}
