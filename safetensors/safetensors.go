// Package safetensors encodes named ndarray values in the safetensors layout:
// an 8-byte little-endian header length, a JSON header describing every
// tensor, then the packed little-endian element data.
//
// The package works on byte slices only; reading and writing files is left
// to the caller.
package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/openfluke/ndarray/internal/log"
	"github.com/openfluke/ndarray/ndarray"
)

const metadataKey = "__metadata__"

var (
	// ErrCorrupt is returned when the buffer is truncated or its header
	// disagrees with its data.
	ErrCorrupt = errors.New("safetensors: corrupt data")

	// ErrUnsupportedDType is returned when an element type has no dtype tag.
	ErrUnsupportedDType = errors.New("safetensors: unsupported dtype")
)

// TensorInfo describes one tensor in the header.
type TensorInfo struct {
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset []int  `json:"data_offsets"` // [begin, end) relative to the data section
}

// Encode serialises the arrays. Names are written in sorted order so the
// output is deterministic.
func Encode[T Numeric](tensors map[string]*ndarray.Array[T]) ([]byte, error) {
	dtype, err := DType[T]()
	if err != nil {
		return nil, err
	}
	width := bytesPerElement(dtype)

	names := make([]string, 0, len(tensors))
	for name, a := range tensors {
		if name == metadataKey {
			return nil, fmt.Errorf("safetensors: %q is a reserved name", metadataKey)
		}
		if a == nil {
			return nil, fmt.Errorf("safetensors: tensor %s is nil", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]TensorInfo, len(names))
	dataSize := 0
	for _, name := range names {
		a := tensors[name]
		size := a.Size() * width
		header[name] = TensorInfo{
			DType:  dtype,
			Shape:  a.Dims(),
			Offset: []int{dataSize, dataSize + size},
		}
		dataSize += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal header: %w", err)
	}

	// [header_size (8 bytes)] [header JSON] [tensor data]
	headerSize := len(headerJSON)
	result := make([]byte, 8+headerSize+dataSize)
	binary.LittleEndian.PutUint64(result[0:8], uint64(headerSize))
	copy(result[8:], headerJSON)

	data := result[8+headerSize:]
	for _, name := range names {
		info := header[name]
		writeElements(data[info.Offset[0]:info.Offset[1]], dtype, tensors[name].Flat())
	}
	return result, nil
}

// ReadHeader parses the header of an encoded buffer. The metadata entry is
// left out.
func ReadHeader(data []byte) (map[string]TensorInfo, []byte, error) {
	if len(data) < 8 {
		return nil, nil, fmt.Errorf("%w: need at least 8 bytes for header size, got %d", ErrCorrupt, len(data))
	}
	headerSize := binary.LittleEndian.Uint64(data[0:8])
	if headerSize > uint64(len(data)-8) {
		return nil, nil, fmt.Errorf("%w: header size %d but only %d bytes available", ErrCorrupt, headerSize, len(data)-8)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data[8:8+headerSize], &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: failed to parse header: %v", ErrCorrupt, err)
	}

	infos := make(map[string]TensorInfo, len(raw))
	for name, msg := range raw {
		if name == metadataKey {
			continue
		}
		var info TensorInfo
		if err := json.Unmarshal(msg, &info); err != nil {
			return nil, nil, fmt.Errorf("%w: tensor %s: %v", ErrCorrupt, name, err)
		}
		infos[name] = info
	}
	return infos, data[8+headerSize:], nil
}

// Decode parses an encoded buffer and converts every tensor to T. Tensors
// stored with a dtype this package cannot read are skipped with a warning.
func Decode[T Numeric](data []byte) (map[string]*ndarray.Array[T], error) {
	infos, payload, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	logger := log.WithComponent("safetensors")

	tensors := make(map[string]*ndarray.Array[T], len(infos))
	for name, info := range infos {
		width := bytesPerElement(info.DType)
		if width == 0 {
			logger.Warn().Str("tensor", name).Str("dtype", info.DType).Msg("skipping tensor with unsupported dtype")
			continue
		}

		shape := ndarray.Shape(info.Shape)
		if err := shape.Validate(); err != nil {
			return nil, fmt.Errorf("tensor %s: %w", name, err)
		}
		if shape.NumElements() > math.MaxInt/width {
			return nil, fmt.Errorf("%w: tensor %s: byte size of shape %v overflows int", ErrCorrupt, name, shape)
		}
		if len(info.Offset) != 2 {
			return nil, fmt.Errorf("%w: tensor %s: want 2 data offsets, got %d", ErrCorrupt, name, len(info.Offset))
		}
		begin, end := info.Offset[0], info.Offset[1]
		if begin < 0 || end < begin || end > len(payload) {
			return nil, fmt.Errorf("%w: tensor %s: data out of bounds [%d, %d) of %d", ErrCorrupt, name, begin, end, len(payload))
		}
		if want := shape.NumElements() * width; end-begin != want {
			return nil, fmt.Errorf("%w: tensor %s: %d bytes for shape %v of %s, want %d",
				ErrCorrupt, name, end-begin, shape, info.DType, want)
		}

		values := readElements[T](payload[begin:end], info.DType, shape.NumElements())
		a, err := ndarray.FromFlat(values, shape...)
		if err != nil {
			return nil, fmt.Errorf("tensor %s: %w", name, err)
		}
		tensors[name] = a
	}
	return tensors, nil
}

// writeElements packs values into dest; dest must hold exactly
// len(values) elements of dtype.
func writeElements[T Numeric](dest []byte, dtype string, values []T) {
	le := binary.LittleEndian
	for i, v := range values {
		switch dtype {
		case "F64":
			le.PutUint64(dest[i*8:], math.Float64bits(float64(v)))
		case "F32":
			le.PutUint32(dest[i*4:], math.Float32bits(float32(v)))
		case "I64":
			le.PutUint64(dest[i*8:], uint64(int64(v)))
		case "U64":
			le.PutUint64(dest[i*8:], uint64(v))
		case "I32":
			le.PutUint32(dest[i*4:], uint32(int32(v)))
		case "U32":
			le.PutUint32(dest[i*4:], uint32(v))
		case "I16":
			le.PutUint16(dest[i*2:], uint16(int16(v)))
		case "U16":
			le.PutUint16(dest[i*2:], uint16(v))
		case "I8":
			dest[i] = byte(int8(v))
		case "U8":
			dest[i] = byte(v)
		}
	}
}

// readElements unpacks n elements of dtype from src and converts them to T.
func readElements[T Numeric](src []byte, dtype string, n int) []T {
	le := binary.LittleEndian
	out := make([]T, n)
	for i := range out {
		switch dtype {
		case "F64":
			out[i] = T(math.Float64frombits(le.Uint64(src[i*8:])))
		case "F32":
			out[i] = T(math.Float32frombits(le.Uint32(src[i*4:])))
		case "F16":
			out[i] = T(float16ToFloat32(le.Uint16(src[i*2:])))
		case "BF16":
			out[i] = T(bfloat16ToFloat32(le.Uint16(src[i*2:])))
		case "I64":
			out[i] = T(int64(le.Uint64(src[i*8:])))
		case "U64":
			out[i] = T(le.Uint64(src[i*8:]))
		case "I32":
			out[i] = T(int32(le.Uint32(src[i*4:])))
		case "U32":
			out[i] = T(le.Uint32(src[i*4:]))
		case "I16":
			out[i] = T(int16(le.Uint16(src[i*2:])))
		case "U16":
			out[i] = T(le.Uint16(src[i*2:]))
		case "I8":
			out[i] = T(int8(src[i]))
		case "U8":
			out[i] = T(src[i])
		}
	}
	return out
}
