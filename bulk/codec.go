package bulk

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/golang/snappy"
)

// encodePayload serializes an array to a snappy-compressed little-endian
// payload. Kind and element count travel alongside the payload, not in it.
func encodePayload(a Array) []byte {
	var raw []byte
	switch a.kind {
	case KindFloat64:
		raw = make([]byte, 8*len(a.floats))
		for i, v := range a.floats {
			binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
		}
	case KindInt64:
		raw = make([]byte, 8*len(a.ints))
		for i, v := range a.ints {
			binary.LittleEndian.PutUint64(raw[8*i:], uint64(v))
		}
	case KindPoint3:
		raw = make([]byte, 24*len(a.points))
		for i, p := range a.points {
			for j, v := range p {
				binary.LittleEndian.PutUint64(raw[24*i+8*j:], math.Float64bits(v))
			}
		}
	}
	return snappy.Encode(nil, raw)
}

// decodePayload reverses encodePayload for a known kind and element count.
func decodePayload(kind Kind, count int, payload []byte) (Array, error) {
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return Array{}, fmt.Errorf("failed to decompress dataset payload: %w", err)
	}

	width := 8
	if kind == KindPoint3 {
		width = 24
	}
	if len(raw) != count*width {
		return Array{}, fmt.Errorf("dataset payload is %d bytes, want %d for %d %s elements",
			len(raw), count*width, count, kind)
	}

	switch kind {
	case KindFloat64:
		values := make([]float64, count)
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
		}
		return Float64s(values), nil
	case KindInt64:
		values := make([]int64, count)
		for i := range values {
			values[i] = int64(binary.LittleEndian.Uint64(raw[8*i:]))
		}
		return Int64s(values), nil
	case KindPoint3:
		values := make([][3]float64, count)
		for i := range values {
			for j := 0; j < 3; j++ {
				values[i][j] = math.Float64frombits(binary.LittleEndian.Uint64(raw[24*i+8*j:]))
			}
		}
		return Point3s(values), nil
	default:
		return Array{}, fmt.Errorf("unknown dataset kind %d", kind)
	}
}
