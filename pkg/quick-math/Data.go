package quickmath

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const Float2DataSize = 4 * 4
const Double2DataSize = 4 * 8

var ErrRecordSize = errors.New("serialized vector record has the wrong size")

// Float2Data mirrors the Vector2 storage at 32 bits, padding included.
type Float2Data struct {
	XY [4]float32 `json:"xy" yaml:"xy"`
}

// Double2Data mirrors the Vector2 storage at 64 bits, padding included.
type Double2Data struct {
	XY [4]float64 `json:"xy" yaml:"xy"`
}

func (v Vector2) SerializeFloat() Float2Data {
	var out Float2Data
	for i := range v.xy {
		out.XY[i] = float32(v.xy[i])
	}
	return out
}

func (v *Vector2) DeserializeFloat(data Float2Data) {
	for i := range data.XY {
		v.xy[i] = Scalar(data.XY[i])
	}
}

func (v Vector2) SerializeDouble() Double2Data {
	var out Double2Data
	for i := range v.xy {
		out.XY[i] = float64(v.xy[i])
	}
	return out
}

func (v *Vector2) DeserializeDouble(data Double2Data) {
	for i := range data.XY {
		v.xy[i] = Scalar(data.XY[i])
	}
}

func (d Float2Data) Width() int {
	return 32
}

func (d Float2Data) Vector2() Vector2 {
	var v Vector2
	v.DeserializeFloat(d)
	return v
}

// MarshalBinary writes the four fields little-endian, no header.
func (d Float2Data) MarshalBinary() ([]byte, error) {
	out := make([]byte, Float2DataSize)
	for i, f := range d.XY {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out, nil
}

func (d *Float2Data) UnmarshalBinary(data []byte) error {
	if len(data) != Float2DataSize {
		return fmt.Errorf("%w: Float2Data expects %d bytes, got %d", ErrRecordSize, Float2DataSize, len(data))
	}
	for i := range d.XY {
		d.XY[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return nil
}

func (d Double2Data) Width() int {
	return 64
}

func (d Double2Data) Vector2() Vector2 {
	var v Vector2
	v.DeserializeDouble(d)
	return v
}

func (d Double2Data) MarshalBinary() ([]byte, error) {
	out := make([]byte, Double2DataSize)
	for i, f := range d.XY {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(f))
	}
	return out, nil
}

func (d *Double2Data) UnmarshalBinary(data []byte) error {
	if len(data) != Double2DataSize {
		return fmt.Errorf("%w: Double2Data expects %d bytes, got %d", ErrRecordSize, Double2DataSize, len(data))
	}
	for i := range d.XY {
		d.XY[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return nil
}

// EncodeVector2 serializes v at the given width (32 or 64) to its binary form.
func EncodeVector2(v Vector2, width int) ([]byte, error) {
	switch width {
	case 32:
		return v.SerializeFloat().MarshalBinary()
	case 64:
		return v.SerializeDouble().MarshalBinary()
	}
	return nil, fmt.Errorf("unsupported record width %d", width)
}

// DecodeVector2 is the inverse of EncodeVector2.
func DecodeVector2(data []byte, width int) (Vector2, error) {
	switch width {
	case 32:
		var d Float2Data
		if err := d.UnmarshalBinary(data); err != nil {
			return Vector2{}, err
		}
		return d.Vector2(), nil
	case 64:
		var d Double2Data
		if err := d.UnmarshalBinary(data); err != nil {
			return Vector2{}, err
		}
		return d.Vector2(), nil
	}
	return Vector2{}, fmt.Errorf("unsupported record width %d", width)
}

// NativeWidth is the bit width of Vector2Data.
func NativeWidth() int {
	return Vector2Data{}.Width()
}
