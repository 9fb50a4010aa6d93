//go:build !quickmath_float32

package quickmath

// Scalar is the working precision. Build with the quickmath_float32 tag to
// switch the whole package to float32.
type Scalar = float64

// Vector2Data is the serialization record matching Scalar.
type Vector2Data = Double2Data

const Vector2DataName = "Double2Data"

const Epsilon Scalar = 2.220446049250313e-16

func (v Vector2) Serialize() Vector2Data {
	return v.SerializeDouble()
}

func (v *Vector2) Deserialize(data Vector2Data) {
	v.DeserializeDouble(data)
}
