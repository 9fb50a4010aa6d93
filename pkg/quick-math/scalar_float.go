//go:build quickmath_float32

package quickmath

type Scalar = float32

type Vector2Data = Float2Data

const Vector2DataName = "Float2Data"

const Epsilon Scalar = 1.1920929e-07

func (v Vector2) Serialize() Vector2Data {
	return v.SerializeFloat()
}

func (v *Vector2) Deserialize(data Vector2Data) {
	v.DeserializeFloat(data)
}
