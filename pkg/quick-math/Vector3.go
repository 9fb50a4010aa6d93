package quickmath

import "fmt"

// Vector3 is the three component sibling of Vector2. It carries only what the
// conversion boundary needs.
type Vector3 struct {
	xyz [4]Scalar
}

func NewVector3(x, y, z Scalar) Vector3 {
	return Vector3{xyz: [4]Scalar{x, y, z}}
}

func (v Vector3) X() Scalar {
	return v.xyz[0]
}

func (v Vector3) Y() Scalar {
	return v.xyz[1]
}

func (v Vector3) Z() Scalar {
	return v.xyz[2]
}

func (v Vector3) String() string {
	return fmt.Sprintf("Vector3(%g, %g, %g)", v.xyz[0], v.xyz[1], v.xyz[2])
}
