package quickmath

import (
	"fmt"

	"linearmath.dev/pkg/assert"
)

// Vector2 is a 2D point or direction.
//
// The components live in a four slot array so the type shares its layout
// with Vector3 and its size stays a multiple of 16 bytes in both precisions.
// Slots 2 and 3 are padding: they are never zeroed on purpose and never read
// by equality or arithmetic. Use Equal, not ==, which compares padding too.
type Vector2 struct {
	xy [4]Scalar
}

func NewVector2(x, y Scalar) Vector2 {
	return Vector2{xy: [4]Scalar{x, y}}
}

// FromVector3 drops z.
func FromVector3(v Vector3) Vector2 {
	return NewVector2(v.X(), v.Y())
}

func (v Vector2) Vector3() Vector3 {
	return NewVector3(v.xy[0], v.xy[1], 0)
}

// Scalars is the raw view of the storage, padding included.
func (v Vector2) Scalars() [4]Scalar {
	return v.xy
}

func (v Vector2) X() Scalar {
	return v.xy[0]
}

func (v Vector2) Y() Scalar {
	return v.xy[1]
}

func (v *Vector2) SetX(x Scalar) {
	v.xy[0] = x
}

func (v *Vector2) SetY(y Scalar) {
	v.xy[1] = y
}

// Set copies the components of other and leaves the padding alone.
func (v *Vector2) Set(other Vector2) *Vector2 {
	v.xy[0] = other.xy[0]
	v.xy[1] = other.xy[1]
	return v
}

func (v *Vector2) AddAssign(other Vector2) *Vector2 {
	v.xy[0] += other.xy[0]
	v.xy[1] += other.xy[1]
	return v
}

func (v *Vector2) SubAssign(other Vector2) *Vector2 {
	v.xy[0] -= other.xy[0]
	v.xy[1] -= other.xy[1]
	return v
}

// MulAssign is the component-wise product.
func (v *Vector2) MulAssign(other Vector2) *Vector2 {
	v.xy[0] *= other.xy[0]
	v.xy[1] *= other.xy[1]
	return v
}

func (v *Vector2) ScaleAssign(s Scalar) *Vector2 {
	v.xy[0] *= s
	v.xy[1] *= s
	return v
}

// DivAssign multiplies by 1/s. s must not be zero: diagnostic builds assert,
// release builds produce Inf or NaN.
func (v *Vector2) DivAssign(s Scalar) *Vector2 {
	assert.Full(s != 0, "Vector2 division by zero")
	return v.ScaleAssign(1 / s)
}

func (v Vector2) Add(other Vector2) Vector2 {
	return NewVector2(v.xy[0]+other.xy[0], v.xy[1]+other.xy[1])
}

func (v Vector2) Sub(other Vector2) Vector2 {
	return NewVector2(v.xy[0]-other.xy[0], v.xy[1]-other.xy[1])
}

func (v Vector2) Mul(other Vector2) Vector2 {
	return NewVector2(v.xy[0]*other.xy[0], v.xy[1]*other.xy[1])
}

func (v Vector2) Scale(s Scalar) Vector2 {
	return NewVector2(v.xy[0]*s, v.xy[1]*s)
}

// ScalarMul is s * v.
func ScalarMul(s Scalar, v Vector2) Vector2 {
	return NewVector2(s*v.xy[0], s*v.xy[1])
}

// Div has the same zero divisor contract as DivAssign.
func (v Vector2) Div(s Scalar) Vector2 {
	assert.Full(s != 0, "Vector2 division by zero")
	return v.Scale(1 / s)
}

func (v Vector2) Neg() Vector2 {
	return NewVector2(-v.xy[0], -v.xy[1])
}

// Equal compares x and y exactly.
func (v Vector2) Equal(other Vector2) bool {
	return v.xy[0] == other.xy[0] && v.xy[1] == other.xy[1]
}

func (v Vector2) NotEqual(other Vector2) bool {
	return !v.Equal(other)
}

func (v Vector2) Dot(other Vector2) Scalar {
	return v.xy[0]*other.xy[0] + v.xy[1]*other.xy[1]
}

func (v Vector2) LenSq() Scalar {
	return v.Dot(v)
}

func (v Vector2) Len() Scalar {
	return sqrt(v.LenSq())
}

func (v Vector2) DistanceSq(other Vector2) Scalar {
	return other.Sub(v).LenSq()
}

func (v Vector2) Distance(other Vector2) Scalar {
	return other.Sub(v).Len()
}

// Normalize scales v to unit length in place. The zero vector goes through
// the DivAssign contract; guard it at the call site.
func (v *Vector2) Normalize() *Vector2 {
	return v.DivAssign(v.Len())
}

func (v Vector2) Normalized() Vector2 {
	return v.Div(v.Len())
}

// Rotate turns v counter-clockwise by angle radians in place.
func (v *Vector2) Rotate(angle Scalar) *Vector2 {
	return v.Set(v.Rotated(angle))
}

func (v Vector2) Rotated(angle Scalar) Vector2 {
	perp := NewVector2(-v.xy[1], v.xy[0])
	return v.Scale(cos(angle)).Add(perp.Scale(sin(angle)))
}

func (v Vector2) Absolute() Vector2 {
	return NewVector2(abs(v.xy[0]), abs(v.xy[1]))
}

// Angle is atan2(y, x), in (-Pi, Pi]. The zero vector gives whatever atan2
// gives at the origin.
func (v Vector2) Angle() Scalar {
	return atan2(v.xy[1], v.xy[0])
}

func (v Vector2) String() string {
	return fmt.Sprintf("Vector2(%g, %g)", v.xy[0], v.xy[1])
}

func Dot(a, b Vector2) Scalar {
	return a.Dot(b)
}

func DistanceSq(a, b Vector2) Scalar {
	return a.DistanceSq(b)
}

func Distance(a, b Vector2) Scalar {
	return a.Distance(b)
}
