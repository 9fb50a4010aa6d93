package quickmath_test

import (
	"math"
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"linearmath.dev/pkg/assert"
	quickmath "linearmath.dev/pkg/quick-math"
)

type Scalar = quickmath.Scalar

var Vec = quickmath.NewVector2

func requireNear(t *testing.T, expected, actual quickmath.Vector2, delta float64) {
	t.Helper()
	require.InDelta(t, float64(expected.X()), float64(actual.X()), delta, "x of %s vs %s", expected, actual)
	require.InDelta(t, float64(expected.Y()), float64(actual.Y()), delta, "y of %s vs %s", expected, actual)
}

func samples() []quickmath.Vector2 {
	r := rand.New(rand.NewSource(69))
	out := []quickmath.Vector2{Vec(1, 0), Vec(0, -1), Vec(3, 4), Vec(-2.5, 7.25)}
	for range 32 {
		out = append(out, Vec(Scalar(r.Float64()*200-100), Scalar(r.Float64()*200-100)))
	}
	return out
}

func tolerance(v quickmath.Vector2) float64 {
	return float64(quickmath.Epsilon) * 64 * (1 + float64(v.Absolute().X()+v.Absolute().Y()))
}

func TestVector2Init(t *testing.T) {
	vec := Vec(1.0, 2.0)
	require.True(t, vec.Equal(Vec(1.0, 2.0)))
	require.Equal(t, Scalar(1), vec.X())
	require.Equal(t, Scalar(2), vec.Y())

	vec.SetX(5)
	vec.SetY(-6)
	require.True(t, vec.Equal(Vec(5, -6)))

	var zero quickmath.Vector2
	require.True(t, zero.Equal(Vec(0, 0)))
}

func TestVector2Layout(t *testing.T) {
	require.Zero(t, unsafe.Sizeof(quickmath.Vector2{})%16)
	require.Equal(t, unsafe.Sizeof(quickmath.Vector2{}), unsafe.Sizeof(quickmath.Vector3{}))
	require.Equal(t, [4]Scalar{5, 6, 0, 0}, Vec(5, 6).Scalars())
}

func TestVector2Vector3Conversion(t *testing.T) {
	v3 := Vec(5, 6).Vector3()
	require.Equal(t, Scalar(5), v3.X())
	require.Equal(t, Scalar(6), v3.Y())
	require.Equal(t, Scalar(0), v3.Z())

	back := quickmath.FromVector3(v3)
	require.True(t, back.Equal(Vec(5, 6)))

	require.True(t, quickmath.FromVector3(quickmath.NewVector3(1, 2, 3)).Equal(Vec(1, 2)))
}

func TestVector2Operations(t *testing.T) {
	vec := Vec(1.0, 2.0)
	vecLen := Scalar(math.Sqrt(1 + 4))
	require.True(t, vec.Add(Vec(68.0, 67.0)).Equal(Vec(69, 69)))
	require.True(t, Vec(1, 2).Add(Vec(3, 4)).Equal(Vec(4, 6)))
	require.True(t, vec.Mul(Vec(3, -4)).Equal(Vec(3, -8)))
	require.True(t, vec.Scale(2).Equal(Vec(2, 4)))
	require.True(t, quickmath.ScalarMul(2, vec).Equal(vec.Scale(2)))
	require.True(t, vec.Sub(Vec(4, 3.5)).Equal(Vec(-3.0, -1.5)))
	require.True(t, vec.Neg().Equal(Vec(-1, -2)))
	require.True(t, Vec(4, 8).Div(4).Equal(Vec(1, 2)))
	require.Equal(t, vecLen, vec.Len())
	require.Equal(t, Scalar(0), Vec(0, 0).Len())
	require.Equal(t, Scalar(5), vec.LenSq())
	require.Equal(t, Scalar(11), vec.Dot(Vec(3, 4)))
	require.True(t, Vec(-3, 4).Absolute().Equal(Vec(3, 4)))
}

func TestVector2InPlace(t *testing.T) {
	v := Vec(1, 2)
	v.AddAssign(Vec(3, 4))
	require.True(t, v.Equal(Vec(4, 6)))

	v.SubAssign(Vec(1, 1))
	require.True(t, v.Equal(Vec(3, 5)))

	v.MulAssign(Vec(2, -1))
	require.True(t, v.Equal(Vec(6, -5)))

	v.ScaleAssign(2)
	require.True(t, v.Equal(Vec(12, -10)))

	v.DivAssign(2)
	require.True(t, v.Equal(Vec(6, -5)))

	v.Set(v)
	require.True(t, v.Equal(Vec(6, -5)), "self assignment")

	v.Set(Vec(1, 0)).Rotate(math.Pi)
	requireNear(t, Vec(-1, 0), v, 1e-6)
}

func TestVector2Equality(t *testing.T) {
	a := Vec(1, 2)
	require.True(t, a.Equal(a))
	require.True(t, a.Equal(Vec(1, 2)) && Vec(1, 2).Equal(a))
	require.True(t, a.NotEqual(Vec(1, 2.5)))
	require.True(t, a.NotEqual(Vec(0, 2)))
	require.False(t, a.NotEqual(Vec(1, 2)))

	var padded quickmath.Vector2
	padded.DeserializeDouble(quickmath.Double2Data{XY: [4]float64{1, 2, 42, -42}})
	require.True(t, padded.Equal(a), "padding is ignored")
	require.NotEqual(t, padded.Scalars(), a.Scalars())
}

func TestVector2Length(t *testing.T) {
	require.Equal(t, Scalar(5), Vec(3, 4).Len())
	requireNear(t, Vec(0.6, 0.8), Vec(3, 4).Normalized(), float64(quickmath.Epsilon)*4)

	v := Vec(3, 4)
	v.Normalize()
	require.True(t, v.Equal(Vec(3, 4).Normalized()))

	for _, v := range samples() {
		require.InDelta(t, 1.0, float64(v.Normalized().Len()), float64(quickmath.Epsilon)*8, "normalized %s", v)
	}
}

func TestVector2Distance(t *testing.T) {
	require.Equal(t, Scalar(5), quickmath.Distance(Vec(1, 1), Vec(4, 5)))
	require.Equal(t, Scalar(25), quickmath.DistanceSq(Vec(1, 1), Vec(4, 5)))

	all := samples()
	for i, v := range all {
		w := all[(i+1)%len(all)]
		require.Equal(t, v.Distance(w), w.Distance(v))
		require.Equal(t, quickmath.DistanceSq(v, w), v.Sub(w).LenSq())
		require.Equal(t, quickmath.Dot(v, w), quickmath.Dot(w, v))
		require.Equal(t, v.Dot(v), v.LenSq())
	}
}

func TestVector2Rotation(t *testing.T) {
	requireNear(t, Vec(0, 1), Vec(1, 0).Rotated(math.Pi/2), 1e-6)
	requireNear(t, Vec(-1, 0), Vec(0, 1).Rotated(math.Pi/2), 1e-6)

	angles := []Scalar{0, 0.3, -1.2, math.Pi / 3, 2.5, -math.Pi}
	for _, v := range samples() {
		for _, a := range angles {
			requireNear(t, v, v.Rotated(a).Rotated(-a), tolerance(v))
			requireNear(t, v.Rotated(a+0.7), v.Rotated(a).Rotated(0.7), tolerance(v))
		}
	}

	v := Vec(2, 0)
	v.Rotate(math.Pi / 2)
	requireNear(t, Vec(0, 2), v, 1e-6)
}

func TestVector2Angle(t *testing.T) {
	require.Equal(t, Scalar(0), Vec(1, 0).Angle())
	require.InDelta(t, math.Pi/2, float64(Vec(0, 3).Angle()), 1e-6)
	require.InDelta(t, -math.Pi/2, float64(Vec(0, -3).Angle()), 1e-6)
	require.InDelta(t, math.Pi, float64(Vec(-1, 0).Angle()), 1e-6)
	require.Equal(t, Scalar(math.Atan2(0, 0)), Vec(0, 0).Angle())
}

func TestVector2ZeroDivision(t *testing.T) {
	assert.SetFailureHandler(func(msg string) {
		panic(msg)
	})
	defer assert.SetFailureHandler(nil)

	if assert.FullEnabled {
		require.PanicsWithValue(t, "Vector2 division by zero", func() {
			Vec(0, 0).Normalized()
		})
		require.PanicsWithValue(t, "Vector2 division by zero", func() {
			v := Vec(1, 2)
			v.DivAssign(0)
		})
		return
	}

	n := Vec(0, 0).Normalized()
	require.True(t, math.IsNaN(float64(n.X())))
	require.True(t, math.IsInf(float64(Vec(1, 2).Div(0).X()), 1))
}
