package quickmath_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	quickmath "linearmath.dev/pkg/quick-math"
)

func TestSerializeRoundTrip(t *testing.T) {
	v := Vec(1.5, -2.25)

	var f quickmath.Vector2
	f.DeserializeFloat(v.SerializeFloat())
	require.True(t, f.Equal(v))

	var d quickmath.Vector2
	d.DeserializeDouble(v.SerializeDouble())
	require.True(t, d.Equal(v))

	for _, s := range samples() {
		var n quickmath.Vector2
		n.Deserialize(s.Serialize())
		require.True(t, n.Equal(s), "native round trip of %s", s)
	}
}

func TestSerializeCopiesPadding(t *testing.T) {
	in := quickmath.Float2Data{XY: [4]float32{1, 2, 7, 9}}

	var v quickmath.Vector2
	v.DeserializeFloat(in)
	require.Equal(t, [4]Scalar{1, 2, 7, 9}, v.Scalars())
	require.Equal(t, in, v.SerializeFloat())
	require.Equal(t, [4]float64{1, 2, 7, 9}, v.SerializeDouble().XY)

	v.Set(Vec(3, 4))
	require.Equal(t, [4]Scalar{3, 4, 7, 9}, v.Scalars(), "Set keeps padding")
}

func TestSerializeWidening(t *testing.T) {
	in := quickmath.Float2Data{XY: [4]float32{0.1, -0.3, 0, 0}}

	var v quickmath.Vector2
	v.DeserializeFloat(in)

	var w quickmath.Vector2
	w.DeserializeDouble(v.SerializeDouble())
	require.Equal(t, in, w.SerializeFloat())
}

func TestSerializeNarrowing(t *testing.T) {
	if quickmath.NativeWidth() != 64 {
		t.Skip("narrowing only loses precision with a 64 bit working precision")
	}

	v := Vec(0.1, 0.2)
	var narrowed quickmath.Vector2
	narrowed.DeserializeFloat(v.SerializeFloat())
	require.False(t, narrowed.Equal(v))
	requireNear(t, v, narrowed, 1e-7)
}

func TestNativeRecord(t *testing.T) {
	switch quickmath.NativeWidth() {
	case 64:
		require.Equal(t, "Double2Data", quickmath.Vector2DataName)
	case 32:
		require.Equal(t, "Float2Data", quickmath.Vector2DataName)
	default:
		t.Fatalf("unexpected native width %d", quickmath.NativeWidth())
	}
}

func TestRecordBinary(t *testing.T) {
	f := quickmath.Float2Data{XY: [4]float32{1, -2, 0, 0}}
	b, err := f.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, quickmath.Float2DataSize)
	require.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b[0:4])
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0xc0}, b[4:8])

	var f2 quickmath.Float2Data
	require.NoError(t, f2.UnmarshalBinary(b))
	require.Equal(t, f, f2)

	d := quickmath.Double2Data{XY: [4]float64{0.1, 2, 3, 4}}
	b, err = d.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, quickmath.Double2DataSize)

	var d2 quickmath.Double2Data
	require.NoError(t, d2.UnmarshalBinary(b))
	require.Equal(t, d, d2)

	require.ErrorIs(t, f2.UnmarshalBinary(b), quickmath.ErrRecordSize)
	require.ErrorIs(t, d2.UnmarshalBinary(b[:16]), quickmath.ErrRecordSize)
}

func TestEncodeVector2(t *testing.T) {
	v := Vec(3, -4)
	for _, width := range []int{32, 64} {
		b, err := quickmath.EncodeVector2(v, width)
		require.NoError(t, err)
		require.Len(t, b, width/2)

		out, err := quickmath.DecodeVector2(b, width)
		require.NoError(t, err)
		require.True(t, out.Equal(v))
	}

	_, err := quickmath.EncodeVector2(v, 16)
	require.Error(t, err)
	_, err = quickmath.DecodeVector2(make([]byte, 16), 64)
	require.ErrorIs(t, err, quickmath.ErrRecordSize)
}
