package quickmath

import "math"

func sqrt(s Scalar) Scalar {
	return Scalar(math.Sqrt(float64(s)))
}

func cos(s Scalar) Scalar {
	return Scalar(math.Cos(float64(s)))
}

func sin(s Scalar) Scalar {
	return Scalar(math.Sin(float64(s)))
}

func abs(s Scalar) Scalar {
	return Scalar(math.Abs(float64(s)))
}

func atan2(y, x Scalar) Scalar {
	return Scalar(math.Atan2(float64(y), float64(x)))
}
