package clausewitz

import "strconv"

// Flavor formats the fixed-point floats of a title's binary format.
type Flavor interface {
	F32(bits uint32) string
	F64(bits uint64) string
}

type fixedPoint struct {
	f64Scale float64
}

// F32 values are thousandths stored in an i32.
func (f fixedPoint) F32(bits uint32) string {
	return strconv.FormatFloat(float64(int32(bits))/1000, 'f', 3, 64)
}

func (f fixedPoint) F64(bits uint64) string {
	return strconv.FormatFloat(float64(int64(bits))/f.f64Scale, 'f', 5, 64)
}

var (
	// FlavorQ15 stores f64 values as Q49.15 fixed point (EU4, HOI4).
	FlavorQ15 Flavor = fixedPoint{f64Scale: 1 << 15}

	// FlavorDecimal stores f64 values as hundred-thousandths (CK3, Imperator, Vic3, EU5).
	FlavorDecimal Flavor = fixedPoint{f64Scale: 100000}
)
