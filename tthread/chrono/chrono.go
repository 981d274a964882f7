// Package chrono models durations as a count of ticks of a rational period,
// in the manner of std::chrono::duration.
package chrono

import (
	"strconv"
	"time"

	"example.com/tinythread/base/timemath"
)

// Ratio is the rational number Num/Den. Both terms are positive.
type Ratio struct {
	Num, Den int64
}

func (r Ratio) String() string {
	return strconv.FormatInt(r.Num, 10) + "/" + strconv.FormatInt(r.Den, 10)
}

// Period is a tick length in seconds.
type Period interface {
	Ratio() Ratio
}

type (
	Nano   struct{}
	Micro  struct{}
	Milli  struct{}
	Unit   struct{}
	Minute struct{}
	Hour   struct{}
)

func (Nano) Ratio() Ratio   { return Ratio{1, 1_000_000_000} }
func (Micro) Ratio() Ratio  { return Ratio{1, 1_000_000} }
func (Milli) Ratio() Ratio  { return Ratio{1, 1_000} }
func (Unit) Ratio() Ratio   { return Ratio{1, 1} }
func (Minute) Ratio() Ratio { return Ratio{60, 1} }
func (Hour) Ratio() Ratio   { return Ratio{3600, 1} }

// Rep is the set of tick count types.
type Rep interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Duration is a count of R ticks of period P.
type Duration[R Rep, P Period] struct {
	rep R
}

// New returns a duration of count ticks of period P.
func New[P Period, R Rep](count R) Duration[R, P] {
	return Duration[R, P]{rep: count}
}

// Count returns the number of ticks.
func (d Duration[R, P]) Count() R { return d.rep }

// Period returns the tick length in seconds.
func (d Duration[R, P]) Period() Ratio {
	var p P
	return p.Ratio()
}

// In converts d to a whole number of ticks of length unit seconds, rounding
// half away from zero. Results out of the int64 range saturate.
func (d Duration[R, P]) In(unit Ratio) int64 {
	from := d.Period()
	n1, d1 := timemath.Reduce(from.Num, unit.Num)
	n2, d2 := timemath.Reduce(unit.Den, from.Den)
	num, den := n1*n2, d1*d2

	half := 0.5
	if R(half) != 0 {
		return timemath.ScaleFloat(float64(d.rep), num, den)
	}
	count := int64(d.rep)
	if d.rep > 0 && count < 0 {
		// unsigned count above math.MaxInt64
		return timemath.ScaleFloat(float64(d.rep), num, den)
	}
	return timemath.Scale(count, num, den)
}

// Std converts d to a time.Duration.
func (d Duration[R, P]) Std() time.Duration {
	return time.Duration(d.In(Nano{}.Ratio()))
}

func (d Duration[R, P]) String() string {
	return d.Std().String()
}

type (
	Nanoseconds  = Duration[int64, Nano]
	Microseconds = Duration[int64, Micro]
	Milliseconds = Duration[int64, Milli]
	Seconds      = Duration[int64, Unit]
	Minutes      = Duration[int64, Minute]
	Hours        = Duration[int64, Hour]
)

func NewNanoseconds(n int64) Nanoseconds   { return Nanoseconds{rep: n} }
func NewMicroseconds(n int64) Microseconds { return Microseconds{rep: n} }
func NewMilliseconds(n int64) Milliseconds { return Milliseconds{rep: n} }
func NewSeconds(n int64) Seconds           { return Seconds{rep: n} }
func NewMinutes(n int64) Minutes           { return Minutes{rep: n} }
func NewHours(n int64) Hours               { return Hours{rep: n} }
