// Package numfmt renders integers as ASCII into caller-owned buffers.
// No allocation: display and UART paths on small targets hand in the
// same scratch buffer for every frame.
package numfmt

import (
	"github.com/pkg/errors"
)

var (
	ErrShortBuffer = errors.New("destination buffer too small")
	ErrBadDecimals = errors.New("decimals must be between 0 and 9")
)

// digits renders v backwards into tmp and returns the used tail.
func digits(tmp *[10]byte, v uint32) []byte {
	i := len(tmp)
	for {
		i--
		tmp[i] = '0' + byte(v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	return tmp[i:]
}

// Utoa writes the decimal form of v into dst and returns the number of
// bytes written.
func Utoa(dst []byte, v uint32) (int, error) {
	var tmp [10]byte
	d := digits(&tmp, v)
	if len(d) > len(dst) {
		return 0, ErrShortBuffer
	}
	return copy(dst, d), nil
}

// Itoa is Utoa with a leading minus for negative values.
func Itoa(dst []byte, v int32) (int, error) {
	if v >= 0 {
		return Utoa(dst, uint32(v))
	}
	var tmp [10]byte
	d := digits(&tmp, uint32(-int64(v)))
	if len(d)+1 > len(dst) {
		return 0, ErrShortBuffer
	}
	dst[0] = '-'
	return copy(dst[1:], d) + 1, nil
}

// UtoaPad writes v right-aligned in a field of width bytes, filling
// the left with pad. Values wider than the field are written in full.
func UtoaPad(dst []byte, v uint32, width int, pad byte) (int, error) {
	var tmp [10]byte
	d := digits(&tmp, v)
	n := len(d)
	if n < width {
		n = width
	}
	if n > len(dst) {
		return 0, ErrShortBuffer
	}
	for i := 0; i < n-len(d); i++ {
		dst[i] = pad
	}
	copy(dst[n-len(d):], d)
	return n, nil
}

// FixedPoint writes v with a decimal point inserted decimals places
// from the right: FixedPoint(dst, 3300, 3) writes "3.300". The
// fractional part is zero-padded, the integer part always has at
// least one digit.
func FixedPoint(dst []byte, v int32, decimals int) (int, error) {
	if decimals < 0 || decimals > 9 {
		return 0, ErrBadDecimals
	}
	if decimals == 0 {
		return Itoa(dst, v)
	}

	u := uint32(v)
	if v < 0 {
		u = uint32(-int64(v))
	}
	pow := uint32(1)
	for i := 0; i < decimals; i++ {
		pow *= 10
	}

	var itmp, ftmp [10]byte
	ip := digits(&itmp, u/pow)
	fp := digits(&ftmp, u%pow)

	n := len(ip) + 1 + decimals
	if v < 0 {
		n++
	}
	if n > len(dst) {
		return 0, ErrShortBuffer
	}

	pos := 0
	if v < 0 {
		dst[pos] = '-'
		pos++
	}
	pos += copy(dst[pos:], ip)
	dst[pos] = '.'
	pos++
	for i := 0; i < decimals-len(fp); i++ {
		dst[pos] = '0'
		pos++
	}
	copy(dst[pos:], fp)
	return n, nil
}
