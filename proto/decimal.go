package proto

import "strconv"

// MaxDecimalBytes is the longest decimal text of an int32 ("-2147483648").
const MaxDecimalBytes = 11

// PutDecimal writes the decimal text of n into buf and returns the number of
// bytes written. Zero is "0", negatives carry a leading '-', there is no
// padding. It panics if buf is too small.
func PutDecimal(buf []byte, n int32) int {
	var tmp [MaxDecimalBytes]byte
	i := len(tmp)

	u := uint32(n)
	if n < 0 {
		u = uint32(-int64(n))
	}
	if u == 0 {
		i--
		tmp[i] = '0'
	}
	for u > 0 {
		i--
		tmp[i] = byte('0' + u%10)
		u /= 10
	}
	if n < 0 {
		i--
		tmp[i] = '-'
	}

	size := len(tmp) - i
	if len(buf) < size {
		panic("proto: PutDecimal buffer too small")
	}
	return copy(buf, tmp[i:])
}

// AppendDecimal appends the decimal text of n to dst.
func AppendDecimal(dst []byte, n int32) []byte {
	var tmp [MaxDecimalBytes]byte
	k := PutDecimal(tmp[:], n)
	return append(dst, tmp[:k]...)
}

// FormatDecimal returns the decimal text of n.
func FormatDecimal(n int32) string {
	var tmp [MaxDecimalBytes]byte
	k := PutDecimal(tmp[:], n)
	return string(tmp[:k])
}

// ParseDecimal parses signed decimal text in the int32 range.
func ParseDecimal(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
