package crcgo

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// Format renders sum as 8 lowercase, zero-padded hexadecimal digits with no
// prefix, e.g. "cbf43926".
func Format(sum uint32) string {
	var buf [8]byte
	return string(AppendHex(buf[:0], sum))
}

// AppendHex appends the Format representation of sum to dst.
func AppendHex(dst []byte, sum uint32) []byte {
	const digits = "0123456789abcdef"
	for shift := 28; shift >= 0; shift -= 4 {
		dst = append(dst, digits[(sum>>uint(shift))&0xf])
	}
	return dst
}

// Parse parses the Format representation of a checksum. An optional "0x" or
// "0X" prefix is accepted and digits are case-insensitive; anything other
// than exactly 8 hex digits returns ErrInvalidChecksum.
func Parse(s string) (uint32, error) {
	digits := s
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if len(digits) != 8 {
		return 0, &ParseError{Input: s, cause: ErrInvalidChecksum}
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, &ParseError{Input: s, cause: ErrInvalidChecksum}
	}
	return uint32(v), nil
}

// AppendSum appends sum to dst in big-endian byte order, matching
// hash.Hash32.Sum.
func AppendSum(dst []byte, sum uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, sum)
}
