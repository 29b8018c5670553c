// Package urlcodec provides the byte-level encodings the login flow puts on
// the wire: base64url without padding for PKCE material, and percent
// encoding/decoding for authorization-request values and callback targets.
//
// The decoder is intentionally lenient: callback targets arrive from a local
// browser redirect and are attacker-influenced, so a truncated or malformed
// percent sequence passes through as literal characters instead of failing
// the whole request.
package urlcodec

import "strings"

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const hexUpper = "0123456789ABCDEF"

// Base64URL encodes data with the URL-safe base64 alphabet and no padding
// characters.
func Base64URL(data []byte) string {
	var sb strings.Builder
	sb.Grow((len(data)*4 + 2) / 3)

	i := 0
	for ; i+2 < len(data); i += 3 {
		chunk := uint32(data[i])<<16 | uint32(data[i+1])<<8 | uint32(data[i+2])
		sb.WriteByte(base64Alphabet[(chunk>>18)&0x3f])
		sb.WriteByte(base64Alphabet[(chunk>>12)&0x3f])
		sb.WriteByte(base64Alphabet[(chunk>>6)&0x3f])
		sb.WriteByte(base64Alphabet[chunk&0x3f])
	}

	switch len(data) - i {
	case 1:
		b0 := uint32(data[i])
		sb.WriteByte(base64Alphabet[(b0>>2)&0x3f])
		sb.WriteByte(base64Alphabet[(b0&0x03)<<4])
	case 2:
		b0, b1 := uint32(data[i]), uint32(data[i+1])
		sb.WriteByte(base64Alphabet[(b0>>2)&0x3f])
		sb.WriteByte(base64Alphabet[(b0&0x03)<<4|(b1>>4)&0x0f])
		sb.WriteByte(base64Alphabet[(b1&0x0f)<<2])
	}

	return sb.String()
}

// PercentEncode escapes every byte outside the RFC 3986 unreserved set
// ([A-Za-z0-9-_.~]) as %XX with uppercase hex digits.
func PercentEncode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hexUpper[c>>4])
		sb.WriteByte(hexUpper[c&0x0f])
	}
	return sb.String()
}

// PercentDecode reverses PercentEncode and additionally maps a bare '+' to a
// space for form-encoding compatibility. It never fails: a '%' without two
// valid hex digits behind it is copied through literally.
func PercentDecode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]):
			sb.WriteByte(hexValue(s[i+1])<<4 | hexValue(s[i+2]))
			i += 2
		case s[i] == '+':
			sb.WriteByte(' ')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
