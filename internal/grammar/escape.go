package grammar

import (
	"bytes"

	"github.com/ghettovoice/urlref/internal/constraints"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form
// "% HEXDIG HEXDIG" into the hex-decoded byte. Malformed "%" sequences are
// copied through untouched.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// UnescapePath unescapes s like [Unescape], except that encoded path
// separators "%2F" and "%5C" (any hex case) are kept in their textual form.
// Decoding them would let an encoded separator inside a path segment turn
// into a real filesystem directory boundary.
func UnescapePath[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			if c := unhex(s[i+1])<<4 | unhex(s[i+2]); c != '/' && c != '\\' {
				b.WriteByte(c)
			} else {
				b.WriteByte(s[i])
				b.WriteByte(s[i+1])
				b.WriteByte(s[i+2])
			}
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char matched by shouldEscape callback to
// the hex form "% HEXDIG HEXDIG". A nil callback escapes every byte outside
// the unreserved set. Already-encoded input is not recognized: a "%" outside
// the safe set is always re-encoded, so passing pre-encoded text here
// double-encodes it.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsCharUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsAlphanumChar checks alphanum rule.
func IsAlphanumChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// IsCharUnreserved checks the unreserved rule: ALPHA / DIGIT / "_" / "." / "-".
func IsCharUnreserved(c byte) bool {
	return IsAlphanumChar(c) || c == '_' || c == '.' || c == '-'
}

var pathSafeChars = map[byte]bool{
	'/':  true,
	'!':  true,
	'$':  true,
	'&':  true,
	'\'': true,
	'(':  true,
	')':  true,
	'*':  true,
	'+':  true,
	',':  true,
	';':  true,
	'=':  true,
	':':  true,
	'@':  true,
	'~':  true,
}

// IsPathCharSafe checks the pchar rule of RFC 3986 (plus "/"):
// chars that can appear literally in a path component.
func IsPathCharSafe(c byte) bool {
	return pathSafeChars[c] || IsCharUnreserved(c)
}

// IsFragmentCharSafe checks the fragment rule of RFC 3986:
// pchar / "/" / "?".
func IsFragmentCharSafe(c byte) bool {
	return c == '?' || IsPathCharSafe(c)
}
