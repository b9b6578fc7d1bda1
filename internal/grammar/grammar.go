// Package grammar implements the URI reference grammar
// [scheme:][//authority][path][?query][#fragment] and the percent-encoding
// primitives the rest of the module is built on.
package grammar

//go:generate errtrace -w .

import (
	"regexp"
	"sync"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlref/internal/constraints"
	"github.com/ghettovoice/urlref/internal/errorutil"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	// ErrMalformedInput is returned when an input fails the URI grammar.
	ErrMalformedInput Error = "malformed input"
)

func NewMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// Components holds the raw text of each URI component exactly as scanned.
// The Has* flags distinguish an absent component from a present-but-empty
// one: "p?" carries an empty query, "p" carries none.
type Components struct {
	Scheme    string
	Authority string
	Path      string
	Query     string
	Fragment  string

	HasAuthority bool
	HasQuery     bool
	HasFragment  bool
}

// HasScheme reports whether a scheme component was scanned.
func (c Components) HasScheme() bool { return c.Scheme != "" }

// RFC 3986 appendix B, tightened so the scheme rule is scheme-shaped instead
// of "anything before a colon". Compiled once on first use.
var uriPattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(
		`\A(?:([A-Za-z][A-Za-z0-9+.-]*):)?(?://([^/?#]*))?([^?#]*)(?:\?([^#]*))?(?:#(.*))?\z`,
	)
})

// SplitURI matches s against the URI reference grammar and splits it into
// components. Inputs containing whitespace or control bytes are rejected with
// [ErrMalformedInput]; component syntax beyond that is not validated.
func SplitURI[T constraints.Byteseq](s T) (Components, error) {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c <= 0x20 || c == 0x7f {
			return Components{}, errtrace.Wrap(NewMalformedInputErr(
				"whitespace or control character 0x%02X at offset %d", c, i))
		}
	}

	m := uriPattern().FindStringSubmatchIndex(string(s))
	if m == nil {
		return Components{}, errtrace.Wrap(NewMalformedInputErr("input does not match the URI grammar"))
	}

	str := string(s)
	group := func(i int) (string, bool) {
		if m[2*i] < 0 {
			return "", false
		}
		return str[m[2*i]:m[2*i+1]], true
	}

	var c Components
	c.Scheme, _ = group(1)
	c.Authority, c.HasAuthority = group(2)
	c.Path, _ = group(3)
	c.Query, c.HasQuery = group(4)
	c.Fragment, c.HasFragment = group(5)
	return c, nil
}
