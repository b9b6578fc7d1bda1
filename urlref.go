package urlref

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/urlref/internal/constraints"
	"github.com/ghettovoice/urlref/internal/errorutil"
	"github.com/ghettovoice/urlref/internal/grammar"
	"github.com/ghettovoice/urlref/internal/types"
)

// Opt is an optional string component. The zero Opt is absent;
// use [Some] to construct a present value.
type Opt = types.Opt[string]

// Some returns an Opt holding v.
func Some(v string) Opt { return types.Some(v) }

// None returns an absent Opt.
func None() Opt { return types.None[string]() }

// RenderOptions contains options for rendering references.
type RenderOptions = types.RenderOptions

// Error is a string type that implements the error interface.
type Error string

func (e Error) Error() string { return string(e) }

// ErrUnsupportedOperand is returned when a reference is combined with a value
// of a type it cannot be combined with.
const ErrUnsupportedOperand Error = "unsupported operand"

// ErrMalformedInput is returned by parsing entry points when the input fails
// the URI grammar.
const ErrMalformedInput = grammar.ErrMalformedInput

// Ref represents a URI reference: [Relative], [Absolute] or [Reference].
type Ref interface {
	types.Renderer
	types.Cloneable[Ref]
	types.ValidFlag
	types.Equalable

	// Resolve combines the reference with another reference per RFC 3986
	// section 5 and returns the combined reference as a new instance.
	// It accepts *Relative, *Absolute, *Reference, string or []byte.
	Resolve(other any) (Ref, error)
}

// Parse parses a URI reference from the given input s (string or []byte).
//
// The input is split by the grammar
// [scheme:][//authority][path][?query][#fragment]; a reference carrying a
// scheme or an authority parses to [Absolute], anything else to [Relative].
// Inputs containing whitespace or control characters are rejected.
// All components are kept in their literal, already-encoded textual form.
func Parse[T constraints.Byteseq](s T) (Ref, error) {
	c, err := grammar.SplitURI(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if c.HasScheme() || c.HasAuthority {
		return newAbsolute(c), nil
	}
	return newRelative(c), nil
}

// ParseRelative parses a relative reference (no scheme, no authority) from
// the given input s (string or []byte).
func ParseRelative[T constraints.Byteseq](s T) (*Relative, error) {
	c, err := grammar.SplitURI(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if c.HasScheme() || c.HasAuthority {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(
			"%q is not a relative reference", string(s)))
	}
	return newRelative(c), nil
}

// ParseAbsolute parses an absolute reference (scheme or authority present)
// from the given input s (string or []byte).
func ParseAbsolute[T constraints.Byteseq](s T) (*Absolute, error) {
	c, err := grammar.SplitURI(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if !c.HasScheme() && !c.HasAuthority {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(
			"%q is not an absolute reference", string(s)))
	}
	return newAbsolute(c), nil
}

func newRelative(c grammar.Components) *Relative {
	u := &Relative{Path: c.Path}
	if c.HasQuery {
		u.Query = Some(c.Query)
	}
	if c.HasFragment {
		u.Fragment = Some(c.Fragment)
	}
	return u
}

func newAbsolute(c grammar.Components) *Absolute {
	return &Absolute{Relative: *newRelative(c), Scheme: c.Scheme, Authority: c.Authority}
}

// coerce converts a combination operand into a reference, parsing raw text
// operands with [Parse]. Operands of any other type are a hard error.
func coerce(other any) (Ref, error) {
	switch v := other.(type) {
	case *Relative:
		return v, nil
	case *Absolute:
		return v, nil
	case *Reference:
		return v, nil
	case string:
		return errtrace.Wrap2(Parse(v))
	case []byte:
		return errtrace.Wrap2(Parse(v))
	default:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(
			ErrUnsupportedOperand, "cannot combine with %T (%v)", other, other))
	}
}

func newUnexpectRefTypeErr(u Ref) error {
	return errorutil.Errorf("unexpected reference type %T", u) //errtrace:skip
}

func cmpOpt(a, b Opt) int {
	av, aok := a.Get()
	bv, bok := b.Get()
	switch {
	case aok && !bok:
		return 1
	case !aok && bok:
		return -1
	case av < bv:
		return -1
	case av > bv:
		return 1
	}
	return 0
}
