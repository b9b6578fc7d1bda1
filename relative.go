package urlref

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlref/internal/ioutil"
	"github.com/ghettovoice/urlref/internal/util"

	"github.com/ghettovoice/urlref/pathseg"
)

// Relative represents a relative URI reference: a path with an optional query
// and fragment, no scheme and no authority.
//
// All components are stored in their literal, already-encoded textual form
// and are rendered verbatim. Passing unencoded text to the fields is not
// detected; it round-trips as-is and may produce an unparsable rendering.
type Relative struct {
	Path     string
	Query    Opt
	Fragment Opt
}

// NewRelative creates a relative reference for the given already-encoded
// path. No validation is performed; callers own the encoding contract.
func NewRelative(path string) *Relative {
	return &Relative{Path: path}
}

// Clone returns a copy of the reference.
func (u *Relative) Clone() Ref {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// IsValid reports whether the reference names anything at all.
func (u *Relative) IsValid() bool {
	return u != nil && (util.TrimSP(u.Path) != "" || u.Query.IsSet() || u.Fragment.IsSet())
}

// RenderTo writes the reference to the provided writer.
func (u *Relative) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(u.Path) //nolint:errcheck
	if q, ok := u.Query.Get(); ok {
		cw.Fprint("?", q) //nolint:errcheck
	}
	if f, ok := u.Fragment.Get(); ok {
		cw.Fprint("#", f) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the reference.
func (u *Relative) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the reference.
func (u *Relative) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the reference.
func (u *Relative) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	default:
		type hideMethods Relative
		type Relative hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Relative)(u))
	}
}

// Compare orders two relative references by the field tuple
// (path, query, fragment). An absent component sorts before a present one.
func (u *Relative) Compare(other *Relative) int {
	if u == other {
		return 0
	} else if u == nil {
		return -1
	} else if other == nil {
		return 1
	}
	if c := strings.Compare(u.Path, other.Path); c != 0 {
		return c
	}
	if c := cmpOpt(u.Query, other.Query); c != 0 {
		return c
	}
	return cmpOpt(u.Fragment, other.Fragment)
}

// Equal compares this reference with another for equality.
func (u *Relative) Equal(val any) bool {
	var other *Relative
	switch v := val.(type) {
	case Relative:
		other = &v
	case *Relative:
		other = v
	default:
		return false
	}
	return u.Compare(other) == 0
}

// Resolve combines the reference with another reference.
//
//   - a relative operand merges paths per RFC 3986 section 5.2.3 and takes
//     the operand's query and fragment wholesale;
//   - an absolute operand wins outright;
//   - string and []byte operands are parsed first.
func (u *Relative) Resolve(other any) (Ref, error) {
	o, err := coerce(other)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	switch o := o.(type) {
	case *Relative:
		return &Relative{
			Path:     pathseg.Expand(u.Path, o.Path, true),
			Query:    o.Query,
			Fragment: o.Fragment,
		}, nil
	case *Reference:
		rel := o.asRelative()
		return &Relative{
			Path:     pathseg.Expand(u.Path, rel.Path, true),
			Query:    rel.Query,
			Fragment: rel.Fragment,
		}, nil
	case *Absolute:
		return o.Clone(), nil
	default:
		return nil, errtrace.Wrap(newUnexpectRefTypeErr(o))
	}
}

// Normalize returns a copy of the reference with dot-segments removed from
// its path.
func (u *Relative) Normalize() *Relative {
	u2 := *u
	u2.Path = pathseg.Join(pathseg.Simplify(pathseg.Split(u.Path)))
	return &u2
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Relative) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Relative) UnmarshalText(text []byte) error {
	u1, err := ParseRelative(text)
	if err != nil {
		*u = Relative{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
