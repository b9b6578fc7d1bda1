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

// Absolute represents an absolute URI reference: a relative reference plus a
// scheme and an authority. A reference with an authority but no scheme is
// protocol-relative ("//host/path").
//
// Like [Relative], all textual components are stored already encoded and
// rendered verbatim.
type Absolute struct {
	Relative

	Scheme    string
	Authority string
}

// NewAbsolute creates an absolute reference from already-encoded components.
// An empty path defaults to "/". No validation is performed.
func NewAbsolute(scheme, authority, path string) *Absolute {
	if path == "" {
		path = "/"
	}
	return &Absolute{Relative: Relative{Path: path}, Scheme: scheme, Authority: authority}
}

// HasScheme reports whether the reference carries a scheme.
func (u *Absolute) HasScheme() bool { return u != nil && u.Scheme != "" }

// HasAuthority reports whether the reference carries an authority.
func (u *Absolute) HasAuthority() bool { return u != nil && u.Authority != "" }

// Clone returns a copy of the reference.
func (u *Absolute) Clone() Ref {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// IsValid reports whether the reference carries a scheme or an authority.
func (u *Absolute) IsValid() bool {
	return u != nil && (u.HasScheme() || u.HasAuthority())
}

// RenderTo writes the reference to the provided writer.
func (u *Absolute) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if u.Scheme != "" {
		cw.Fprint(u.Scheme, ":") //nolint:errcheck
	}
	if u.Authority != "" {
		cw.Fprint("//", u.Authority) //nolint:errcheck
	}
	cw.Call(func(w io.Writer) (int, error) { return u.Relative.RenderTo(w, opts) })
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the reference.
func (u *Absolute) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the reference.
func (u *Absolute) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the reference.
func (u *Absolute) Format(f fmt.State, verb rune) {
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
		type hideMethods Absolute
		type Absolute hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Absolute)(u))
	}
}

// Compare orders two absolute references by the field tuple
// (path, query, fragment, scheme, authority).
func (u *Absolute) Compare(other *Absolute) int {
	if u == other {
		return 0
	} else if u == nil {
		return -1
	} else if other == nil {
		return 1
	}
	if c := u.Relative.Compare(&other.Relative); c != 0 {
		return c
	}
	if c := strings.Compare(u.Scheme, other.Scheme); c != 0 {
		return c
	}
	return strings.Compare(u.Authority, other.Authority)
}

// Equal compares this reference with another for equality.
func (u *Absolute) Equal(val any) bool {
	var other *Absolute
	switch v := val.(type) {
	case Absolute:
		other = &v
	case *Absolute:
		other = v
	default:
		return false
	}
	return u.Compare(other) == 0
}

// Resolve combines the reference with another reference per RFC 3986
// section 5.2.2:
//
//   - an operand with a scheme wins outright;
//   - a protocol-relative operand ("//host/path") inherits this reference's
//     scheme and takes everything else from the operand;
//   - a relative operand with an empty path keeps the base path; it takes the
//     operand's query and fragment when the operand carries a query, and only
//     a present fragment otherwise (a "#s" reference must not blank out the
//     base query);
//   - any other relative operand merges paths per section 5.2.3 and takes
//     the operand's query and fragment wholesale;
//   - string and []byte operands are parsed first.
func (u *Absolute) Resolve(other any) (Ref, error) {
	o, err := coerce(other)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	switch o := o.(type) {
	case *Absolute:
		if o.HasScheme() {
			return o.Clone(), nil
		}
		return &Absolute{Relative: o.Relative, Scheme: u.Scheme, Authority: o.Authority}, nil
	case *Relative:
		return u.resolveRelative(o), nil
	case *Reference:
		return u.resolveRelative(o.asRelative()), nil
	default:
		return nil, errtrace.Wrap(newUnexpectRefTypeErr(o))
	}
}

func (u *Absolute) resolveRelative(o *Relative) *Absolute {
	u2 := *u
	if o.Path == "" {
		if o.Query.IsSet() {
			u2.Query = o.Query
			u2.Fragment = o.Fragment
		} else if o.Fragment.IsSet() {
			u2.Fragment = o.Fragment
		}
		return &u2
	}
	u2.Path = pathseg.Expand(u.Path, o.Path, true)
	u2.Query = o.Query
	u2.Fragment = o.Fragment
	return &u2
}

// Normalize returns a copy of the reference with dot-segments removed from
// its path.
func (u *Absolute) Normalize() *Absolute {
	u2 := *u
	u2.Relative = *u.Relative.Normalize()
	return &u2
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Absolute) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Absolute) UnmarshalText(text []byte) error {
	u1, err := ParseAbsolute(text)
	if err != nil {
		*u = Absolute{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
