package urlref

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlref/internal/constraints"
	"github.com/ghettovoice/urlref/internal/errorutil"
	"github.com/ghettovoice/urlref/internal/grammar"
	"github.com/ghettovoice/urlref/internal/util"

	"github.com/ghettovoice/urlref/pathseg"
	"github.com/ghettovoice/urlref/query"
)

// Reference represents a relative reference with an optional structured
// parameter overlay on top of its query string.
//
// Unlike [Relative], Path and Fragment are stored unescaped (human-readable)
// and are percent-encoded during rendering. Query stays literal text: it
// already contains the structural "=" and "&" characters, so the reference
// never escapes or unescapes it. Params, when present, render after the
// query ("&"-joined, or "?"-prefixed when there is no textual query).
type Reference struct {
	Relative

	Params query.Params
}

// NewReference creates a reference for the given unescaped path.
// An empty path defaults to "/". No validation is performed; passing
// pre-encoded text here double-encodes it on output.
func NewReference(path string) *Reference {
	if path == "" {
		path = "/"
	}
	return &Reference{Relative: Relative{Path: path}}
}

// ParseReference parses a reference (no scheme, no authority) from the given
// input s (string or []byte). Path and fragment are percent-decoded;
// the query keeps its literal form.
func ParseReference[T constraints.Byteseq](s T) (*Reference, error) {
	c, err := grammar.SplitURI(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if c.HasScheme() || c.HasAuthority {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(
			"%q is not a relative reference", string(s)))
	}

	u := &Reference{Relative: Relative{Path: grammar.Unescape(c.Path)}}
	if c.HasQuery {
		u.Query = Some(c.Query)
	}
	if c.HasFragment {
		u.Fragment = Some(grammar.Unescape(c.Fragment))
	}
	return u, nil
}

// asRelative converts the reference to its wire-form [Relative]: path and
// fragment re-encoded, params folded into the query text.
func (u *Reference) asRelative() *Relative {
	u2 := &Relative{Path: grammar.Escape(u.Path, shouldEscapePathChar)}
	enc := u.Params.Encode()
	if q, ok := u.Query.Get(); ok {
		if enc != "" {
			q += "&" + enc
		}
		u2.Query = Some(q)
	} else if enc != "" {
		u2.Query = Some(enc)
	}
	if f, ok := u.Fragment.Get(); ok {
		u2.Fragment = Some(grammar.Escape(f, shouldEscapeFragmentChar))
	}
	return u2
}

// Clone returns a deep copy of the reference.
func (u *Reference) Clone() Ref {
	if u == nil {
		return nil
	}
	return u.clone()
}

func (u *Reference) clone() *Reference {
	u2 := *u
	u2.Params = u.Params.Clone()
	return &u2
}

// IsValid reports whether the reference names anything at all.
func (u *Reference) IsValid() bool {
	return u != nil &&
		(util.TrimSP(u.Path) != "" || u.Query.IsSet() || u.Fragment.IsSet() || len(u.Params) > 0)
}

// RenderTo writes the reference to the provided writer, percent-encoding the
// path and fragment and appending encoded params after the query text.
func (u *Reference) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}
	return errtrace.Wrap2(u.asRelative().RenderTo(w, opts))
}

// Render returns the string representation of the reference.
func (u *Reference) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the reference.
func (u *Reference) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the reference.
func (u *Reference) Format(f fmt.State, verb rune) {
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
		type hideMethods Reference
		type Reference hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Reference)(u))
	}
}

// Compare orders two references by the field tuple
// (path, query, fragment, encoded params).
func (u *Reference) Compare(other *Reference) int {
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
	return strings.Compare(u.Params.Encode(), other.Params.Encode())
}

// Equal compares this reference with another for equality.
func (u *Reference) Equal(val any) bool {
	var other *Reference
	switch v := val.(type) {
	case Reference:
		other = &v
	case *Reference:
		other = v
	default:
		return false
	}
	return u.Compare(other) == 0
}

// Resolve combines the reference with another reference. Relative and
// Reference operands merge paths per RFC 3986 section 5.2.3 and replace
// query, fragment and params wholesale; an absolute operand wins outright;
// string and []byte operands are parsed first.
func (u *Reference) Resolve(other any) (Ref, error) {
	o, err := coerce(other)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	switch o := o.(type) {
	case *Reference:
		u2 := o.clone()
		u2.Path = pathseg.Expand(u.Path, o.Path, true)
		return u2, nil
	case *Relative:
		u2 := &Reference{Relative: Relative{
			Path:  pathseg.Expand(u.Path, grammar.Unescape(o.Path), true),
			Query: o.Query,
		}}
		if f, ok := o.Fragment.Get(); ok {
			u2.Fragment = Some(grammar.Unescape(f))
		}
		return u2, nil
	case *Absolute:
		return o.Clone(), nil
	default:
		return nil, errtrace.Wrap(newUnexpectRefTypeErr(o))
	}
}

// With returns a copy of the reference with the supplied fields updated.
//
// A non-empty [WithPath] merges into the current path per RFC 3986 section
// 5.2.3 ([WithoutPop] keeps the base path's last segment). Without
// [WithMerge], supplying params replaces the stored params and clears the
// textual query unless a query is supplied explicitly, in which case the
// explicit value wins. With [WithMerge], supplied params are merged key by
// key into the existing ones (new keys win) and an omitted query keeps the
// stored query.
func (u *Reference) With(opts ...WithOption) *Reference {
	var o withOptions
	o.pop = true
	for _, opt := range opts {
		opt.applyWith(&o)
	}

	u2 := u.clone()
	if p, ok := o.path.Get(); ok && p != "" {
		u2.Path = pathseg.Expand(u.Path, p, o.pop)
	}

	if o.merge {
		if q, ok := o.query.Get(); ok {
			u2.Query = Some(q)
		}
		if o.params != nil {
			u2.Params = u.Params.Merge(o.params)
		}
	} else if q, ok := o.query.Get(); ok {
		u2.Query = Some(q)
		if o.params != nil {
			u2.Params = o.params.Clone()
		}
	} else if o.params != nil {
		u2.Params = o.params.Clone()
		u2.Query = None()
	}

	if f, ok := o.fragment.Get(); ok {
		u2.Fragment = Some(f)
	}
	return u2
}

// ParseQuery moves the textual query into the structured params overlay.
// The query text is decoded with [query.Decode] and merged under any
// already-set params: existing keys win ties, parsed keys only add. The
// returned reference carries no textual query; the receiver is unchanged.
func (u *Reference) ParseQuery() (*Reference, error) {
	u2 := u.clone()
	q, ok := u.Query.Get()
	if !ok {
		return u2, nil
	}

	parsed, err := query.Decode(q, 0)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	u2.Params = parsed.Merge(u.Params)
	u2.Query = None()
	return u2, nil
}

// Normalize returns a copy of the reference with dot-segments removed from
// its path.
func (u *Reference) Normalize() *Reference {
	u2 := u.clone()
	u2.Path = pathseg.Join(pathseg.Simplify(pathseg.Split(u.Path)))
	return u2
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Reference) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Reference) UnmarshalText(text []byte) error {
	u1, err := ParseReference(text)
	if err != nil {
		*u = Reference{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// shouldEscapePathChar reports whether the given byte needs escaping inside
// a path component.
func shouldEscapePathChar(c byte) bool { return !grammar.IsPathCharSafe(c) }

// shouldEscapeFragmentChar reports whether the given byte needs escaping
// inside a fragment component.
func shouldEscapeFragmentChar(c byte) bool { return !grammar.IsFragmentCharSafe(c) }
