// Package urlref provides a standards-compliant model for Uniform Resource
// Identifiers and their relative forms according to RFC 3986.
//
// # Overview
//
// The package implements three reference types:
//
//   - [Relative]: a relative reference (path, optional query and fragment)
//     holding every component in its literal, already-encoded textual form.
//
//   - [Absolute]: a [Relative] plus scheme and authority. A reference with
//     an authority but no scheme is protocol-relative ("//host/path") and
//     inherits its scheme during resolution.
//
//   - [Reference]: a [Relative] with unescaped (human-readable) path and
//     fragment and an optional structured parameter overlay on top of the
//     query string, encoded with the bracket-key convention of
//     [github.com/ghettovoice/urlref/query].
//
// All three implement the [Ref] interface: rendering, cloning, validation,
// equality and resolution.
//
// # Parsing and construction
//
// [Parse] splits the input by the grammar
// [scheme:][//authority][path][?query][#fragment] and returns [Absolute]
// when a scheme or authority is present, [Relative] otherwise. Inputs
// containing whitespace or control characters are rejected with
// [ErrMalformedInput]. [ParseReference] additionally percent-decodes the
// path and fragment.
//
// The New* constructors are trusted: they perform no validation and no
// (un)escaping. Passing pre-encoded text to [NewReference] double-encodes it
// on output; passing unencoded text to [NewRelative] renders it verbatim.
// Each type documents which contract its fields follow.
//
// # Reference resolution
//
// [Ref.Resolve] implements RFC 3986 section 5 reference resolution on top of
// the path-segment algebra in [github.com/ghettovoice/urlref/pathseg]:
//
//	base, _ := urlref.Parse("https://example.com/docs/guide/")
//	res, _ := base.Resolve("../api/reference.html")
//	// res renders "https://example.com/docs/api/reference.html"
//
// Operands may be references, strings or byte slices; raw text is parsed
// first, and operands of any other type are reported with
// [ErrUnsupportedOperand].
//
// # Immutability
//
// References are value objects. Every combining or updating operation
// ([Ref.Resolve], [Reference.With], [Reference.ParseQuery],
// [Reference.Normalize]) returns a new instance and leaves its receiver and
// operands untouched. Instances are not safe for concurrent modification;
// share them read-only or clone per goroutine.
package urlref
