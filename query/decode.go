package query

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlref/internal/constraints"
	"github.com/ghettovoice/urlref/internal/errorutil"
	"github.com/ghettovoice/urlref/internal/grammar"
)

// Error is a string type that implements the error interface.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrInvalidKeyPath is returned for assignments whose key tokenizes to an
	// empty or malformed key path.
	ErrInvalidKeyPath Error = "invalid key path"
	// ErrKeyPathTooDeep is returned when a key path has more tokens than the
	// decoder's depth limit.
	ErrKeyPathTooDeep Error = "key path too deep"
)

// DefaultMaxDepth is the key path depth limit used when Decode is called
// with a non-positive maxDepth.
const DefaultMaxDepth = 8

// Decode parses a percent-encoded query string into a [Params] tree.
// Assignments are split on "&" and on the first "=" while still encoded, then
// key and value are unescaped independently. Bracket keys nest: "a[b]=1"
// assigns into a mapping, "a[]=1" appends to a sequence. A repeated
// "items[][name]=..." key starts a new sequence element only when the last
// element already has that field, so interleaved field lists group back into
// their objects.
//
// Decoding stops at the first offending assignment: an empty or malformed key
// path yields [ErrInvalidKeyPath], a key path with more than maxDepth tokens
// yields [ErrKeyPathTooDeep].
func Decode[T constraints.Byteseq](src T, maxDepth int) (Params, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	root := Params{}
	s := string(src)
	if s == "" {
		return root, nil
	}

	for _, part := range strings.Split(s, "&") {
		rawKey, rawVal, hasVal := strings.Cut(part, "=")

		toks, err := splitKey(grammar.Unescape(rawKey))
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if len(toks) > maxDepth {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(
				ErrKeyPathTooDeep, "key %q has %d tokens, limit %d", rawKey, len(toks), maxDepth))
		}

		var val any
		if hasVal {
			val = grammar.Unescape(rawVal)
		}
		assignPath(root, toks, val)
	}
	return root, nil
}

// splitKey tokenizes a bracket key: "a[b][c]" into ["a","b","c"] and "a[]"
// into ["a",""], the empty token marking a sequence append point.
func splitKey(name string) ([]string, error) {
	i := strings.IndexByte(name, '[')
	if i < 0 {
		if name == "" {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidKeyPath, "empty key"))
		}
		return []string{name}, nil
	}
	if i == 0 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidKeyPath, "key %q has no root token", name))
	}

	toks := []string{name[:i]}
	for rest := name[i:]; rest != ""; {
		if rest[0] != '[' {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidKeyPath, "malformed key %q", name))
		}
		j := strings.IndexByte(rest, ']')
		if j < 0 {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidKeyPath, "unbalanced brackets in key %q", name))
		}
		toks = append(toks, rest[1:j])
		rest = rest[j+1:]
	}
	return toks, nil
}

// assignPath walks root along toks and stores val at the leaf.
func assignPath(root Params, toks []string, val any) {
	if len(toks) == 0 {
		return
	}
	root[toks[0]] = assign(root[toks[0]], toks[1:], val)
}

func assign(node any, toks []string, val any) any {
	if len(toks) == 0 {
		return val
	}

	if toks[0] == "" {
		arr, _ := node.([]any)
		if len(toks) == 1 {
			return append(arr, val)
		}
		// Assigning a nested field of a sequence element: reuse the last
		// element while it lacks the next-level key, append a new element
		// once it has it. This regroups interleaved "items[][k]=v" pairs
		// into distinct objects.
		if len(arr) > 0 {
			if last, ok := arr[len(arr)-1].(Params); ok && !last.Has(toks[1]) {
				arr[len(arr)-1] = assign(last, toks[1:], val)
				return arr
			}
		}
		return append(arr, assign(nil, toks[1:], val))
	}

	m, ok := node.(Params)
	if !ok {
		// a scalar or sequence in the way is replaced by a mapping
		m = Params{}
	}
	m[toks[0]] = assign(m[toks[0]], toks[1:], val)
	return m
}
