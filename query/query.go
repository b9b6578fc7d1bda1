// Package query implements a bidirectional mapping between percent-encoded
// key/value query strings and nested mapping/sequence values, using the
// bracket-key convention ("a[b][]=1&a[b][]=2") shared by many web frameworks.
package query

//go:generate errtrace -w .

import (
	"fmt"
	"maps"
	"slices"

	"github.com/ghettovoice/urlref/internal/grammar"
	"github.com/ghettovoice/urlref/internal/util"
)

// Params is a decoded query tree. Values are string scalars, nil (a bare key
// with no "=value"), []any sequences or nested Params mappings.
type Params map[string]any

// Has checks whether a given key is in the mapping.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Clone returns a deep copy of the mapping.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	p2 := make(Params, len(p))
	for k, v := range p {
		p2[k] = cloneValue(v)
	}
	return p2
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case Params:
		return v.Clone()
	case []any:
		v2 := make([]any, len(v))
		for i, el := range v {
			v2[i] = cloneValue(el)
		}
		return v2
	default:
		return v
	}
}

// Merge returns a copy of p with the entries of others merged in.
// Later arguments override earlier ones on key conflict.
func (p Params) Merge(others ...Params) Params {
	p2 := p.Clone()
	if p2 == nil {
		p2 = Params{}
	}
	for _, o := range others {
		for k, v := range o {
			p2[k] = cloneValue(v)
		}
	}
	return p2
}

// Encode renders the mapping as a percent-encoded query string.
// Mapping keys are rendered in sorted order so the output is deterministic.
func (p Params) Encode() string { return Encode(p) }

// Encode renders a query value as a percent-encoded query string.
// A mapping renders each entry under a bracketed key, a sequence renders each
// element under "prefix[]", a scalar renders as "prefix=value" and nil as the
// bare prefix. Empty renderings are dropped.
func Encode(v any) string { return encodeValue(v, "") }

func encodeValue(v any, prefix string) string {
	switch v := v.(type) {
	case Params:
		return encodeMapping(v, prefix)
	case map[string]any:
		return encodeMapping(v, prefix)
	case []any:
		sb := util.GetStringBuilder()
		defer util.FreeStringBuilder(sb)
		for _, el := range v {
			s := encodeValue(el, prefix+"[]")
			if s == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(s)
		}
		return sb.String()
	case nil:
		return prefix
	case string:
		return prefix + "=" + grammar.Escape(v, nil)
	default:
		return prefix + "=" + grammar.Escape(fmt.Sprint(v), nil)
	}
}

func encodeMapping(m map[string]any, prefix string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for _, k := range slices.Sorted(maps.Keys(m)) {
		name := grammar.Escape(k, nil)
		if prefix != "" {
			name = prefix + "[" + name + "]"
		}
		s := encodeValue(m[k], name)
		if s == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(s)
	}
	return sb.String()
}
