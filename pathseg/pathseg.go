// Package pathseg implements the path-segment algebra behind RFC 3986
// reference resolution: splitting paths into segment sequences, dot-segment
// removal (section 5.2.4) and path merging (section 5.2.3).
//
// A segment sequence keeps empty segments: a leading empty segment marks an
// absolute path, a trailing empty segment marks a directory-like path ending
// in "/", and interior empty segments stand for repeated slashes.
package pathseg

import (
	"path/filepath"
	"strings"

	"github.com/ghettovoice/urlref/internal/grammar"
)

// Split splits path on "/" keeping empty leading, trailing and interior
// segments. Split("") is an empty sequence, Split("/") is ["", ""].
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Join is the inverse of [Split]: segments concatenated with "/" separators,
// no collapsing.
func Join(segs []string) string {
	return strings.Join(segs, "/")
}

// Simplify removes dot-segments from segs in a single left-to-right pass,
// per RFC 3986 section 5.2.4:
//
//   - a leading empty segment (absolute-path marker) is always kept;
//   - "." is dropped; a final "." leaves a trailing empty segment so the
//     result still denotes a directory;
//   - an interior empty segment (repeated slash) is dropped, a final one kept;
//   - ".." pops the last accumulated segment; at an unrooted path leading
//     ".." segments accumulate instead of cancelling, and the absolute-root
//     marker is a floor that cannot be popped.
//
// Simplify is idempotent and never mutates its argument.
func Simplify(segs []string) []string {
	if len(segs) == 0 {
		return nil
	}

	out := make([]string, 0, len(segs))
	for i, seg := range segs {
		last := i == len(segs)-1
		switch seg {
		case ".":
			if last {
				out = append(out, "")
			}
		case "":
			if i == 0 || last {
				out = append(out, "")
			}
		case "..":
			switch {
			case len(out) == 0 || out[len(out)-1] == "..":
				// unrooted: parent markers accumulate
				out = append(out, "..")
			case len(out) == 1 && out[0] == "":
				// root is a floor
			default:
				out = out[:len(out)-1]
			}
			if last {
				out = append(out, "")
			}
		default:
			out = append(out, seg)
		}
	}
	return out
}

// Expand merges the relative path rel into base per RFC 3986 section 5.2.3
// and simplifies the result. An empty rel returns base unchanged. When pop is
// true the base's last segment is dropped before the merge unless it is "..";
// when pop is false only a trailing empty marker is dropped, so a directory
// base does not gain a doubled slash. A rel that starts with "/" replaces the
// base path entirely, regardless of pop.
func Expand(base, rel string, pop bool) string {
	if rel == "" {
		return base
	}

	bs := Split(base)
	if pop {
		if len(bs) > 0 && bs[len(bs)-1] != ".." {
			bs = bs[:len(bs)-1]
		}
	} else if len(bs) > 0 && bs[len(bs)-1] == "" {
		bs = bs[:len(bs)-1]
	}

	rs := Split(rel)
	if len(rs) > 0 && rs[0] == "" {
		return Join(Simplify(rs))
	}
	return Join(Simplify(append(bs, rs...)))
}

// Relative computes the shortest relative path that leads from the location
// named by from to target. from is treated as a file location: its last
// segment is dropped to obtain the starting directory. The result climbs out
// of the uncommon part of from's directory with ".." segments, then descends
// into target's remainder. Unlike [Simplify] the result is a one-shot diff,
// not a normal form.
func Relative(target, from string) string {
	ts := Split(target)
	fs := Split(from)
	if len(fs) > 0 {
		fs = fs[:len(fs)-1]
	}

	var common int
	for common < len(ts) && common < len(fs) && ts[common] == fs[common] {
		common++
	}

	out := make([]string, 0, len(fs)-common+len(ts)-common)
	for range fs[common:] {
		out = append(out, "..")
	}
	out = append(out, ts[common:]...)
	return Join(out)
}

// ToLocalPath converts a URL path to a platform file path. Each segment is
// decoded with the path-safe decoder, so percent-encoded separators stay as
// literal "%2F"/"%5C" text instead of becoming directory boundaries.
func ToLocalPath(path string) string {
	segs := Split(path)
	for i, seg := range segs {
		segs[i] = grammar.UnescapePath(seg)
	}
	return strings.Join(segs, string(filepath.Separator))
}
