package grammar_test

import (
	"testing"

	"github.com/ghettovoice/urlref/internal/grammar"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		cb   func(byte) bool
		want string
	}{
		{"empty", "", nil, ""},
		{"no escape", "abc-qwe_1.2", nil, "abc-qwe_1.2"},
		{"escape all", "abc++qwe!", nil, "abc%2B%2Bqwe%21"},
		{"escape some", "abc+?qwe", func(c byte) bool { return c != '+' && !grammar.IsCharUnreserved(c) }, "abc+%3Fqwe"},
		{"multibyte", "aéb", nil, "a%C3%A9b"},
		{"double encodes", "safe%2Fname", nil, "safe%252Fname"},
		{"path safe", "/a/b;v=1@x", func(c byte) bool { return !grammar.IsPathCharSafe(c) }, "/a/b;v=1@x"},
		{"path unsafe space", "/My File", func(c byte) bool { return !grammar.IsPathCharSafe(c) }, "/My%20File"},
		{"fragment keeps question mark", "s?x", func(c byte) bool { return !grammar.IsFragmentCharSafe(c) }, "s?x"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Escape(c.str, c.cb), c.want; got != want {
				t.Errorf("grammar.Escape(%q, %p) = %q, want %q", c.str, c.cb, got, want)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"no unescape", "abc%ax%", "abc%ax%"},
		{"unescape all", "abc%E4%b8%96", "abc世"},
		{"trailing percent", "abc%2", "abc%2"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Unescape(c.str), c.want; got != want {
				t.Errorf("grammar.Unescape(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestUnescapePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"plain", "My%20File", "My File"},
		{"encoded slash kept", "safe%2Fname", "safe%2Fname"},
		{"encoded slash lower kept", "safe%2fname", "safe%2fname"},
		{"encoded backslash kept", "safe%5Cname", "safe%5Cname"},
		{"mixed", "a%20b%2Fc%21", "a b%2Fc!"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.UnescapePath(c.str), c.want; got != want {
				t.Errorf("grammar.UnescapePath(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestEscapeBytes(t *testing.T) {
	t.Parallel()

	if got, want := grammar.Escape([]byte("a b"), nil), []byte("a%20b"); string(got) != string(want) {
		t.Errorf("grammar.Escape(%q, nil) = %q, want %q", "a b", got, want)
	}
}
