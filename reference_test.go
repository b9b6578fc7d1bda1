package urlref_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/urlref"
	"github.com/ghettovoice/urlref/query"
)

func TestParseReference(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		want    *urlref.Reference
		wantErr bool
	}{
		{
			"path query fragment",
			"/search?query=ruby#results",
			&urlref.Reference{Relative: urlref.Relative{
				Path:     "/search",
				Query:    urlref.Some("query=ruby"),
				Fragment: urlref.Some("results"),
			}},
			false,
		},
		{
			"path and fragment decoded",
			"/a%20b#f%20g",
			&urlref.Reference{Relative: urlref.Relative{
				Path:     "/a b",
				Fragment: urlref.Some("f g"),
			}},
			false,
		},
		{
			"query kept literal",
			"/p?q=a%20b",
			&urlref.Reference{Relative: urlref.Relative{
				Path:  "/p",
				Query: urlref.Some("q=a%20b"),
			}},
			false,
		},
		{"scheme rejected", "https://example.com/x", nil, true},
		{"authority rejected", "//example.com/x", nil, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := urlref.ParseReference(c.input)
			if c.wantErr {
				if err == nil {
					t.Fatalf("urlref.ParseReference(%q) error = nil, want non-nil", c.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("urlref.ParseReference(%q) error = %v, want nil", c.input, err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("urlref.ParseReference(%q) mismatch (-want +got):\n%s", c.input, diff)
			}
		})
	}
}

func TestReferenceRender(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ref  *urlref.Reference
		want string
	}{
		{"empty path defaults to root", urlref.NewReference(""), "/"},
		{"plain path", urlref.NewReference("/items"), "/items"},
		{
			"path escaped",
			urlref.NewReference("/a b/c"),
			"/a%20b/c",
		},
		{
			"fragment escaped",
			&urlref.Reference{Relative: urlref.Relative{Path: "/p", Fragment: urlref.Some("f g")}},
			"/p#f%20g",
		},
		{
			"params only",
			&urlref.Reference{
				Relative: urlref.Relative{Path: "/items"},
				Params:   query.Params{"sort": "name", "page": "2"},
			},
			"/items?page=2&sort=name",
		},
		{
			"params appended after query",
			&urlref.Reference{
				Relative: urlref.Relative{Path: "/items", Query: urlref.Some("a=1")},
				Params:   query.Params{"b": "2"},
			},
			"/items?a=1&b=2",
		},
		{
			"empty query renders delimiter",
			&urlref.Reference{Relative: urlref.Relative{Path: "/p", Query: urlref.Some("")}},
			"/p?",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := c.ref.Render(nil), c.want; got != want {
				t.Errorf("Render() = %q, want %q", got, want)
			}
		})
	}
}

func TestReferenceWith(t *testing.T) {
	t.Parallel()

	t.Run("path merge pops last segment", func(t *testing.T) {
		t.Parallel()

		u := urlref.NewReference("/docs/guide/intro")
		if got, want := u.With(urlref.WithPath("../api")).Render(nil), "/docs/api"; got != want {
			t.Errorf("With(WithPath) = %q, want %q", got, want)
		}
	})

	t.Run("without pop keeps last segment", func(t *testing.T) {
		t.Parallel()

		u := urlref.NewReference("/docs/guide")
		if got, want := u.With(urlref.WithPath("x")).Render(nil), "/docs/x"; got != want {
			t.Errorf("With(WithPath) = %q, want %q", got, want)
		}
		got := u.With(urlref.WithPath("x"), urlref.WithoutPop()).Render(nil)
		if want := "/docs/guide/x"; got != want {
			t.Errorf("With(WithPath, WithoutPop) = %q, want %q", got, want)
		}
	})

	t.Run("empty path is no change", func(t *testing.T) {
		t.Parallel()

		u := urlref.NewReference("/docs/guide")
		if got, want := u.With(urlref.WithPath("")).Render(nil), "/docs/guide"; got != want {
			t.Errorf("With(WithPath(\"\")) = %q, want %q", got, want)
		}
	})

	t.Run("params replace and clear query", func(t *testing.T) {
		t.Parallel()

		u := &urlref.Reference{
			Relative: urlref.Relative{Path: "/p", Query: urlref.Some("a=1")},
			Params:   query.Params{"a": "1"},
		}
		got := u.With(urlref.WithParams(query.Params{"b": "2"}))
		if want := "/p?b=2"; got.Render(nil) != want {
			t.Errorf("With(WithParams) = %q, want %q", got.Render(nil), want)
		}
		if got.Query.IsSet() {
			t.Error("With(WithParams) kept the textual query, want cleared")
		}
	})

	t.Run("explicit query wins over params replace", func(t *testing.T) {
		t.Parallel()

		u := &urlref.Reference{Relative: urlref.Relative{Path: "/p", Query: urlref.Some("a=1")}}
		got := u.With(urlref.WithQuery("x=9"), urlref.WithParams(query.Params{"b": "2"}))
		if want := "/p?x=9&b=2"; got.Render(nil) != want {
			t.Errorf("With(WithQuery, WithParams) = %q, want %q", got.Render(nil), want)
		}
	})

	t.Run("merge keeps query and merges params", func(t *testing.T) {
		t.Parallel()

		u := &urlref.Reference{
			Relative: urlref.Relative{Path: "/p", Query: urlref.Some("x=0")},
			Params:   query.Params{"a": "1"},
		}
		got := u.With(urlref.WithMerge(), urlref.WithParams(query.Params{"a": "9", "b": "2"}))
		wantParams := query.Params{"a": "9", "b": "2"}
		if diff := cmp.Diff(wantParams, got.Params); diff != "" {
			t.Errorf("merged params mismatch (-want +got):\n%s", diff)
		}
		if want := "/p?x=0&a=9&b=2"; got.Render(nil) != want {
			t.Errorf("With(WithMerge, WithParams) = %q, want %q", got.Render(nil), want)
		}
	})

	t.Run("fragment", func(t *testing.T) {
		t.Parallel()

		u := urlref.NewReference("/p")
		if got, want := u.With(urlref.WithFragment("sec")).Render(nil), "/p#sec"; got != want {
			t.Errorf("With(WithFragment) = %q, want %q", got, want)
		}
	})

	t.Run("receiver unchanged", func(t *testing.T) {
		t.Parallel()

		u := &urlref.Reference{
			Relative: urlref.Relative{Path: "/p", Query: urlref.Some("a=1")},
			Params:   query.Params{"a": "1"},
		}
		u.With(
			urlref.WithPath("../q"),
			urlref.WithQuery("z=1"),
			urlref.WithParams(query.Params{"b": "2"}),
			urlref.WithFragment("f"),
		)
		if got, want := u.Render(nil), "/p?a=1&a=1"; got != want {
			t.Errorf("receiver mutated: %q, want %q", got, want)
		}
	})
}

func TestReferenceParseQuery(t *testing.T) {
	t.Parallel()

	t.Run("moves query into params", func(t *testing.T) {
		t.Parallel()

		u := &urlref.Reference{Relative: urlref.Relative{Path: "/p", Query: urlref.Some("a=1&b[c]=2")}}
		got, err := u.ParseQuery()
		if err != nil {
			t.Fatalf("ParseQuery() error = %v, want nil", err)
		}
		want := query.Params{"a": "1", "b": query.Params{"c": "2"}}
		if diff := cmp.Diff(want, got.Params); diff != "" {
			t.Errorf("params mismatch (-want +got):\n%s", diff)
		}
		if got.Query.IsSet() {
			t.Error("ParseQuery() kept the textual query, want cleared")
		}
		if !u.Query.IsSet() {
			t.Error("ParseQuery() mutated its receiver")
		}
	})

	t.Run("existing params win ties", func(t *testing.T) {
		t.Parallel()

		u := &urlref.Reference{
			Relative: urlref.Relative{Path: "/p", Query: urlref.Some("a=1&b=2")},
			Params:   query.Params{"a": "0"},
		}
		got, err := u.ParseQuery()
		if err != nil {
			t.Fatalf("ParseQuery() error = %v, want nil", err)
		}
		want := query.Params{"a": "0", "b": "2"}
		if diff := cmp.Diff(want, got.Params); diff != "" {
			t.Errorf("params mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no query", func(t *testing.T) {
		t.Parallel()

		u := &urlref.Reference{
			Relative: urlref.Relative{Path: "/p"},
			Params:   query.Params{"a": "1"},
		}
		got, err := u.ParseQuery()
		if err != nil {
			t.Fatalf("ParseQuery() error = %v, want nil", err)
		}
		if !got.Equal(u) {
			t.Errorf("ParseQuery() = %v, want %v", got, u)
		}
	})

	t.Run("malformed query", func(t *testing.T) {
		t.Parallel()

		u := &urlref.Reference{Relative: urlref.Relative{Path: "/p", Query: urlref.Some("a[b=1")}}
		if _, err := u.ParseQuery(); !errors.Is(err, query.ErrInvalidKeyPath) {
			t.Errorf("ParseQuery() error = %v, want %v", err, query.ErrInvalidKeyPath)
		}
	})
}

func TestReferenceResolve(t *testing.T) {
	t.Parallel()

	t.Run("reference operand", func(t *testing.T) {
		t.Parallel()

		base := urlref.NewReference("/docs/guide/")
		res, err := base.Resolve(urlref.NewReference("../api/reference.html"))
		if err != nil {
			t.Fatalf("Resolve error = %v, want nil", err)
		}
		if got, want := res.Render(nil), "/docs/api/reference.html"; got != want {
			t.Errorf("Resolve = %q, want %q", got, want)
		}
	})

	t.Run("relative operand decoded", func(t *testing.T) {
		t.Parallel()

		base := urlref.NewReference("/docs/")
		res, err := base.Resolve(&urlref.Relative{Path: "a%20b"})
		if err != nil {
			t.Fatalf("Resolve error = %v, want nil", err)
		}
		ref, ok := res.(*urlref.Reference)
		if !ok {
			t.Fatalf("Resolve returned %T, want *urlref.Reference", res)
		}
		if got, want := ref.Path, "/docs/a b"; got != want {
			t.Errorf("Path = %q, want %q", got, want)
		}
		if got, want := ref.Render(nil), "/docs/a%20b"; got != want {
			t.Errorf("Render = %q, want %q", got, want)
		}
	})

	t.Run("absolute operand wins", func(t *testing.T) {
		t.Parallel()

		base := urlref.NewReference("/docs/")
		res, err := base.Resolve("https://example.com/x")
		if err != nil {
			t.Fatalf("Resolve error = %v, want nil", err)
		}
		if got, want := res.Render(nil), "https://example.com/x"; got != want {
			t.Errorf("Resolve = %q, want %q", got, want)
		}
	})
}

func TestReferenceClone(t *testing.T) {
	t.Parallel()

	u := &urlref.Reference{
		Relative: urlref.Relative{Path: "/p"},
		Params:   query.Params{"a": query.Params{"b": "1"}},
	}
	u2, ok := u.Clone().(*urlref.Reference)
	if !ok {
		t.Fatal("Clone did not return *urlref.Reference")
	}
	u2.Params["a"].(query.Params)["b"] = "2"
	if got, want := u.Params["a"].(query.Params)["b"], "1"; got != want {
		t.Errorf("Clone shares params: original b = %v, want %v", got, want)
	}
}

func TestReferenceCompare(t *testing.T) {
	t.Parallel()

	a := &urlref.Reference{Relative: urlref.Relative{Path: "/p"}}
	b := &urlref.Reference{Relative: urlref.Relative{Path: "/p"}, Params: query.Params{"x": "1"}}

	if got := a.Compare(a); got != 0 {
		t.Errorf("Compare(a, a) = %d, want 0", got)
	}
	if got := a.Compare(b); got >= 0 {
		t.Errorf("Compare(a, b) = %d, want < 0", got)
	}
	if got := b.Compare(a); got <= 0 {
		t.Errorf("Compare(b, a) = %d, want > 0", got)
	}
}
