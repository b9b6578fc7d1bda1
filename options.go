package urlref

import "github.com/ghettovoice/urlref/query"

// WithOption configures [Reference.With].
type WithOption interface {
	applyWith(opts *withOptions)
}

type withOptions struct {
	path     Opt
	query    Opt
	fragment Opt
	params   query.Params
	pop      bool
	merge    bool
}

type withPath string

func (o withPath) applyWith(opts *withOptions) { opts.path = Some(string(o)) }

// WithPath supplies a new path; it is merged into the current path per
// RFC 3986 section 5.2.3. An empty path means "no change".
func WithPath(path string) WithOption { return withPath(path) }

type withQuery string

func (o withQuery) applyWith(opts *withOptions) { opts.query = Some(string(o)) }

// WithQuery supplies new literal query text, replacing the stored query.
func WithQuery(query string) WithOption { return withQuery(query) }

type withFragment string

func (o withFragment) applyWith(opts *withOptions) { opts.fragment = Some(string(o)) }

// WithFragment supplies a new fragment, replacing the stored one.
func WithFragment(fragment string) WithOption { return withFragment(fragment) }

type withParams struct {
	params query.Params
}

func (o withParams) applyWith(opts *withOptions) { opts.params = o.params }

// WithParams supplies structured params. Without [WithMerge] they replace the
// stored params; with it they are merged key by key into the existing ones.
func WithParams(params query.Params) WithOption { return withParams{params} }

type withoutPop struct{}

func (withoutPop) applyWith(opts *withOptions) { opts.pop = false }

// WithoutPop keeps the base path's last segment during the path merge
// instead of dropping it.
func WithoutPop() WithOption { return withoutPop{} }

type withMerge struct{}

func (withMerge) applyWith(opts *withOptions) { opts.merge = true }

// WithMerge merges supplied params into the existing ones instead of
// replacing them, and keeps the stored query when no query is supplied.
func WithMerge() WithOption { return withMerge{} }
