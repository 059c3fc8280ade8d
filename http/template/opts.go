package template

// The ParserOptFn applies functional options to a *Parser when constructing it.
type ParserOptFn func(*Parser)

// WithFn encloses a named function so it can be added to a *Parser's function map.
func WithFn(name string, fn any) ParserOptFn {
	return func(p *Parser) {
		p.fns[name] = fn
	}
}

// WithReload sets whether templates are reread on every Parse.
func WithReload(reload bool) ParserOptFn {
	return func(p *Parser) {
		p.reload = reload
	}
}
