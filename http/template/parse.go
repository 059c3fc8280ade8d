package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// Default templates embedded in this package.
const (
	ErrorTmpl = "tmpl/error.html"
	IndexTmpl = "tmpl/index.html"
)

// Parser parses HTML templates with the functions provided.
type Parser struct {
	fs     *mergeFS
	fns    html.FuncMap
	reload bool

	mu     sync.RWMutex
	parsed map[string]*html.Template
}

// NewParser constructs a *Parser searching dirs, in order, before the embedded templates.
//
// NewParser provides "nonce" and "rootUrl" to every template;
// "rootUrl" renders an empty string until replaced through [RootUrl].
func NewParser(dirs []fs.FS, opts ...ParserOptFn) *Parser {
	p := &Parser{
		fns:    make(html.FuncMap),
		parsed: make(map[string]*html.Template),
	}
	nonce, nonceFn := Nonce()
	p.fns[nonce] = nonceFn
	root, rootFn := RootUrl(nil)
	p.fns[root] = rootFn
	for _, opt := range opts {
		opt(p)
	}

	p.fs = &mergeFS{
		cache:  make(map[string]fs.FS),
		dirs:   append(append([]fs.FS{}, dirs...), fs.FS(pkgFS)),
		reload: p.reload,
	}

	return p
}

// AddFn includes the named function in the *Parser's function map.
//
// Previously parsed templates are discarded.
func (p *Parser) AddFn(name string, fn any) *Parser {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
	p.parsed = make(map[string]*html.Template)

	return p
}

// Parse parses the files fps with those functions provided previously.
// The returned template is named after the base of the first file.
//
// Unless reloading, the result is cached and every call with the same files returns it.
func (p *Parser) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	key := strings.Join(files, "\x00")
	if !p.reload {
		p.mu.RLock()
		tmpl, ok := p.parsed[key]
		p.mu.RUnlock()

		if ok {
			return tmpl, nil
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// ParseFS reports a missing file as a pattern matching nothing
	for _, f := range files {
		if _, err := fs.Stat(p.fs, f); err != nil {
			return nil, fmt.Errorf("cannot parse %s: %w", f, err)
		}
	}

	tmpl, err := html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
	if err != nil {
		return nil, err
	}

	if !p.reload {
		p.parsed[key] = tmpl
	}

	return tmpl, nil
}

// Reloading reports whether the *Parser rereads templates on every Parse.
func (p *Parser) Reloading() bool { return p.reload }
