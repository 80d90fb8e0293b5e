// Package pagetest provides in-memory fakes of the page automation contracts.
package pagetest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/arnavsurve/stepshot/pkg/types"
)

// PNG is the payload fakes write for every screenshot.
var PNG = []byte("\x89PNG fake")

type Element struct {
	Text     string
	ClickErr error
	FillErr  error
	TextErr  error
	ShotErr  error

	mu     sync.Mutex
	Clicks int
	Filled []string
	Shots  []string
}

func (e *Element) Click(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.Clicks++
	return nil
}

func (e *Element) Fill(ctx context.Context, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.FillErr != nil {
		return e.FillErr
	}
	e.Filled = append(e.Filled, value)
	return nil
}

func (e *Element) TextContent(ctx context.Context) (string, error) {
	if e.TextErr != nil {
		return "", e.TextErr
	}
	return e.Text, nil
}

func (e *Element) Screenshot(ctx context.Context, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ShotErr != nil {
		return e.ShotErr
	}
	e.Shots = append(e.Shots, path)
	return writeShot(path)
}

// Page resolves selectors from a fixed map. A selector listed in QueryErrs
// fails the lookup itself instead of matching nothing.
type Page struct {
	Elements    map[string][]*Element
	QueryErrs   map[string]error
	ShotErr     error
	NavigateErr error
	CloseErr    error

	mu        sync.Mutex
	Queries   []string
	Shots     []string
	Navigated []string
	Closed    bool
}

func NewPage() *Page {
	return &Page{
		Elements:  make(map[string][]*Element),
		QueryErrs: make(map[string]error),
	}
}

// With registers elements under selector and returns the page for chaining.
func (p *Page) With(selector string, elements ...*Element) *Page {
	p.Elements[selector] = append(p.Elements[selector], elements...)
	return p
}

// Failing makes any lookup of selector return err.
func (p *Page) Failing(selector string, err error) *Page {
	p.QueryErrs[selector] = err
	return p
}

func (p *Page) lookup(selector string) ([]*Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Queries = append(p.Queries, selector)
	if err := p.QueryErrs[selector]; err != nil {
		return nil, err
	}
	return p.Elements[selector], nil
}

func (p *Page) QueryFirst(ctx context.Context, selector string) (types.Element, error) {
	els, err := p.lookup(selector)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, nil
	}
	return els[0], nil
}

func (p *Page) QueryAll(ctx context.Context, selector string) ([]types.Element, error) {
	els, err := p.lookup(selector)
	if err != nil {
		return nil, err
	}
	out := make([]types.Element, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}

func (p *Page) Screenshot(ctx context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ShotErr != nil {
		return p.ShotErr
	}
	p.Shots = append(p.Shots, path)
	return writeShot(path)
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Navigated = append(p.Navigated, url)
	return p.NavigateErr
}

func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return p.CloseErr
}

// QueryCount reports how many lookups were made, for "never touched" checks.
func (p *Page) QueryCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Queries)
}

func writeShot(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, PNG, 0644)
}

// Capturer records capture names and asks the scope to screenshot itself
// under Dir. Names listed in FailOn return the mapped error.
type Capturer struct {
	Dir    string
	FailOn map[string]error

	mu    sync.Mutex
	Names []string
}

func (c *Capturer) Capture(ctx context.Context, scope types.Screenshotter, name string) (types.Artifact, error) {
	if err := c.FailOn[name]; err != nil {
		return types.Artifact{}, err
	}
	file := "screenshot_" + name + ".png"
	location := ""
	if c.Dir != "" {
		location = filepath.Join(c.Dir, file)
	}
	if err := scope.Screenshot(ctx, location); err != nil {
		return types.Artifact{}, err
	}
	c.mu.Lock()
	c.Names = append(c.Names, name)
	c.mu.Unlock()
	return types.Artifact{Reference: "/" + file, StorageLocation: location}, nil
}

// ErrDriver is a stand-in for an unexpected automation failure.
var ErrDriver = errors.New("driver: target crashed")

// Items builds n elements with texts "item 1".."item n".
func Items(n int) []*Element {
	els := make([]*Element, 0, n)
	for i := 1; i <= n; i++ {
		els = append(els, &Element{Text: "item " + strconv.Itoa(i)})
	}
	return els
}
