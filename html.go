package cssinline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	stylesheetMatcher = cascadia.MustCompile("style, link[rel~=stylesheet]")
	classMatcher      = cascadia.MustCompile("[class]")
)

type htmlDocument struct {
	doc *goquery.Document
}

func parseHTMLDocument(markup string) (*htmlDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &htmlDocument{doc: doc}, nil
}

func (d *htmlDocument) nodes(m goquery.Matcher) []node {
	var ret []node
	d.doc.FindMatcher(m).Each(func(i int, sel *goquery.Selection) {
		ret = append(ret, htmlNode{sel})
	})
	return ret
}

func (d *htmlDocument) stylesheetNodes() []node {
	return d.nodes(stylesheetMatcher)
}

func (d *htmlDocument) classNodes() []node {
	return d.nodes(classMatcher)
}

// render writes the whole document including a doctype, if the input had
// one.
func (d *htmlDocument) render() (string, error) {
	return d.doc.Html()
}

type htmlNode struct {
	sel *goquery.Selection
}

func (n htmlNode) name() string                   { return goquery.NodeName(n.sel) }
func (n htmlNode) attr(key string) (string, bool) { return n.sel.Attr(key) }
func (n htmlNode) setAttr(key, val string)        { n.sel.SetAttr(key, val) }
func (n htmlNode) removeAttr(key string)          { n.sel.RemoveAttr(key) }
func (n htmlNode) text() string                   { return n.sel.Text() }
func (n htmlNode) remove()                        { n.sel.Remove() }
