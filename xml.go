package cssinline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

type xmlDocument struct {
	doc *etree.Document
}

func parseXMLDocument(markup string) (*xmlDocument, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromString(markup); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if doc.Root() == nil {
		return nil, ErrParse
	}
	return &xmlDocument{doc: doc}, nil
}

// elements walks the tree depth first and returns the elements accepted by
// keep.
func (d *xmlDocument) elements(keep func(*etree.Element) bool) []node {
	var ret []node
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if keep(e) {
			ret = append(ret, xmlNode{e})
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(d.doc.Root())
	return ret
}

func (d *xmlDocument) stylesheetNodes() []node {
	return d.elements(func(e *etree.Element) bool {
		switch e.Tag {
		case "style":
			return true
		case "link":
			return slices.Contains(strings.Fields(e.SelectAttrValue("rel", "")), "stylesheet")
		}
		return false
	})
}

func (d *xmlDocument) classNodes() []node {
	return d.elements(func(e *etree.Element) bool {
		return e.SelectAttr("class") != nil
	})
}

func (d *xmlDocument) render() (string, error) {
	return d.doc.WriteToString()
}

type xmlNode struct {
	e *etree.Element
}

func (n xmlNode) name() string { return n.e.Tag }

func (n xmlNode) attr(key string) (string, bool) {
	a := n.e.SelectAttr(key)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

func (n xmlNode) setAttr(key, val string) { n.e.CreateAttr(key, val) }
func (n xmlNode) removeAttr(key string)   { n.e.RemoveAttr(key) }
func (n xmlNode) text() string            { return n.e.Text() }

func (n xmlNode) remove() {
	if parent := n.e.Parent(); parent != nil {
		parent.RemoveChild(n.e)
	}
}
