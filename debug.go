package cssinline

import (
	"fmt"
	"sort"
	"strings"
)

func indent(s string) string {
	ret := []string{}
	for _, line := range strings.Split(s, "\n") {
		ret = append(ret, "    "+line)
	}
	return strings.Join(ret, "\n")
}

func (b sBlock) String() string {
	ret := []string{}
	var firstline string
	if b.name != "" {
		firstline = fmt.Sprintf("@%s ", b.name)
	}
	firstline = firstline + b.componentValues.String() + " {"
	ret = append(ret, firstline)
	for _, v := range b.rules {
		ret = append(ret, "    "+v.key.String()+":"+stringValue(v.value)+";")
	}
	for _, v := range b.childAtRules {
		ret = append(ret, indent(v.String()))
	}
	for _, v := range b.blocks {
		ret = append(ret, indent(v.String()))
	}
	ret = append(ret, "}")
	return strings.Join(ret, "\n")
}

func (t tokenstream) String() string {
	ret := []string{}
	for _, tok := range t {
		ret = append(ret, tok.Value)
	}
	return strings.Join(ret, "")
}

// String lists the table as a stylesheet, sorted by selector.
func (rt RuleTable) String() string {
	selectors := make([]string, 0, len(rt))
	for sel := range rt {
		selectors = append(selectors, sel)
	}
	sort.Strings(selectors)
	ret := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		ret = append(ret, sel+" {"+rt[sel]+"}")
	}
	return strings.Join(ret, "\n")
}
