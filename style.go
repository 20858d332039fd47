package cssinline

import (
	"regexp"
	"slices"
	"sort"
	"strings"
)

// Declaration is a single property:value pair.
type Declaration struct {
	Property string
	Value    string
}

func (d Declaration) String() string {
	return d.Property + ":" + d.Value
}

// DeclarationBlock is the body of a rule: declarations in source order with
// unique property names.
type DeclarationBlock []Declaration

// Set assigns value to property and returns the (possibly grown) block. A
// property that is already present keeps its position.
func (b DeclarationBlock) Set(property, value string) DeclarationBlock {
	for i := range b {
		if b[i].Property == property {
			b[i].Value = value
			return b
		}
	}
	return append(b, Declaration{Property: property, Value: value})
}

// Get returns the value of property.
func (b DeclarationBlock) Get(property string) (string, bool) {
	for _, d := range b {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// Sorted returns a copy of the block ordered by property name.
func (b DeclarationBlock) Sorted() DeclarationBlock {
	s := slices.Clone(b)
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Property < s[j].Property
	})
	return s
}

func (b DeclarationBlock) join(sep string) string {
	parts := make([]string, 0, len(b))
	for _, d := range b {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, sep)
}

// String returns the declarations as "prop1:val1; prop2:val2".
func (b DeclarationBlock) String() string {
	return b.join("; ")
}

// QualifiedGroup holds the declarations for one qualifier such as ":hover".
// The empty qualifier denotes the base declarations of the element.
type QualifiedGroup struct {
	Qualifier string
	Block     DeclarationBlock
}

func (g QualifiedGroup) String() string {
	if g.Qualifier == "" {
		return g.Block.String()
	}
	return g.Qualifier + "{" + g.Block.String() + "}"
}

// Style is the decoded value of a style attribute, one group per qualifier.
type Style []QualifiedGroup

// Group returns the declarations for qualifier.
func (s Style) Group(qualifier string) (DeclarationBlock, bool) {
	for _, g := range s {
		if g.Qualifier == qualifier {
			return g.Block, true
		}
	}
	return nil, false
}

// With returns a new Style where the group for qualifier is replaced by
// block. A new group is appended if there is none for qualifier yet.
func (s Style) With(qualifier string, block DeclarationBlock) Style {
	ret := make(Style, 0, len(s)+1)
	found := false
	for _, g := range s {
		if g.Qualifier == qualifier {
			g = QualifiedGroup{Qualifier: qualifier, Block: block}
			found = true
		}
		ret = append(ret, g)
	}
	if !found {
		ret = append(ret, QualifiedGroup{Qualifier: qualifier, Block: block})
	}
	return ret
}

// String encodes the style. A style that consists of a single group is
// written as its declarations sorted by property name, without braces and
// without the qualifier even if it is not the base group. Otherwise the groups are ordered by the number of colons
// in the qualifier (so the base group comes first, then pseudo classes, then
// pseudo elements) and empty groups are left out.
func (s Style) String() string {
	if len(s) == 1 {
		if len(s[0].Block) == 0 {
			return ""
		}
		return s[0].Block.Sorted().String()
	}
	ordered := slices.Clone(s)
	sort.SliceStable(ordered, func(i, j int) bool {
		return strings.Count(ordered[i].Qualifier, ":") < strings.Count(ordered[j].Qualifier, ":")
	})
	parts := make([]string, 0, len(ordered))
	for _, g := range ordered {
		if len(g.Block) == 0 {
			continue
		}
		parts = append(parts, g.String())
	}
	return strings.Join(parts, " ")
}

var groupRegexp = regexp.MustCompile(`([:\-\w]*)\{([^}]+)\}`)

// rawGroup is a qualifier with its still unparsed declaration text.
type rawGroup struct {
	qualifier string
	body      string
}

// splitGroups cuts a style attribute value into its qualifier groups. Text
// outside of any qualifier{...} group belongs to the base group. A repeated
// qualifier replaces the body of the earlier group.
func splitGroups(text string) []rawGroup {
	matches := groupRegexp.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []rawGroup{{qualifier: "", body: text}}
	}
	var groups []rawGroup
	add := func(qualifier, body string) {
		for i := range groups {
			if groups[i].qualifier == qualifier {
				groups[i].body = body
				return
			}
		}
		groups = append(groups, rawGroup{qualifier: qualifier, body: body})
	}

	var outside strings.Builder
	prev := 0
	for _, m := range matches {
		outside.WriteString(text[prev:m[0]])
		outside.WriteString(" ")
		prev = m[1]
	}
	outside.WriteString(text[prev:])
	if base := strings.TrimSpace(outside.String()); base != "" {
		add("", base)
	}
	for _, m := range matches {
		add(text[m[2]:m[3]], text[m[4]:m[5]])
	}
	return groups
}
