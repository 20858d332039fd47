package cssinline

import (
	"strings"
	"sync"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Merger merges CSS declarations into style attribute values. All parsing
// done by a Merger is serialized through its lock, so a single Merger can be
// shared by any number of goroutines.
type Merger struct {
	mu sync.Mutex
}

// NewMerger returns a Merger with its own lock.
func NewMerger() *Merger {
	return &Merger{}
}

var defaultMerger = NewMerger()

// MergeStyles merges newDeclarations into oldStyle using the package wide
// Merger. See Merger.Merge.
func MergeStyles(oldStyle, newDeclarations, qualifier string) string {
	return defaultMerger.Merge(oldStyle, newDeclarations, qualifier)
}

// Merge returns oldStyle with newDeclarations merged into the group of the
// given qualifier ("" for the base declarations, ":hover" etc. for pseudo
// classes and elements).
//
//	Merge("font-size:1px; color: red", "font-size:2px; font-weight: bold", "")
//	=> "color:red; font-size:2px; font-weight:bold"
//
// Declarations of the target group that are redefined by newDeclarations are
// dropped, the others are kept before the new ones. Groups of other
// qualifiers are passed through untouched.
func (m *Merger) Merge(oldStyle, newDeclarations, qualifier string) string {
	news, style := m.parse(oldStyle, newDeclarations)

	newKeys := make(map[string]bool, len(news))
	for _, d := range news {
		newKeys[d.Property] = true
	}
	target, _ := style.Group(qualifier)
	merged := make(DeclarationBlock, 0, len(target)+len(news))
	for _, d := range target {
		if !newKeys[d.Property] {
			merged = append(merged, d)
		}
	}
	merged = append(merged, news...)

	return style.With(qualifier, merged).String()
}

// ParseStyle decodes a style attribute value into its qualifier groups.
func (m *Merger) ParseStyle(text string) Style {
	_, style := m.parse(text, "")
	return style
}

// parse is the only place where the CSS parser runs.
func (m *Merger) parse(oldStyle, newDeclarations string) (DeclarationBlock, Style) {
	m.mu.Lock()
	defer m.mu.Unlock()

	news := parseDeclarations(newDeclarations)
	groups := splitGroups(oldStyle)
	style := make(Style, 0, len(groups))
	for _, g := range groups {
		style = append(style, QualifiedGroup{Qualifier: g.qualifier, Block: parseDeclarations(g.body)})
	}
	return news, style
}

// lexToken is a token of a declaration list, copied from the lexer.
type lexToken struct {
	tt   css.TokenType
	text string
}

// parseDeclarations reads a declaration list such as "color: red; margin:0".
// Property names and values are kept as written, only runs of white space
// in a value collapse to a single space. Malformed declarations and
// declarations without a value are skipped, a repeated property keeps the
// last value.
func parseDeclarations(text string) DeclarationBlock {
	var block DeclarationBlock
	if strings.TrimSpace(text) == "" {
		return block
	}
	l := css.NewLexer(parse.NewInputString(text))
	var decl []lexToken
	level := 0
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return addDeclaration(block, decl)
		case css.CommentToken:
			continue
		case css.SemicolonToken:
			if level == 0 {
				block = addDeclaration(block, decl)
				decl = decl[:0]
				continue
			}
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			level++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if level > 0 {
				level--
			}
		}
		decl = append(decl, lexToken{tt: tt, text: string(data)})
	}
}

// addDeclaration appends the declaration "name: value" in toks to block. The
// name must be a single identifier.
func addDeclaration(block DeclarationBlock, toks []lexToken) DeclarationBlock {
	colon := -1
	for i, t := range toks {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon < 0 {
		return block
	}
	var name []lexToken
	for _, t := range toks[:colon] {
		if t.tt != css.WhitespaceToken {
			name = append(name, t)
		}
	}
	if len(name) != 1 || (name[0].tt != css.IdentToken && name[0].tt != css.CustomPropertyNameToken) {
		return block
	}
	value := tokensValue(toks[colon+1:])
	if value == "" {
		return block
	}
	return block.Set(name[0].text, value)
}

// tokensValue joins the value tokens of a declaration, collapsing runs of
// white space.
func tokensValue(tokens []lexToken) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.tt == css.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(t.text)
	}
	return strings.TrimSpace(sb.String())
}
