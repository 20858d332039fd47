package cssinline

import (
	"strings"

	"github.com/speedata/css/scanner"
)

// tokenstream is a list of CSS tokens
type tokenstream []*scanner.Token

type qrule struct {
	key   tokenstream
	value tokenstream
}

// sBlock is a block with a selector
type sBlock struct {
	name            string      // only set if this is an at-rule
	componentValues tokenstream // the "selector"
	childAtRules    []*sBlock   // the block's at-rules, if any
	blocks          []*sBlock   // the at-rule's blocks, if any
	rules           []qrule     // the key-value pairs
}

// tokenizeCSSString returns the tokens of the stylesheet without comments.
// The scanner does not fail, unknown input ends up as delimiter tokens.
func tokenizeCSSString(contents string) tokenstream {
	var toks tokenstream
	s := scanner.New(contents)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.EOF, scanner.Error:
			return toks
		case scanner.Comment:
			continue
		}
		toks = append(toks, tok)
	}
}

// Return the position after the matching closing brace "}", or len(toks)+1
// if the block is not closed.
func findClosingBrace(toks tokenstream) int {
	level := 1
	for i, t := range toks {
		if t.Type == scanner.Delim {
			switch t.Value {
			case "{":
				level++
			case "}":
				level--
				if level == 0 {
					return i + 1
				}
			}
		}
	}
	return len(toks) + 1
}

// fixupComponentValues changes DELIM[.] + IDENT[foo] to IDENT[.foo]
func fixupComponentValues(toks tokenstream) tokenstream {
	toks = trimSpace(toks)
	for i := 0; i < len(toks)-1; i++ {
		var combine bool
		switch {
		case toks[i].Type == scanner.Delim && toks[i].Value == "." && toks[i+1].Type == scanner.Ident:
			toks[i+1].Value = "." + toks[i+1].Value
			combine = true
		case toks[i].Type == scanner.Delim && toks[i].Value == ":" && toks[i+1].Type == scanner.Ident:
			toks[i+1].Value = ":" + toks[i+1].Value
			combine = true
		case toks[i].Type == scanner.Hash && !strings.HasPrefix(toks[i].Value, "#"):
			toks[i].Value = "#" + toks[i].Value
		}
		if combine {
			toks = append(toks[:i], toks[i+1:]...)
		}
	}
	return toks
}

func trimSpace(toks tokenstream) tokenstream {
	i := 0
	for i < len(toks) && toks[i].Type == scanner.S {
		i++
	}
	toks = toks[i:]
	j := len(toks)
	for j > 0 && toks[j-1].Type == scanner.S {
		j--
	}
	return toks[:j]
}

// consumeBlock get the contents of a block. The name (in case of an at-rule)
// and the selector will be added later on. Declarations are only collected if
// inblock is set, a stray ";" at the top level just ends the current prelude.
func consumeBlock(toks tokenstream, inblock bool) sBlock {
	// This is the whole block between the opening { and closing }
	b := sBlock{}
	if len(toks) <= 1 {
		return b
	}
	i := 0
	// we might start with whitespace, skip it
	for i < len(toks) && toks[i].Type == scanner.S {
		i++
	}
	start := i
	colon := -1

	for ; i < len(toks); i++ {
		// There are only two cases: a key-value rule or something with
		// curly braces
		t := toks[i]
		if t.Type != scanner.Delim {
			continue
		}
		switch t.Value {
		case ":":
			if inblock {
				colon = i
			}
		case ";":
			if inblock && colon > start {
				b.rules = append(b.rules, qrule{
					key:   trimSpace(toks[start:colon]),
					value: trimSpace(toks[colon+1 : i]),
				})
			}
			colon = -1
			start = i + 1
		case "}":
			// unbalanced, drop what we have seen so far
			colon = -1
			start = i + 1
		case "{":
			// l is the length of the sub block including the closing brace
			l := findClosingBrace(toks[i+1:])
			subblock := toks[i+1 : min(i+l, len(toks))]
			if prelude := trimSpace(toks[start:i]); len(prelude) > 0 {
				if starttok := prelude[0]; starttok.Type == scanner.AtKeyword {
					nested := starttok.Value == "media" || starttok.Value == "supports"
					nb := consumeBlock(subblock, !nested)
					nb.name = starttok.Value
					nb.componentValues = fixupComponentValues(prelude[1:])
					b.childAtRules = append(b.childAtRules, &nb)
				} else {
					nb := consumeBlock(subblock, true)
					nb.componentValues = fixupComponentValues(prelude)
					b.blocks = append(b.blocks, &nb)
				}
			}
			i = i + l
			start = i + 1
			colon = -1
		}
	}
	if inblock && colon > start {
		b.rules = append(b.rules, qrule{key: trimSpace(toks[start:colon]), value: trimSpace(toks[colon+1:])})
	}
	return b
}

// stringValue turns value tokens back into CSS text. The scanner strips the
// markup from some tokens (the hash sign of colors, the url() wrapper, the
// quotes of strings), it is put back here.
func stringValue(toks tokenstream) string {
	var sb strings.Builder
	for _, tok := range toks {
		switch tok.Type {
		case scanner.S:
			sb.WriteByte(' ')
		case scanner.Hash:
			if !strings.HasPrefix(tok.Value, "#") {
				sb.WriteByte('#')
			}
			sb.WriteString(tok.Value)
		case scanner.URI:
			if strings.HasPrefix(tok.Value, "url(") {
				sb.WriteString(tok.Value)
			} else {
				sb.WriteString("url(" + tok.Value + ")")
			}
		case scanner.String:
			if strings.HasPrefix(tok.Value, `"`) || strings.HasPrefix(tok.Value, "'") {
				sb.WriteString(tok.Value)
			} else {
				sb.WriteString(`"` + strings.ReplaceAll(tok.Value, `"`, `\"`) + `"`)
			}
		case scanner.Function:
			sb.WriteString(tok.Value)
			if !strings.HasSuffix(tok.Value, "(") {
				sb.WriteByte('(')
			}
		default:
			sb.WriteString(tok.Value)
		}
	}
	return strings.TrimSpace(sb.String())
}
