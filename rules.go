package cssinline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"go.uber.org/zap"
)

// RuleTable maps a class selector such as ".foo" to the declarations of the
// last rule for that selector, serialized as "prop1:value1;prop2:value2".
type RuleTable map[string]string

// classSelector is a sanity check for selectors starting with a dot: the
// class name has to start with a letter, an underscore or a hyphen.
var classSelector = regexp.MustCompile(`(?i)^\.[A-Z_-]`)

// Extractor reads the class rules of stylesheets.
type Extractor struct {
	// DisableValidation makes the extractor use a parser that skips over
	// malformed input instead of returning an error.
	DisableValidation bool
	log               *zap.Logger
}

// NewExtractor returns an Extractor. log may be nil.
func NewExtractor(disableValidation bool, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		DisableValidation: disableValidation,
		log:               log.Named("extractor"),
	}
}

// Extract returns the class rules of cssText. Empty input gives an empty
// table.
func (e *Extractor) Extract(cssText string) (RuleTable, error) {
	rt := RuleTable{}
	if err := e.ExtractInto(rt, cssText); err != nil {
		return nil, err
	}
	return rt, nil
}

// ExtractInto adds the class rules of cssText to rt. Rules for a selector
// that is already in the table replace the existing entry. At-rules (@media,
// @font-face, ...) are never inlined and get skipped.
func (e *Extractor) ExtractInto(rt RuleTable, cssText string) error {
	if strings.TrimSpace(cssText) == "" {
		return nil
	}
	if e.DisableValidation {
		e.extractRecovering(rt, cssText)
		return nil
	}
	return e.extractValidating(rt, cssText)
}

func (e *Extractor) extractValidating(rt RuleTable, cssText string) error {
	sheet, err := parser.Parse(cssText)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCSSParse, err)
	}
	for _, rule := range sheet.Rules {
		if rule.Kind != css.QualifiedRule {
			e.log.Debug("Skipping at-rule", zap.String("rule", rule.Name))
			continue
		}
		var block DeclarationBlock
		for _, decl := range rule.Declarations {
			value := strings.TrimSpace(decl.Value)
			if value == "" {
				continue
			}
			if decl.Important {
				value += " !important"
			}
			block = block.Set(decl.Property, value)
		}
		e.store(rt, rule.Selectors, block)
	}
	return nil
}

func (e *Extractor) extractRecovering(rt RuleTable, cssText string) {
	sheet := consumeBlock(tokenizeCSSString(cssText), false)
	e.log.Debug("Parsed stylesheet", zap.Stringer("sheet", sheet))
	for _, atrule := range sheet.childAtRules {
		e.log.Debug("Skipping at-rule", zap.String("rule", "@"+atrule.name))
	}
	for _, rule := range sheet.blocks {
		var block DeclarationBlock
		for _, q := range rule.rules {
			key := strings.TrimSpace(q.key.String())
			value := stringValue(q.value)
			if key == "" || value == "" {
				continue
			}
			block = block.Set(key, value)
		}
		e.store(rt, strings.Split(rule.componentValues.String(), ","), block)
	}
}

func (e *Extractor) store(rt RuleTable, selectors []string, block DeclarationBlock) {
	bulk := block.join(";")
	for _, sel := range selectors {
		sel = strings.TrimSpace(sel)
		if sel == "" || !strings.HasPrefix(sel, ".") {
			continue
		}
		if !classSelector.MatchString(sel) {
			e.log.Debug("Rejecting selector", zap.String("selector", sel))
			continue
		}
		rt[sel] = bulk
	}
}
