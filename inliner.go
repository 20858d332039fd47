package cssinline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	cdataRegexp     = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	importantRegexp = regexp.MustCompile(`\s*!important`)
)

// Inliner turns the class rules of a document's stylesheets into style
// attributes. An Inliner can be used for any number of documents, also
// concurrently.
type Inliner struct {
	opts      Options
	log       *zap.Logger
	merger    *Merger
	extractor *Extractor
	loader    *Loader
}

// NewInliner returns an Inliner for the given options.
func NewInliner(opts Options) *Inliner {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	opts.Logger = log
	merger := opts.Merger
	if merger == nil {
		merger = defaultMerger
	}
	if opts.Method == "" {
		opts.Method = MethodHTML
	}
	return &Inliner{
		opts:      opts,
		log:       log.Named("inliner"),
		merger:    merger,
		extractor: NewExtractor(opts.DisableValidation, log),
		loader:    NewLoader(opts),
	}
}

// Transform is a shortcut for NewInliner(opts).Transform(markup).
func Transform(markup string, opts Options) (string, error) {
	return NewInliner(opts).Transform(markup)
}

// TransformFile reads an HTML or XML file and returns the transformed
// markup. Unless a base path is configured, relative stylesheet references
// are resolved against the directory of the file.
func (in *Inliner) TransformFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	if in.opts.BasePath != "" {
		return in.Transform(string(data))
	}
	opts := in.opts
	opts.BasePath = filepath.Dir(filename)
	opts.Merger = in.merger
	return NewInliner(opts).Transform(string(data))
}

// Transform parses the markup, reads all stylesheets, writes the style
// attributes and returns the serialized document.
func (in *Inliner) Transform(markup string) (string, error) {
	markup = strings.TrimSpace(markup)
	if markup == "" {
		return "", ErrParse
	}
	doc, err := in.parseDocument(markup)
	if err != nil {
		return "", err
	}

	rules := RuleTable{}
	if err = in.collectStylesheets(doc, rules); err != nil {
		return "", err
	}
	for _, href := range in.opts.ExternalStyles {
		cssText, err := in.loader.Load(href)
		if err != nil {
			return "", err
		}
		if err = in.extractor.ExtractInto(rules, cssText); err != nil {
			return "", fmt.Errorf("%s: %w", href, err)
		}
	}
	in.log.Debug("Collected rules", zap.Int("rules", len(rules)))

	in.annotate(doc, rules)

	out, err := doc.render()
	if err != nil {
		return "", err
	}
	if in.opts.Method == MethodXML {
		out = cdataRegexp.ReplaceAllString(out, "/*<![CDATA[*/${1}/*]]>*/")
	}
	if in.opts.StripImportant {
		out = importantRegexp.ReplaceAllString(out, "")
	}
	return out, nil
}

func (in *Inliner) parseDocument(markup string) (document, error) {
	switch in.opts.Method {
	case MethodHTML:
		return parseHTMLDocument(markup)
	case MethodXML:
		return parseXMLDocument(markup)
	}
	return nil, fmt.Errorf("unknown method %q", in.opts.Method)
}

// collectStylesheets reads the <style> and linked stylesheets of the
// document in document order. Stylesheets for media other than screen are
// ignored and stay in the document.
func (in *Inliner) collectStylesheets(doc document, rules RuleTable) error {
	for _, n := range doc.stylesheetNodes() {
		if media, _ := n.attr("media"); media != "" && media != "screen" {
			in.log.Debug("Ignoring stylesheet", zap.String("media", media))
			continue
		}
		isStyle := n.name() == "style"
		var cssText string
		if isStyle {
			cssText = n.text()
		} else {
			href, _ := n.attr("href")
			if href == "" {
				continue
			}
			var err error
			if cssText, err = in.loader.Load(href); err != nil {
				return err
			}
		}
		if err := in.extractor.ExtractInto(rules, cssText); err != nil {
			return err
		}
		if !in.opts.KeepStyleTags || !isStyle {
			n.remove()
		}
	}
	return nil
}

// annotate merges the rules of each class of an element into its style
// attribute, in the order the classes are listed.
func (in *Inliner) annotate(doc document, rules RuleTable) {
	for _, n := range doc.classNodes() {
		classes, _ := n.attr("class")
		for _, class := range strings.Fields(classes) {
			decls, ok := rules["."+class]
			if !ok {
				continue
			}
			old, hasStyle := n.attr("style")
			style := in.merger.Merge(old, decls, "")
			if style == "" && !hasStyle {
				continue
			}
			n.setAttr("style", style)
		}
		if in.opts.RemoveClasses {
			n.removeAttr("class")
		}
	}
}
