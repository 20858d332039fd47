package cssinline

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	// ErrParse is returned when the markup has no root element.
	ErrParse = errors.New("could not parse the document")
	// ErrCSSParse is returned when a stylesheet is rejected by the validating
	// CSS parser.
	ErrCSSParse = errors.New("could not parse stylesheet")
	// ErrStylesheetNotFound is returned when an external stylesheet can be
	// resolved neither on the file system nor as a URL.
	ErrStylesheetNotFound = errors.New("could not find external style")
)

// Method selects the parser and serializer used for the document.
type Method string

const (
	// MethodHTML parses and renders the document as HTML5.
	MethodHTML Method = "html"
	// MethodXML parses and renders the document as XML (XHTML for example).
	MethodXML Method = "xml"
)

// Options controls a transformation. Use DefaultOptions to get the usual
// settings, the zero value keeps classes and !important markers.
type Options struct {
	// BaseURL is used to resolve protocol relative and relative stylesheet
	// references that are not found on the file system.
	BaseURL string
	// KeepStyleTags leaves the <style> elements in the document after their
	// rules have been read. Linked stylesheets are always removed.
	KeepStyleTags bool
	// RemoveClasses deletes all class attributes after inlining.
	RemoveClasses bool
	// StripImportant removes every "!important" from the output.
	StripImportant bool
	// ExternalStyles are read after the stylesheets found in the document.
	ExternalStyles []string
	// Method is MethodHTML (default) or MethodXML. The document is written
	// back without pretty printing, white space stays as it was parsed.
	Method Method
	// BasePath is the directory relative stylesheet paths are resolved
	// against.
	BasePath string
	// DisableValidation switches the rule extractor to the recovering CSS
	// parser.
	DisableValidation bool

	// Logger receives debug information. nil disables logging.
	Logger *zap.Logger
	// HTTPClient fetches remote stylesheets. nil means http.DefaultClient.
	HTTPClient *http.Client
	// FileFinder, if set, is asked first to locate a stylesheet file.
	FileFinder func(string) (string, error)
	// Merger merges the declarations. nil means the package wide merger.
	Merger *Merger
}

// DefaultOptions returns options that remove class attributes and
// !important markers and parse the document as HTML.
func DefaultOptions() Options {
	return Options{
		RemoveClasses:  true,
		StripImportant: true,
		Method:         MethodHTML,
	}
}
