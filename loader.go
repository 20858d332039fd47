package cssinline

import (
	"compress/gzip"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Loader reads external stylesheets from the file system or the network.
type Loader struct {
	// BaseURL resolves protocol relative references and relative references
	// that do not exist on the file system.
	BaseURL string
	// BasePath is the directory relative file names are resolved against.
	BasePath string
	// FileFinder, if set, is asked first for the location of a file.
	FileFinder func(string) (string, error)
	// Client is used for http and https URLs. nil means http.DefaultClient.
	Client *http.Client
	log    *zap.Logger
}

// NewLoader returns a Loader configured from opts.
func NewLoader(opts Options) *Loader {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		BaseURL:    opts.BaseURL,
		BasePath:   opts.BasePath,
		FileFinder: opts.FileFinder,
		Client:     opts.HTTPClient,
		log:        log.Named("loader"),
	}
}

// Load returns the contents of the stylesheet at href, which is a URL or a
// file name.
func (l *Loader) Load(href string) (string, error) {
	if strings.HasPrefix(href, "//") {
		// then we have to rely on the base url
		if strings.Contains(l.BaseURL, "https://") {
			href = "https:" + href
		} else {
			href = "http:" + href
		}
	}
	if isHTTP(href) {
		return l.loadURL(href)
	}

	filename, err := l.findFile(href)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filename); err == nil {
		l.log.Debug("Reading stylesheet", zap.String("file", filename))
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if l.BaseURL != "" {
		base, err := url.Parse(l.BaseURL)
		if err != nil {
			return "", fmt.Errorf("invalid base url %q: %w", l.BaseURL, err)
		}
		ref, err := url.Parse(href)
		if err != nil {
			return "", fmt.Errorf("invalid stylesheet reference %q: %w", href, err)
		}
		if resolved := base.ResolveReference(ref).String(); isHTTP(resolved) {
			return l.loadURL(resolved)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrStylesheetNotFound, filename)
}

// findFile returns the absolute path of the file. If the function in
// Loader.FileFinder is set, it is used to find the file. Otherwise relative
// names are joined to the base path.
func (l *Loader) findFile(filename string) (string, error) {
	if l.FileFinder != nil {
		if loc, err := l.FileFinder(filename); loc != "" && err == nil {
			return loc, nil
		}
	}
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	return filepath.Abs(filepath.Join(l.BasePath, filename))
}

func (l *Loader) loadURL(u string) (string, error) {
	l.log.Debug("Fetching stylesheet", zap.String("url", u))
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(u)
	if err != nil {
		return "", fmt.Errorf("fetching stylesheet: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching stylesheet %s: %s", u, resp.Status)
	}

	var r io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("reading stylesheet %s: %w", u, err)
		}
		defer gz.Close()
		r = gz
	}
	r, err = decodeCharset(r, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("reading stylesheet %s: %w", u, err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stylesheet %s: %w", u, err)
	}
	return string(data), nil
}

// decodeCharset converts r to UTF-8 according to the charset parameter of
// the content type. Without a charset the data is taken as UTF-8.
func decodeCharset(r io.Reader, contentType string) (io.Reader, error) {
	label := "utf-8"
	if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
		label = params["charset"]
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	if name == "utf-8" {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
