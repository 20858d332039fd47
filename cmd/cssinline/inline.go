package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/boxesandglue/cssinline"
)

func runInline(cmd *cobra.Command, args []string) error {
	colors := useColors()
	log := newLogger(getBoolWithDefault("verbose", false), getBoolWithDefault("quiet", false), colors)
	defer func() { _ = log.Sync() }()

	files, err := expandInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no input files")
	}

	opts := buildOptions(log)
	// one merger for all documents of this run
	opts.Merger = cssinline.NewMerger()
	inliner := cssinline.NewInliner(opts)

	outputDir := getStringWithDefault("output-dir", "")
	if outputDir == "" {
		if len(files) > 1 {
			return fmt.Errorf("%d input files need --output-dir", len(files))
		}
		out, err := inliner.TransformFile(files[0])
		if err != nil {
			return fmt.Errorf("%s: %w", files[0], err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for _, fn := range files {
		fn := fn
		wg.Add(1)
		go func() {
			defer wg.Done()
			dest := outputPath(outputDir, fn)
			if err := inlineFile(inliner, fn, dest); err != nil {
				log.Error("Inlining failed", zap.String("file", fn), zap.Error(err))
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", fn, err))
				mu.Unlock()
				return
			}
			log.Info(RenderStyle(StyleGreen, "Inlined", colors), zap.String("file", fn), zap.String("output", dest))
		}()
	}
	wg.Wait()

	if n := len(multierr.Errors(errs)); n > 0 {
		log.Error(RenderStyle(StyleRed, "Some documents failed", colors), zap.Int("failed", n), zap.Int("total", len(files)))
	}
	return errs
}

func inlineFile(inliner *cssinline.Inliner, src, dest string) error {
	out, err := inliner.TransformFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(out), 0o644)
}

// expandInputs resolves glob patterns to files. Arguments without glob
// characters are taken literally, so a missing file is reported by the
// transformation rather than silently dropped.
func expandInputs(args []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, arg := range args {
		matches := []string{arg}
		if strings.ContainsAny(arg, "*?[{") {
			var err error
			if matches, err = doublestar.FilepathGlob(arg, doublestar.WithFilesOnly()); err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
			sort.Strings(matches)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// outputPath keeps the directory structure of relative inputs below dir.
// Absolute inputs and inputs outside the working directory are placed
// directly into dir.
func outputPath(dir, fn string) string {
	rel := filepath.Clean(fn)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(rel)
	}
	return filepath.Join(dir, rel)
}
