package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssinline [flags] FILE|GLOB...",
	Short: "Inline CSS class rules into style attributes",
	Long: `Reads HTML or XML documents, collects the class rules of their
<style> and linked stylesheets and writes the declarations into the
style attribute of every element that carries the class.

Inputs may be glob patterns such as "mail/**/*.html". A single input is
written to stdout unless --output-dir is given.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE:          runInline,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", ".cssinline.yaml", "Config file path")
	f.BoolP("verbose", "v", false, "Enable debug logging")
	f.Bool("quiet", false, "Only report errors")
	f.Bool("color", false, "Force color output")

	f = rootCmd.Flags()
	f.String("base-url", "", "URL relative stylesheet references are resolved against")
	f.String("base-path", "", "Directory relative stylesheet paths are resolved against (default: directory of the input)")
	f.Bool("keep-style-tags", false, "Leave <style> elements in the document")
	f.Bool("remove-classes", true, "Remove class attributes after inlining")
	f.Bool("strip-important", true, "Remove !important from the output")
	f.StringSlice("external-style", nil, "Additional stylesheets, read after the document's own")
	f.String("method", "html", "Document type: html|xml")
	f.Bool("disable-validation", false, "Use the recovering CSS parser instead of rejecting invalid stylesheets")
	f.StringP("output-dir", "o", "", "Write the results into this directory")

	rootCmd.AddCommand(versionCmd)
}
