// Package main provides the cssinline command, which moves the class rules
// of HTML and XML documents into style attributes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, RenderStyle(StyleRed, "Error:", useColors())+" "+err.Error())
		os.Exit(1)
	}
}
