// Package output provides formatting utilities for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Shared styles for pretty terminal output.
var (
	Header  = color.New(color.Bold, color.FgCyan)
	Success = color.New(color.FgGreen)
	Dim     = color.New(color.FgHiBlack)
)

// WriteJSON encodes a value as pretty-printed JSON on stdout.
func WriteJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteError writes an error message to stderr.
func WriteError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
