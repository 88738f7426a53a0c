// Package printer renders arena images in human-readable and JSON form.
// The output is a debugging aid: one row per physical cell, free blocks
// flagged, link words shown as the arena stores them.
package printer

import (
	"fmt"
	"io"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs the classic dump table.
	FormatText Format = "text"

	// FormatJSON outputs a machine-readable summary.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies the output format (text, json).
	// Default: FormatText
	Format Format

	// ShowFree includes free blocks in the output.
	// Default: true
	ShowFree bool

	// ShowLinks includes the raw link words on each row (text format only).
	// Default: true
	ShowLinks bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:    FormatText,
		ShowFree:  true,
		ShowLinks: true,
	}
}

// Printer handles formatted output of arena structures.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	return &Printer{opts: opts, writer: w}
}

// Print renders the arena image data according to the configured options.
func (p *Printer) Print(data []byte) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(data)
	case FormatText, "":
		return p.printText(data)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}
