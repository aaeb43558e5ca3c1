// Package jsonfmt renders JSON text for terminals: indented and, optionally,
// syntax highlighted.
package jsonfmt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrInvalidJSON is returned by Format when the input is not valid JSON.
var ErrInvalidJSON = errors.New("jsonfmt: invalid JSON")

type Highlighter string

const (
	HighlighterChroma Highlighter = "chroma"
	HighlighterPretty Highlighter = "pretty"
	HighlighterNone   Highlighter = "none"
)

// Options controls indentation and coloring.
type Options struct {
	// Indent is the number of spaces per nesting level.
	Indent      int
	SortKeys    bool
	Highlighter Highlighter
	// Style and Formatter name a chroma style and terminal formatter.
	Style     string
	Formatter string
}

func DefaultOptions() *Options {
	return &Options{
		Indent:      4,
		Highlighter: HighlighterChroma,
		Style:       "monokai",
		Formatter:   "terminal256",
	}
}

// Format validates text, indents it and colorizes the result.
func Format(text string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if !gjson.Valid(text) {
		return "", fmt.Errorf("%w: %s", ErrInvalidJSON, preview(text))
	}
	return Colorize(Indent(text, opts), opts), nil
}

// Indent lays out every object member and array element on its own line.
// The input must already be valid JSON.
func Indent(text string, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	out := pretty.PrettyOptions([]byte(text), &pretty.Options{
		Width:    0,
		Indent:   strings.Repeat(" ", opts.Indent),
		SortKeys: opts.SortKeys,
	})
	return strings.TrimSuffix(string(out), "\n")
}

// Colorize adds ANSI escapes to JSON text. An unknown chroma formatter name
// leaves the text unchanged; an unknown style uses chroma's fallback style.
func Colorize(text string, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	switch opts.Highlighter {
	case HighlighterNone:
		return text
	case HighlighterPretty:
		return string(pretty.Color([]byte(text), pretty.TerminalStyle))
	default:
		return highlight(text, opts.Style, opts.Formatter)
	}
}

func highlight(src, styleName, formatterName string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		return src
	}
	lexer = chroma.Coalesce(lexer)
	formatter := formatters.Get(formatterName)
	iter, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Get(styleName), iter); err != nil {
		return src
	}
	return buf.String()
}

func preview(text string) string {
	const limit = 40
	if len(text) > limit {
		return fmt.Sprintf("%q...", text[:limit])
	}
	return fmt.Sprintf("%q", text)
}
