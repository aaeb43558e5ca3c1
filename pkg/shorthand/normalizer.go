package shorthand

import (
	"github.com/beehive/jxunxo/pkg/logger"
)

// Normalizer turns key:value shorthand into JSON. It holds no mutable state
// and is safe for concurrent use.
type Normalizer struct {
	log logger.Logger
}

type Option func(*Normalizer)

// WithLogger makes the normalizer log each pipeline stage at debug level.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.log = l
		}
	}
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{log: logger.NewLogger(logger.TestConfig())}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Rewrite applies the textual passes (brace wrapping, hex color quoting,
// colon spacing) and returns the YAML text handed to the parser.
func (n *Normalizer) Rewrite(input string) (string, error) {
	text, err := rewrite(input)
	if err != nil {
		return "", err
	}
	n.log.Debug("Rewrote shorthand", "input", input, "yaml", text)
	return text, nil
}

// Parse rewrites input and parses it into an ordered mapping.
func (n *Normalizer) Parse(input string) (*Mapping, error) {
	text, err := n.Rewrite(input)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(text)
	if err != nil {
		n.log.Debug("Failed to parse rewritten shorthand", "yaml", text, "err", err)
		return nil, err
	}
	return doc, nil
}

// Normalize converts shorthand such as `color:#ff0000,transition:2` into
// `{"color": "#ff0000", "transition": 2}`.
func (n *Normalizer) Normalize(input string) (string, error) {
	doc, err := n.Parse(input)
	if err != nil {
		return "", err
	}
	out := Encode(Map(doc))
	n.log.Debug("Normalized shorthand", "keys", doc.Len(), "json", out)
	return out, nil
}

var std = NewNormalizer()

func Normalize(input string) (string, error) {
	return std.Normalize(input)
}

func Rewrite(input string) (string, error) {
	return std.Rewrite(input)
}

func Parse(input string) (*Mapping, error) {
	return std.Parse(input)
}
