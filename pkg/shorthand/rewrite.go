package shorthand

import "regexp"

var (
	// A-z is kept as written: it also admits [\]^_` between the cases.
	hexColorPattern = regexp.MustCompile(`([^"])(#[0-9a-zA-z]{6})([^"])`)
	colonPattern    = regexp.MustCompile(`:([^ ])`)
)

// wrapBraces turns the input into a flow mapping unless it already opens one.
func wrapBraces(text string) string {
	if text[0] != '{' {
		return "{" + text + "}"
	}
	return text
}

// quoteHexColors wraps #rrggbb tokens in double quotes so YAML does not read
// them as comments. The characters on either side must be present and must
// not be quotes; they are put back unchanged. Matches do not overlap, so two
// colors separated by a single character only get the first one quoted.
func quoteHexColors(text string) string {
	return hexColorPattern.ReplaceAllString(text, `${1}"${2}"${3}`)
}

// spaceColons inserts a space after every colon not already followed by one.
func spaceColons(text string) string {
	return colonPattern.ReplaceAllString(text, `: ${1}`)
}

func rewrite(input string) (string, error) {
	if input == "" {
		return "", ErrEmptyInput
	}
	text := wrapBraces(input)
	text = quoteHexColors(text)
	text = spaceColons(text)
	return text, nil
}
