// Package shorthand converts quick, loosely typed key:value snippets into
// JSON objects.
//
// The input is rewritten into a YAML flow mapping and parsed with YAML 1.1
// scalar rules, so unquoted tokens are guessed: `2` is a number, `no` is
// false and `#ff0000` would start a comment if it were not quoted first.
//
//	shorthand.Normalize("color:#ff0000,transition:2")
//	// {"color": "#ff0000", "transition": 2}
//
// The guessing is imprecise on purpose and is not corrected.
package shorthand
