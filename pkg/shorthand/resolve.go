package shorthand

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Plain scalar patterns follow the YAML 1.1 implicit resolver. Exponents
// need an explicit sign. Floats also accept a signed exponent without a
// fraction ("1e+16") so that encoded output parses back to the same value.
var (
	nullPattern  = regexp.MustCompile(`^(?:~|null|Null|NULL|)$`)
	truePattern  = regexp.MustCompile(`^(?:yes|Yes|YES|true|True|TRUE|on|On|ON)$`)
	falsePattern = regexp.MustCompile(`^(?:no|No|NO|false|False|FALSE|off|Off|OFF)$`)
	intPattern   = regexp.MustCompile(
		`^(?:[-+]?0b[0-1_]+|[-+]?0[0-7_]+|[-+]?(?:0|[1-9][0-9_]*)|[-+]?0x[0-9a-fA-F_]+)$`,
	)
	floatPattern = regexp.MustCompile(
		`^(?:[-+]?[0-9][0-9_]*\.[0-9_]*(?:[eE][-+][0-9]+)?` +
			`|[-+]?[0-9][0-9_]*[eE][-+][0-9]+` +
			`|\.[0-9][0-9_]*(?:[eE][-+][0-9]+)?` +
			`|[-+]?\.(?:inf|Inf|INF)` +
			`|\.(?:nan|NaN|NAN))$`,
	)
)

// Resolve coerces an unquoted token. Rules are tried in order: null,
// boolean, integer, float; anything else stays a string.
//
// Boolean spellings include yes/no and on/off, so a value meant as the
// string "no" comes back as false.
func Resolve(plain string) Value {
	switch {
	case nullPattern.MatchString(plain):
		return Null()
	case truePattern.MatchString(plain):
		return Bool(true)
	case falsePattern.MatchString(plain):
		return Bool(false)
	case intPattern.MatchString(plain):
		if n, ok := parseInt(plain); ok {
			return Int(n)
		}
	case floatPattern.MatchString(plain):
		if f, ok := parseFloat(plain); ok {
			return Float(f)
		}
	}
	return String(plain)
}

func parseInt(text string) (*big.Int, bool) {
	s := strings.ReplaceAll(text, "_", "")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0b"):
		base, s = 2, s[2:]
	case strings.HasPrefix(s, "0x"):
		base, s = 16, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, s = 8, s[1:]
	}
	if s == "" {
		return new(big.Int), true
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, false
	}
	if neg {
		n.Neg(n)
	}
	return n, true
}

func parseFloat(text string) (float64, bool) {
	s := strings.ReplaceAll(text, "_", "")
	sign := 1.0
	body := s
	if body != "" && (body[0] == '-' || body[0] == '+') {
		if body[0] == '-' {
			sign = -1
		}
		body = body[1:]
	}
	switch strings.ToLower(body) {
	case ".inf":
		return math.Inf(int(sign)), true
	case ".nan":
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// out of range still yields the correctly signed infinity or zero
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
