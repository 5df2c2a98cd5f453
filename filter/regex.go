package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern is returned when a regex or glob operand cannot be
// compiled into a matching predicate.
var ErrInvalidPattern = errors.New("invalid pattern")

// CompileRegex compiles a regex operand into a matching predicate.
//
// The operand is a string in delimiter/flags syntax: "/pattern/flags". The
// flags i, m and s map to the corresponding match modes; the flags g, y and
// u affect only host-specific matching mechanics and are ignored. A bare
// string without delimiters is compiled as-is.
func CompileRegex(val any) (*regexp.Regexp, error) {
	src, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("%w: regex operand must be a string, got %T", ErrInvalidPattern, val)
	}

	pattern, flags := splitPattern(src)

	var mode strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			mode.WriteRune(f)
		case 'g', 'y', 'u':
			// Irrelevant to single-value matching.
		default:
			return nil, fmt.Errorf("%w: unsupported regex flag %q in %q", ErrInvalidPattern, string(f), src)
		}
	}
	if mode.Len() > 0 {
		pattern = "(?" + mode.String() + ")" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

func splitPattern(src string) (pattern, flags string) {
	if len(src) < 2 || src[0] != '/' {
		return src, ""
	}
	end := strings.LastIndexByte(src, '/')
	if end <= 0 {
		return src, ""
	}
	return src[1:end], src[end+1:]
}

// CompileGlob translates a shell glob operand into a matching predicate.
//
// The translation is anchored: "*" matches any run of characters, "?" a
// single character, and bracket classes pass through with a leading "!"
// mapped to negation. Everything else matches literally.
func CompileGlob(val any) (*regexp.Regexp, error) {
	src, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("%w: glob operand must be a string, got %T", ErrInvalidPattern, val)
	}

	re, err := regexp.Compile(globToRegex(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

func globToRegex(glob string) string {
	var b strings.Builder
	b.WriteString("^")
	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := classEnd(runes, i)
			if end < 0 {
				b.WriteString(regexp.QuoteMeta(string(r)))
				continue
			}
			class := runes[i+1 : end]
			b.WriteString("[")
			if len(class) > 0 && class[0] == '!' {
				b.WriteString("^")
				class = class[1:]
			}
			b.WriteString(string(class))
			b.WriteString("]")
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}

func classEnd(runes []rune, start int) int {
	for i := start + 1; i < len(runes); i++ {
		if runes[i] == ']' && i > start+1 {
			return i
		}
	}
	return -1
}
