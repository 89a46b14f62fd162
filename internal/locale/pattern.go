package locale

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadPattern is returned for patterns using letters outside the supported
// token set or with an unterminated quote.
var ErrBadPattern = errors.New("bad date pattern")

type token struct {
	field   byte // 0 for literals
	width   int
	literal string
}

const supportedFields = "yMdEHhmsa"

// tokenize splits a pattern into runs of one field letter and literal text.
// Text inside single quotes is literal; '' is a single quote.
func tokenize(pattern string) ([]token, error) {
	return scan(pattern, false)
}

// tokenizeLenient is tokenize for formatting: unsupported letters and an
// unterminated quote are kept as literal text.
func tokenizeLenient(pattern string) []token {
	toks, _ := scan(pattern, true)
	return toks
}

func scan(pattern string, lenient bool) ([]token, error) {
	var out []token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, token{literal: lit.String()})
			lit.Reset()
		}
	}

	rs := []rune(pattern)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\'':
			if i+1 < len(rs) && rs[i+1] == '\'' {
				lit.WriteRune('\'')
				i++
				continue
			}
			j := i + 1
			for ; j < len(rs); j++ {
				if rs[j] != '\'' {
					continue
				}
				if j+1 < len(rs) && rs[j+1] == '\'' {
					j++
					continue
				}
				break
			}
			if j >= len(rs) {
				if lenient {
					lit.WriteString(string(rs[i:]))
					i = j
					continue
				}
				return nil, fmt.Errorf("%w: unterminated quote in %q", ErrBadPattern, pattern)
			}
			lit.WriteString(strings.ReplaceAll(string(rs[i+1:j]), "''", "'"))
			i = j
		case isASCIILetter(r):
			j := i
			for j < len(rs) && rs[j] == r {
				j++
			}
			if !strings.ContainsRune(supportedFields, r) {
				if !lenient {
					return nil, fmt.Errorf("%w: unsupported token %q in %q", ErrBadPattern, string(r), pattern)
				}
				lit.WriteString(string(rs[i:j]))
				i = j - 1
				continue
			}
			flush()
			out = append(out, token{field: byte(r), width: j - i})
			i = j - 1
		default:
			lit.WriteRune(r)
		}
	}
	flush()
	return out, nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
