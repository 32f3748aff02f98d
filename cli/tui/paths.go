package tui

import (
	"errors"
	"strings"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// splitPaths splits pasted or typed text into paths. Terminals deliver
// dropped files as space-separated paths, quoting or backslash-escaping
// names that contain spaces.
func splitPaths(s string) ([]string, error) {
	var (
		paths []string
		cur   strings.Builder
		quote rune
		have  bool
	)
	flush := func() {
		if have {
			paths = append(paths, cur.String())
		}
		cur.Reset()
		have = false
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			have = true
		case r == '\\' && i+1 < len(runes):
			i++
			cur.WriteRune(runes[i])
			have = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
			have = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	flush()
	return paths, nil
}
