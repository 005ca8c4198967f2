package pager

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured
const DefaultStyle = "monokai"

// ChromaHighlighter returns a line highlighter for files named like label,
// or nil when no lexer knows the name. Lines are tokenised one at a time,
// so constructs spanning lines are coloured per line.
func ChromaHighlighter(label, style string) func(string) string {
	lexer := lexers.Match(label)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return func(line string) string {
		if line == "" {
			return line
		}
		iterator, err := lexer.Tokenise(nil, line)
		if err != nil {
			return line
		}
		var buf bytes.Buffer
		if err := formatter.Format(&buf, s, iterator); err != nil {
			return line
		}
		return strings.ReplaceAll(buf.String(), "\n", "")
	}
}
