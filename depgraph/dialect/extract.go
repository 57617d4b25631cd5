package dialect

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extract returns the directives d recognises in text, in file order.
// Comment content that does not form a directive is ignored.
func Extract(text []byte, d Dialect) []Directive {
	text = bytes.TrimPrefix(text, utf8BOM)

	switch d.Style {
	case NotebookComment:
		cell := d.Cell
		if cell == nil {
			cell = &pythonCell
		}
		source, spans, ok := notebookSource(text)
		if !ok {
			return Extract(text, *cell)
		}
		if cell.Style == LinePrefixComment && cell.Syntax != nil {
			return matchLinePrefix(splitLines(source), cell.Open, notebookCommentRows(spans, *cell))
		}
		return Extract(source, *cell)
	case Manual:
		return matchBare(splitLines(text))
	case BlockComment:
		return matchBlock(splitLines(text), d.Open, d.Close)
	default:
		var allowed map[int]bool
		if d.Syntax != nil {
			if rows, ok := commentRows(text, d.Syntax); ok {
				allowed = rows
			}
		}
		return matchLinePrefix(splitLines(text), d.Open, allowed)
	}
}

func splitLines(text []byte) []string {
	lines := strings.Split(string(text), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// matchLinePrefix handles comments that run from open to the end of the line.
// A nil allowed set admits every line.
func matchLinePrefix(lines []string, open string, allowed map[int]bool) []Directive {
	var directives []Directive
	for i, line := range lines {
		if allowed != nil && !allowed[i] {
			continue
		}
		body, ok := strings.CutPrefix(strings.TrimSpace(line), open)
		if !ok {
			continue
		}
		if d, ok := parseDirective(body, i+1); ok {
			directives = append(directives, d)
		}
	}
	return directives
}

// matchBlock handles open/close delimited comments, both on one line and
// spanning several lines with one directive per inner line.
func matchBlock(lines []string, open, close string) []Directive {
	var directives []Directive
	inBlock := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		var candidate string
		if !inBlock {
			body, ok := strings.CutPrefix(trimmed, open)
			if !ok {
				continue
			}
			idx := strings.Index(body, close)
			switch {
			case idx < 0:
				inBlock = true
				candidate = body
			case idx == len(body)-len(close):
				candidate = body[:idx]
			default:
				// comment closes mid-line and code follows
				continue
			}
		} else {
			idx := strings.Index(trimmed, close)
			if idx < 0 {
				candidate = trimmed
			} else {
				inBlock = false
				if strings.TrimSpace(trimmed[idx+len(close):]) != "" {
					continue
				}
				candidate = trimmed[:idx]
			}
			candidate = strings.TrimLeft(candidate, "* \t")
		}

		if d, ok := parseDirective(candidate, i+1); ok {
			directives = append(directives, d)
		}
	}
	return directives
}

// matchBare reads instruction files where directive lines carry no comment
// marker. Such files are mostly prose, so only an upper-case keyword followed
// by a colon counts.
func matchBare(lines []string) []Directive {
	var directives []Directive
	for i, line := range lines {
		if !isBareDirective(line) {
			continue
		}
		if d, ok := parseDirective(line, i+1); ok {
			directives = append(directives, d)
		}
	}
	return directives
}

// parseDirective reads "KEYWORD[:] value" from comment text with the markers
// already removed. Without a colon the value must be a single token, so prose
// such as "# output the results" is not taken for a directive.
func parseDirective(body string, line int) (Directive, bool) {
	body = strings.TrimSpace(body)

	end := 0
	for end < len(body) && isKeywordByte(body[end]) {
		end++
	}
	kind, ok := ParseKeyword(body[:end])
	if !ok {
		return Directive{}, false
	}

	rest := body[end:]
	if rest != "" && rest[0] != ':' && rest[0] != ' ' && rest[0] != '\t' {
		return Directive{}, false
	}
	rest = strings.TrimSpace(rest)
	rest, hasColon := strings.CutPrefix(rest, ":")
	rest = strings.TrimSpace(rest)

	value, quoted := unquote(rest)
	if value == "" {
		return Directive{}, false
	}
	if !hasColon && !quoted && strings.ContainsAny(value, " \t") {
		return Directive{}, false
	}

	return Directive{Kind: kind, RawValue: value, Line: line}, true
}

func isBareDirective(line string) bool {
	line = strings.TrimSpace(line)
	end := 0
	for end < len(line) && isKeywordByte(line[end]) {
		end++
	}
	keyword := line[:end]
	if keyword == "" || keyword != strings.ToUpper(keyword) {
		return false
	}
	return strings.HasPrefix(strings.TrimLeft(line[end:], " \t"), ":")
}

func isKeywordByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return strings.TrimSpace(s[1 : len(s)-1]), true
	}
	return s, false
}
