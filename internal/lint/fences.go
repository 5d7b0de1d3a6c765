package lint

import "strings"

// Fence is a fenced code block found by the raw-line scanner. The scanner is
// used instead of the markdown AST so that the opening fence line is exact and
// unclosed fences at EOF are visible (the AST silently closes them).
type Fence struct {
	Language string
	Info     string
	Body     string
	Line     int
	Closed   bool
}

// scanFences walks raw lines and extracts fenced code blocks. A fence opens
// with three or more backticks or tildes after at most three spaces of
// indentation and closes with a fence of the same character at least as long,
// with no info string.
func scanFences(src []byte) []Fence {
	var fences []Fence
	var cur *Fence
	var body []string
	var fenceChar byte
	var fenceLen int

	lines := splitLines(src)
	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed, indent := trimIndent(line)

		if cur == nil {
			ch, n, info := fenceOpen(trimmed)
			if n == 0 || indent > 3 {
				continue
			}
			fenceChar, fenceLen = ch, n
			lang := info
			if j := strings.IndexAny(info, " \t"); j >= 0 {
				lang = info[:j]
			}
			cur = &Fence{
				Language: strings.ToLower(lang),
				Info:     info,
				Line:     i + 1,
			}
			body = body[:0]
			continue
		}

		if indent <= 3 && fenceClose(trimmed, fenceChar, fenceLen) {
			cur.Body = strings.Join(body, "\n")
			cur.Closed = true
			fences = append(fences, *cur)
			cur = nil
			continue
		}
		body = append(body, line)
	}

	if cur != nil {
		cur.Body = strings.Join(body, "\n")
		fences = append(fences, *cur)
	}
	return fences
}

// fenceOpen reports the fence character, its run length and the info string,
// or a zero length when the line does not open a fence. Backtick fences may
// not contain backticks in the info string.
func fenceOpen(line string) (byte, int, string) {
	if line == "" {
		return 0, 0, ""
	}
	ch := line[0]
	if ch != '`' && ch != '~' {
		return 0, 0, ""
	}
	n := 0
	for n < len(line) && line[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, ""
	}
	info := strings.TrimSpace(line[n:])
	if ch == '`' && strings.ContainsRune(info, '`') {
		return 0, 0, ""
	}
	return ch, n, info
}

func fenceClose(line string, ch byte, openLen int) bool {
	n := 0
	for n < len(line) && line[n] == ch {
		n++
	}
	return n >= openLen && strings.TrimSpace(line[n:]) == ""
}

func trimIndent(line string) (string, int) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	return line[indent:], indent
}

func splitLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}
	s := string(src)
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
