package lint

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// jsonChecker decodes exactly one JSON value and rejects trailing garbage.
type jsonChecker struct{}

func (jsonChecker) Check(body string) *SyntaxError {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(body))
	var v any
	if err := dec.Decode(&v); err != nil {
		return jsonErr(body, err)
	}
	if err := dec.Decode(&v); err != io.EOF {
		if err != nil {
			return jsonErr(body, err)
		}
		return &SyntaxError{Line: -1, Reason: "multiple top-level JSON values"}
	}
	return nil
}

func jsonErr(body string, err error) *SyntaxError {
	line := -1
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		line = offsetLine(body, int(serr.Offset))
	}
	return &SyntaxError{Line: line, Reason: err.Error()}
}

// yamlChecker decodes all documents of a (possibly multi-document) stream.
type yamlChecker struct{}

func (yamlChecker) Check(body string) *SyntaxError {
	dec := yaml.NewDecoder(strings.NewReader(body))
	for {
		var v any
		err := dec.Decode(&v)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &SyntaxError{Line: yamlLine(err), Reason: err.Error()}
		}
	}
}

// yamlLine digs a zero-based line out of a yaml TypeError-free parse error.
// yaml.v3 reports 1-based lines in its messages only, so unknown is fine.
func yamlLine(error) int { return -1 }

// goChecker parses the body as a Go file, falling back to wrapping snippets
// that lack a package clause in a synthetic one.
type goChecker struct{}

func (goChecker) Check(body string) *SyntaxError {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	_, err := parser.ParseFile(token.NewFileSet(), "", wrapGoSource(body, 0), 0)
	if err == nil {
		return nil
	}
	// Declaration snippet without a package clause.
	if _, derr := parser.ParseFile(token.NewFileSet(), "", wrapGoSource(body, 1), 0); derr == nil {
		return nil
	}
	// Bare statement snippet.
	if _, serr := parser.ParseFile(token.NewFileSet(), "", wrapGoSource(body, 2), 0); serr == nil {
		return nil
	}
	return &SyntaxError{Line: goLine(err), Reason: firstScanError(err)}
}

func wrapGoSource(body string, mode int) string {
	switch mode {
	case 1:
		return "package p\n" + body
	case 2:
		return "package p\nfunc _() {\n" + body + "\n}"
	default:
		return body
	}
}

func goLine(err error) int {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return list[0].Pos.Line - 1
	}
	return -1
}

func firstScanError(err error) string {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return list[0].Msg
	}
	return err.Error()
}

// xmlChecker walks the token stream, which catches mismatched and unclosed
// tags while allowing multiple root elements in an example snippet.
type xmlChecker struct{}

func (xmlChecker) Check(body string) *SyntaxError {
	dec := xml.NewDecoder(strings.NewReader(body))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &SyntaxError{Line: -1, Reason: err.Error()}
		}
	}
}

// braceChecker is a delimiter-balance scanner shared by the curly-brace
// languages the cheat-sheet corpus shows (Java, Groovy, Kotlin, Gradle DSL).
// It understands line and block comments, string and char literals with
// escapes, and triple-quoted strings.
type braceChecker struct{}

func (braceChecker) Check(body string) *SyntaxError {
	type open struct {
		ch   byte
		line int
	}
	var stack []open
	line := 0
	i := 0
	n := len(body)

	for i < n {
		c := body[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == '/' && i+1 < n && body[i+1] == '/':
			for i < n && body[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && body[i+1] == '*':
			startLine := line
			i += 2
			for {
				if i+1 >= n {
					return &SyntaxError{Line: startLine, Reason: "unterminated block comment"}
				}
				if body[i] == '\n' {
					line++
				}
				if body[i] == '*' && body[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
		case c == '"' || c == '\'':
			quote := c
			triple := i+2 < n && body[i+1] == quote && body[i+2] == quote
			startLine := line
			if triple {
				i += 3
				for {
					if i+2 >= n {
						return &SyntaxError{Line: startLine, Reason: "unterminated triple-quoted string"}
					}
					if body[i] == '\n' {
						line++
					}
					if body[i] == quote && body[i+1] == quote && body[i+2] == quote {
						i += 3
						break
					}
					i++
				}
				continue
			}
			i++
			for {
				if i >= n || body[i] == '\n' {
					return &SyntaxError{Line: startLine, Reason: fmt.Sprintf("unterminated %c-quoted literal", quote)}
				}
				if body[i] == '\\' {
					i += 2
					continue
				}
				if body[i] == quote {
					i++
					break
				}
				i++
			}
		case c == '(' || c == '[' || c == '{':
			stack = append(stack, open{ch: c, line: line})
			i++
		case c == ')' || c == ']' || c == '}':
			if len(stack) == 0 {
				return &SyntaxError{Line: line, Reason: fmt.Sprintf("unmatched %q", string(c))}
			}
			top := stack[len(stack)-1]
			if matching(top.ch) != c {
				return &SyntaxError{Line: line, Reason: fmt.Sprintf("%q closed by %q", string(top.ch), string(c))}
			}
			stack = stack[:len(stack)-1]
			i++
		default:
			i++
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &SyntaxError{Line: top.line, Reason: fmt.Sprintf("unclosed %q", string(top.ch))}
	}
	return nil
}

func matching(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

// shellChecker verifies quote balance and continuation usage in shell
// examples. Console transcripts may prefix commands with "$ "; those prefixes
// and output lines without a prompt are handled by stripping the prompt before
// scanning.
type shellChecker struct{}

func (shellChecker) Check(body string) *SyntaxError {
	lines := strings.Split(body, "\n")
	inSingle, inDouble := false, false
	quoteLine := 0

	// Transcript style: when any line carries a "$ " prompt, only prompt
	// lines are commands; the rest is program output and is not scanned.
	hasPrompt := false
	for _, raw := range lines {
		if strings.HasPrefix(strings.TrimSpace(raw), "$ ") {
			hasPrompt = true
			break
		}
	}

	for ln, raw := range lines {
		line := raw
		if !inSingle && !inDouble && hasPrompt {
			trimmed := strings.TrimSpace(line)
			if !strings.HasPrefix(trimmed, "$ ") {
				continue
			}
			line = strings.TrimPrefix(trimmed, "$ ")
		}
		for i := 0; i < len(line); i++ {
			c := line[i]
			switch {
			case c == '\\' && !inSingle:
				i++
			case c == '\'' && !inDouble:
				if !inSingle {
					quoteLine = ln
				}
				inSingle = !inSingle
			case c == '"' && !inSingle:
				if !inDouble {
					quoteLine = ln
				}
				inDouble = !inDouble
			case c == '#' && !inSingle && !inDouble:
				i = len(line)
			}
		}
	}
	if inSingle {
		return &SyntaxError{Line: quoteLine, Reason: "unterminated single-quoted string"}
	}
	if inDouble {
		return &SyntaxError{Line: quoteLine, Reason: "unterminated double-quoted string"}
	}
	return nil
}

// dockerfileChecker validates instruction keywords and ordering. ARG is the
// only instruction allowed before the first FROM.
type dockerfileChecker struct{}

var dockerInstructions = map[string]bool{
	"FROM": true, "RUN": true, "CMD": true, "LABEL": true, "MAINTAINER": true,
	"EXPOSE": true, "ENV": true, "ADD": true, "COPY": true, "ENTRYPOINT": true,
	"VOLUME": true, "USER": true, "WORKDIR": true, "ARG": true, "ONBUILD": true,
	"STOPSIGNAL": true, "HEALTHCHECK": true, "SHELL": true,
}

func (dockerfileChecker) Check(body string) *SyntaxError {
	sawFrom := false
	continued := false

	for ln, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if continued {
			continued = strings.HasSuffix(line, "\\")
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word := line
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			word = line[:i]
		}
		upper := strings.ToUpper(word)
		if !dockerInstructions[upper] {
			return &SyntaxError{Line: ln, Reason: fmt.Sprintf("unknown instruction %q", word)}
		}
		if !sawFrom && upper != "FROM" && upper != "ARG" {
			return &SyntaxError{Line: ln, Reason: fmt.Sprintf("%s before first FROM", upper)}
		}
		if upper == "FROM" {
			sawFrom = true
		}
		continued = strings.HasSuffix(line, "\\")
	}
	return nil
}

// offsetLine converts a byte offset into a zero-based line index.
func offsetLine(body string, offset int) int {
	if offset > len(body) {
		offset = len(body)
	}
	return strings.Count(body[:offset], "\n")
}
