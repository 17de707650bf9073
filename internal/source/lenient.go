package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// ParseLenient decodes the offline dataset. Strict JSON is tried first;
// on failure the content is rewritten from the looser literal syntax some
// captured provider dumps use (single-quoted strings, None/True/False,
// trailing commas) and decoded again.
func ParseLenient(content []byte) (map[string]any, error) {

	trimmed := bytes.TrimSpace(content)

	var payload map[string]any
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		return payload, nil
	}

	rewritten := rewriteLooseLiteral(string(trimmed))
	if err := json.Unmarshal([]byte(rewritten), &payload); err != nil {
		return nil, fmt.Errorf("could not parse content as JSON or loose literal: %v", err)
	}
	return payload, nil
}

// rewriteLooseLiteral converts a Python-style literal into JSON: quote
// style, keyword constants and trailing commas. String contents are left
// untouched apart from re-escaping quotes.
func rewriteLooseLiteral(content string) string {

	var out strings.Builder
	runes := []rune(content)

	const (
		outside = iota
		inDouble
		inSingle
	)
	state := outside

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch state {
		case inDouble:
			out.WriteRune(r)
			if r == '\\' && i+1 < len(runes) {
				out.WriteRune(runes[i+1])
				i++
			} else if r == '"' {
				state = outside
			}

		case inSingle:
			switch {
			case r == '\\' && i+1 < len(runes) && runes[i+1] == '\'':
				out.WriteRune('\'')
				i++
			case r == '\\' && i+1 < len(runes):
				out.WriteRune(r)
				out.WriteRune(runes[i+1])
				i++
			case r == '"':
				out.WriteString(`\"`)
			case r == '\'':
				out.WriteRune('"')
				state = outside
			default:
				out.WriteRune(r)
			}

		default:
			switch {
			case r == '"':
				out.WriteRune(r)
				state = inDouble
			case r == '\'':
				out.WriteRune('"')
				state = inSingle
			case r == ',' && nextStructural(runes, i+1):
				// trailing comma before ] or }
			case unicode.IsLetter(r):
				word := readWord(runes, i)
				switch word {
				case "None":
					out.WriteString("null")
				case "True":
					out.WriteString("true")
				case "False":
					out.WriteString("false")
				default:
					out.WriteString(word)
				}
				i += len([]rune(word)) - 1
			default:
				out.WriteRune(r)
			}
		}
	}

	return out.String()
}

func readWord(runes []rune, start int) string {
	end := start
	for end < len(runes) && (unicode.IsLetter(runes[end]) || unicode.IsDigit(runes[end]) || runes[end] == '_') {
		end++
	}
	return string(runes[start:end])
}

func nextStructural(runes []rune, start int) bool {
	for i := start; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) {
			continue
		}
		return runes[i] == ']' || runes[i] == '}'
	}
	return false
}
