// Package csvimport implements the CSV ingestion pipeline: tokenizing raw
// statement text into rows, resolving flexible column headers, normalizing
// field values and assembling transactions with per-row error collection.
package csvimport

import "strings"

// Parse tokenizes raw CSV text into rows of string fields.
//
// The scan is character by character: a double quote toggles quoted mode, in
// which the delimiter is literal text. Outside quoted mode the delimiter ends
// the current field. Blank lines (after trimming whitespace) are skipped.
// Unterminated quotes are tolerated; the toggle state simply runs to the end
// of the line, which may merge fields. One leading and one trailing double
// quote are stripped from each produced field.
func Parse(raw string, delim rune) [][]string {
	var rows [][]string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line, delim))
	}
	return rows
}

func splitLine(line string, delim rune) []string {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			cur.WriteRune(r)
		case r == delim && !quoted:
			fields = append(fields, cleanField(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(cur.String()))
	return fields
}

// cleanField trims whitespace and strips one wrapping pair of double quotes.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}

// DetectDelimiter sniffs the delimiter from the header line. Comma wins ties;
// semicolons, tabs and pipes are recognized when they dominate the line.
func DetectDelimiter(raw string) rune {
	header := raw
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		header = raw[:i]
	}
	best, bestCount := ',', strings.Count(header, ",")
	for _, c := range []rune{';', '\t', '|'} {
		if n := strings.Count(header, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}
