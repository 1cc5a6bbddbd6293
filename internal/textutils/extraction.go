// Package textutils provides tokenizing primitives for finding dates,
// amounts and installment markers embedded in free statement text.
package textutils

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// Dates as they appear in bank and card statements: 09/10/2025,
	// 09/10/25, 09-10-2025 and the Spanish abbreviated form 05-Ene-25.
	datePattern = regexp.MustCompile(`(?i)\b(\d{1,2}/\d{1,2}/(?:\d{4}|\d{2})|\d{1,2}-\d{1,2}-\d{4}|\d{1,2}-(?:ene|feb|mar|abr|may|jun|jul|ago|sep|oct|nov|dic)-\d{2})\b`)

	// Amount tokens end in a 2-digit fractional part; the integer part may
	// carry '.' or ',' as thousands or decimal separators.
	amountPattern = regexp.MustCompile(`[-+]?\d[\d.,]*[.,]\d{2}\b`)

	// Installment markers: 02/06, Cuota 02/06, C.02/06.
	installmentPattern = regexp.MustCompile(`(?i)(?:cuota\s+|c\.\s*)?\b(\d{1,2})/(\d{1,2})\b`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FindDate returns the first date token in line along with its [start, end)
// location. ok is false when the line carries no date.
func FindDate(line string) (token string, loc []int, ok bool) {
	loc = datePattern.FindStringIndex(line)
	if loc == nil {
		return "", nil, false
	}
	return line[loc[0]:loc[1]], loc, true
}

// FindAmount returns the first amount token in line along with its location.
func FindAmount(line string) (token string, loc []int, ok bool) {
	loc = amountPattern.FindStringIndex(line)
	if loc == nil {
		return "", nil, false
	}
	return line[loc[0]:loc[1]], loc, true
}

// FindLastAmount returns the last amount token in line. Statement lines put
// the movement amount in the rightmost column, after any reference numbers.
func FindLastAmount(line string) (token string, loc []int, ok bool) {
	all := amountPattern.FindAllStringIndex(line, -1)
	if len(all) == 0 {
		return "", nil, false
	}
	loc = all[len(all)-1]
	return line[loc[0]:loc[1]], loc, true
}

// ExtractInstallment finds an N/M installment marker anywhere in s and
// returns the installment number, the total, and s with the marker removed.
// Markers where N exceeds M (e.g. reference fragments like 24/7) are not
// treated as installments.
func ExtractInstallment(s string) (installment, total int, rest string, ok bool) {
	for _, m := range installmentPattern.FindAllStringSubmatchIndex(s, -1) {
		n, _ := strconv.Atoi(s[m[2]:m[3]])
		t, _ := strconv.Atoi(s[m[4]:m[5]])
		if n < 1 || t < 2 || n > t {
			continue
		}
		rest = CollapseWhitespace(s[:m[0]] + " " + s[m[1]:])
		return n, t, rest, true
	}
	return 0, 0, s, false
}

// CollapseWhitespace trims s and squeezes interior whitespace runs to a
// single space.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// RemoveSpans deletes the given [start, end) spans from line and collapses
// the remaining whitespace. Spans may be given in any order.
func RemoveSpans(line string, spans ...[]int) string {
	type span struct{ start, end int }
	cut := make([]span, 0, len(spans))
	for _, s := range spans {
		if s != nil {
			cut = append(cut, span{s[0], s[1]})
		}
	}

	var b strings.Builder
	for i := 0; i < len(line); i++ {
		inCut := false
		for _, c := range cut {
			if i >= c.start && i < c.end {
				inCut = true
				break
			}
		}
		if !inCut {
			b.WriteByte(line[i])
		} else if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
			b.WriteByte(' ')
		}
	}
	return CollapseWhitespace(b.String())
}

// TitleCaseName converts an all-caps statement name like "JUAN PEREZ" to
// "Juan Perez".
func TitleCaseName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
