package sequence

import (
	"fmt"
	"strings"
	"time"
)

// Render produces the document number for a resolved counter value.
//
// The template is scanned left to right in a single pass: each placeholder is
// substituted exactly once and the substituted text is never re-scanned. A
// prefix that itself contains brace sequences therefore ends up in the output
// verbatim instead of being expanded again, which sequential string
// replacement would get wrong. Unknown placeholders are copied through as-is.
func Render(cfg Config, sequenceValue int64, now time.Time) string {
	var b strings.Builder
	b.Grow(len(cfg.Format) + len(cfg.Prefix) + 8)

	format := cfg.Format
	for i := 0; i < len(format); {
		if format[i] == '{' {
			if end := strings.IndexByte(format[i:], '}'); end > 0 {
				token := format[i+1 : i+end]
				if repl, ok := expand(token, cfg, sequenceValue, now); ok {
					b.WriteString(repl)
					i += end + 1
					continue
				}
			}
		}
		b.WriteByte(format[i])
		i++
	}

	return b.String()
}

// expand resolves a single placeholder name. Returns false for unknown names
// so the caller copies them through unchanged.
func expand(token string, cfg Config, sequenceValue int64, now time.Time) (string, bool) {
	switch token {
	case "PREFIX":
		return cfg.Prefix, true
	case "YYYY":
		return fmt.Sprintf("%04d", now.Year()), true
	case "YY":
		return fmt.Sprintf("%02d", now.Year()%100), true
	case "MM":
		return fmt.Sprintf("%02d", int(now.Month())), true
	case "DD":
		return fmt.Sprintf("%02d", now.Day()), true
	case "SEQ":
		return fmt.Sprintf("%04d", sequenceValue), true
	}
	return "", false
}
