package matching

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ParseListField turns a loosely structured CRM field into a clean list.
// Values arrive as a JSON array, a JSON string, a delimited string or a
// bare token; precedence is fixed: JSON array -> JSON string -> first of
// "," ";" "|" -> singleton. Entries are trimmed, empties dropped and
// duplicates removed case-insensitively keeping the first casing seen.
func ParseListField(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var items []string
	if gjson.Valid(raw) {
		parsed := gjson.Parse(raw)
		switch {
		case parsed.IsArray():
			for _, v := range parsed.Array() {
				items = append(items, v.String())
			}
		case parsed.Type == gjson.String:
			items = []string{parsed.String()}
		}
	}

	if items == nil {
		items = splitOnFirstDelimiter(raw)
	}

	return dedupe(items)
}

func splitOnFirstDelimiter(raw string) []string {
	for _, sep := range []string{",", ";", "|"} {
		if strings.Contains(raw, sep) {
			return strings.Split(raw, sep)
		}
	}
	return []string{raw}
}

func dedupe(items []string) []string {
	var out []string
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key := strings.ToLower(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// TokenizeWords lowercases text and splits it into a token set. "+" and
// "#" are kept inside tokens so skills like "c++" and "c#" survive.
func TokenizeWords(text string) map[string]bool {
	tokens := make(map[string]bool)
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens[b.String()] = true
			b.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '#' {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
