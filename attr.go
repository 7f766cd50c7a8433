package htmlscrub

import "strings"

// parseAttributes turns a start tag's raw attribute substring into a
// name→value map. Names are lowercased, values trimmed, and a repeated
// name keeps the last value. No semantic validation happens here.
func parseAttributes(raw string) map[string]string {
	attrs := make(map[string]string)
	for i := 0; i < len(raw); {
		name, val, next := scanAttr(raw, i)
		if next <= i {
			break
		}
		i = next
		if name != "" {
			attrs[name] = val
		}
	}
	return attrs
}

// scanAttr reads one name/value pair from raw starting at offset i.
// It returns the lowercased name, the trimmed value, and the offset
// just past the consumed input. A quoted value with no closing quote
// runs to the end of the input.
func scanAttr(raw string, i int) (name, val string, next int) {
	n := len(raw)
	for i < n && isSpace(raw[i]) {
		i++
	}
	start := i
	for i < n && !isSpace(raw[i]) && raw[i] != '=' {
		i++
	}
	name = strings.ToLower(raw[start:i])

	for i < n && isSpace(raw[i]) {
		i++
	}
	if i < n && raw[i] == '=' {
		i++
		for i < n && isSpace(raw[i]) {
			i++
		}
		if i < n && (raw[i] == '"' || raw[i] == '\'') {
			quote := raw[i]
			i++
			if end := strings.IndexByte(raw[i:], quote); end >= 0 {
				val = raw[i : i+end]
				i += end + 1
			} else {
				val = raw[i:]
				i = n
			}
		} else {
			start = i
			for i < n && !isSpace(raw[i]) {
				i++
			}
			val = raw[start:i]
		}
		val = strings.TrimSpace(val)
	}
	return name, val, i
}

// hrefValueEnd returns the offset just past the href attribute's value
// in raw, or -1 when no href attribute is present.
func hrefValueEnd(raw string) int {
	for i := 0; i < len(raw); {
		name, _, next := scanAttr(raw, i)
		if next <= i {
			break
		}
		if name == "href" {
			return next
		}
		i = next
	}
	return -1
}

// trimQuotes strips one leading and one trailing quote character, if
// present. Mismatched quotes are trimmed independently.
func trimQuotes(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
