package htmlscrub

import "strings"

// Sanitize processes untrusted HTML and returns a constrained, safe
// subset according to p. If p is nil, [DefaultPolicy] is used.
//
// The only possible error is an invalid Policy ([ErrInvalidPolicy]).
// Malformed or adversarial markup never fails; it is degraded into
// safe output instead, so a call that validates its policy up front
// can ignore the error entirely.
func Sanitize(input string, p *Policy) (string, error) {
	if p == nil {
		p = DefaultPolicy()
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	s := &pass{tokens: Tokenize(input), policy: p.compile()}
	return s.run(), nil
}

// StripTags removes all markup and returns the plain text content.
// Comments, CDATA sections, and dangerous-tag bodies are removed the
// same way Sanitize removes them; character references are left as
// written.
func StripTags(input string) string {
	s := &pass{tokens: Tokenize(input), policy: DefaultPolicy().compile()}
	var out strings.Builder
	for i := 0; i < len(s.tokens); i++ {
		tok := s.tokens[i]
		switch tok.Type {
		case TokenText:
			out.WriteString(tok.Content)
		case TokenStartTag:
			if s.policy.dangerous[tok.TagName] {
				i = s.skipDangerous(tok.TagName, i)
			}
		}
	}
	return out.String()
}

// pass is the sanitization state machine: an append-only output
// buffer, a heap-backed open-tag stack, and a token cursor that some
// branches advance out of band. The stack is a slice, never the call
// stack, so arbitrarily deep input nesting cannot overflow.
type pass struct {
	tokens []Token
	policy *tagSets
	out    strings.Builder
	stack  []string
}

func (s *pass) run() string {
	for i := 0; i < len(s.tokens); i++ {
		tok := s.tokens[i]
		switch tok.Type {
		case TokenText:
			s.text(tok)
		case TokenComment:
			// Comments never reach the output.
		case TokenStartTag:
			i = s.startTag(tok, i)
		case TokenEndTag:
			s.endTag(tok)
		}
	}
	// Close everything still open, innermost first.
	for len(s.stack) > 0 {
		s.popTag()
	}
	return s.out.String()
}

func (s *pass) text(tok Token) {
	if tok.Unclosed {
		// Already minimally escaped by the tokenizer.
		s.out.WriteString(tok.Content)
		return
	}
	content := tok.Content
	// A trailing ) inside an inline tag is usually the tail of a
	// mangled event-handler attribute; drop it.
	if n := len(s.stack); n > 0 && s.policy.inline[s.stack[n-1]] && strings.HasSuffix(content, ")") {
		content = content[:len(content)-1]
	}
	s.out.WriteString(escapeText(content))
}

// startTag handles one start-tag token and returns the cursor position
// of the last token it consumed.
func (s *pass) startTag(tok Token, i int) int {
	name := tok.TagName
	if full, ok := s.policy.splitDangerous(name); ok {
		return s.recoverSplitTag(tagHead(name), full, i)
	}
	switch {
	case s.policy.allowed[name]:
		if name == "a" {
			s.anchor(tok)
			return i
		}
		if s.policy.void[name] {
			s.out.WriteString("<" + name + ">")
			return i
		}
		if s.policy.autoClose && s.policy.block[name] {
			s.closeOpenBlock()
		}
		s.out.WriteString("<" + name + ">")
		s.stack = append(s.stack, name)
	case s.policy.dangerous[name]:
		return s.skipDangerous(name, i)
	default:
		s.droppedTag(tok)
	}
	return i
}

func (s *pass) endTag(tok Token) {
	if n := len(s.stack); n > 0 && s.stack[n-1] == tok.TagName {
		s.popTag()
	}
	// A mismatched or unopened end tag is dropped silently.
}

func (s *pass) popTag() {
	n := len(s.stack) - 1
	s.out.WriteString("</" + s.stack[n] + ">")
	s.stack = s.stack[:n]
}

// anchor emits an <a> tag, keeping href only when its scheme is
// allowed. A rejected or missing href may leave an injected fragment
// behind in the attribute text; anchorLeftover recovers it and it is
// emitted as inert escaped text so the evidence stays visible without
// being executable.
func (s *pass) anchor(tok Token) {
	attrs := parseAttributes(tok.RawAttrs)
	if href, ok := attrs["href"]; ok && s.policy.safeScheme(href) {
		s.out.WriteString(`<a href="` + escapeText(href) + `">`)
	} else {
		s.out.WriteString("<a>")
		if leftover := anchorLeftover(tok.RawAttrs); leftover != "" {
			s.out.WriteString(escapeText(leftover))
		}
	}
	s.stack = append(s.stack, "a")
}

// skipDangerous consumes a dangerous tag and its entire contents,
// tracking nesting of the same tag name. It returns the cursor
// position of the last skipped token; if no matching end tag exists
// the rest of the input is skipped.
func (s *pass) skipDangerous(name string, i int) int {
	depth := 1
	j := i + 1
	for ; j < len(s.tokens) && depth > 0; j++ {
		switch t := s.tokens[j]; t.Type {
		case TokenStartTag:
			if t.TagName == name {
				depth++
			}
		case TokenEndTag:
			if t.TagName == name {
				depth--
			}
		}
	}
	return j - 1
}

// recoverSplitTag handles a start tag whose name is a leading fragment
// of a dangerous tag, as in <scr<script>ipt>alert(1)</scr<script>ipt>.
// The missing suffix of the dangerous name has leaked into the next
// text token; it is stripped there, the remainder is emitted escaped,
// and the cursor then advances past the first end tag that looks like
// a fragment of the same dangerous name. Best effort only: nested
// obfuscation beyond one level is not reconstructed.
func (s *pass) recoverSplitTag(head, full string, i int) int {
	suffix := full[len(head):]
	j := i + 1
	if j < len(s.tokens) {
		if t := s.tokens[j]; t.Type == TokenText && !t.Unclosed {
			rest := t.Content
			if len(rest) >= len(suffix) && strings.EqualFold(rest[:len(suffix)], suffix) {
				rest = rest[len(suffix):]
			}
			s.out.WriteString(escapeText(rest))
			j++
		}
	}
	for ; j < len(s.tokens); j++ {
		if t := s.tokens[j]; t.Type == TokenEndTag {
			h := tagHead(t.TagName)
			if h != "" && len(h) < len(full) && strings.HasPrefix(full, h) {
				return j
			}
		}
	}
	return len(s.tokens) - 1
}

// droppedTag handles a disallowed, non-dangerous start tag. Markup
// such as <svg/onload=alert(1)> hides an event handler inside the tag
// itself; the handler body after the first = is recovered and emitted
// as escaped text. Tags without such a fragment produce no output.
func (s *pass) droppedTag(tok Token) {
	content := tok.TagName
	if tok.RawAttrs != "" {
		content += " " + tok.RawAttrs
	}
	if !strings.Contains(content, "/") {
		return
	}
	eq := strings.IndexByte(content, '=')
	if eq < 0 {
		return
	}
	if val := trimQuotes(strings.TrimSpace(content[eq+1:])); val != "" {
		s.out.WriteString(escapeText(val))
	}
}

// closeOpenBlock closes open tags down to and including the innermost
// open block-level tag, if any.
func (s *pass) closeOpenBlock() {
	idx := -1
	for j := len(s.stack) - 1; j >= 0; j-- {
		if s.policy.block[s.stack[j]] {
			idx = j
			break
		}
	}
	if idx < 0 {
		return
	}
	for len(s.stack) > idx {
		s.popTag()
	}
}

// anchorLeftover scavenges attribute text that follows a rejected or
// missing href value. Injected fragments show up after an = sign; the
// quote-trimmed value is returned so the caller can emit it as inert
// text. Returns "" when nothing recoverable is present.
func anchorLeftover(raw string) string {
	rest := raw
	if end := hrefValueEnd(raw); end >= 0 {
		rest = raw[end:]
	}
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return ""
	}
	return trimQuotes(strings.TrimSpace(rest[eq+1:]))
}

// escapeText escapes <, >, " and & for safe inclusion in output. An
// ampersand that already introduces a character reference is left
// alone, so output that is sanitized again comes back unchanged.
// References are opaque text to this package; they are never decoded.
func escapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '&':
			if entityAt(s, i) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// entityAt reports whether s[i:] begins a character reference such as
// &amp; &#106; or &#x6A; — an ampersand, an optional #x / # marker, a
// non-empty run of the corresponding name or digit characters, and a
// terminating semicolon.
func entityAt(s string, i int) bool {
	j := i + 1
	if j < len(s) && s[j] == '#' {
		j++
		if j < len(s) && (s[j] == 'x' || s[j] == 'X') {
			j++
		}
		start := j
		for j < len(s) && isHexDigit(s[j]) {
			j++
		}
		return j > start && j < len(s) && s[j] == ';'
	}
	start := j
	for j < len(s) && isAlnum(s[j]) {
		j++
	}
	return j > start && j < len(s) && s[j] == ';'
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
