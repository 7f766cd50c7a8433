package htmlscrub

import "strings"

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	// TokenText is a run of character data between tags.
	TokenText TokenType = iota
	// TokenStartTag is an opening tag such as <p> or <a href="…">.
	TokenStartTag
	// TokenEndTag is a closing tag such as </p>.
	TokenEndTag
	// TokenComment is the interior of a <!-- … --> region.
	TokenComment
)

// Token is one atomic lexical unit produced by [Tokenize]. Tokens are
// values; the sanitizer never mutates them after creation.
type Token struct {
	Type TokenType

	// Content holds the character data of text and comment tokens.
	Content string

	// TagName is the lowercased tag name of start and end tags.
	TagName string

	// RawAttrs is the attribute substring of a start tag, verbatim.
	RawAttrs string

	// Unclosed marks the final text token emitted when input ends
	// inside a tag. Its Content already has < escaped and must be
	// appended to output as-is.
	Unclosed bool
}

const (
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
	commentOpen  = "<!--"
	commentClose = "-->"

	spaceChars = " \t\n\r"
)

// Tokenize splits input into an ordered token sequence. It never
// fails: malformed or truncated markup degrades to best-effort tokens
// instead of errors. CDATA sections are skipped outright and produce
// no token at all.
func Tokenize(input string) []Token {
	var tokens []Token
	pos := 0
	for pos < len(input) {
		rest := input[pos:]
		switch {
		case strings.HasPrefix(rest, cdataOpen):
			if end := strings.Index(rest[len(cdataOpen):], cdataClose); end >= 0 {
				pos += len(cdataOpen) + end + len(cdataClose)
			} else {
				pos = len(input)
			}

		case strings.HasPrefix(rest, commentOpen):
			body := rest[len(commentOpen):]
			end := strings.Index(body, commentClose)
			if end < 0 {
				// Unterminated comment swallows the rest of the input.
				return append(tokens, Token{Type: TokenComment, Content: body})
			}
			tokens = append(tokens, Token{Type: TokenComment, Content: body[:end]})
			pos += len(commentOpen) + end + len(commentClose)

		case rest[0] == '<':
			gt := strings.IndexByte(rest, '>')
			if gt < 0 {
				// No closing > before end of input. Emit the remainder
				// as minimally escaped text and stop scanning.
				return append(tokens, Token{
					Type:     TokenText,
					Content:  strings.ReplaceAll(rest, "<", "&lt;"),
					Unclosed: true,
				})
			}
			tokens = append(tokens, parseTag(rest[1:gt]))
			pos += gt + 1

		default:
			lt := strings.IndexByte(rest, '<')
			if lt < 0 {
				lt = len(rest)
			}
			tokens = append(tokens, Token{Type: TokenText, Content: rest[:lt]})
			pos += lt
		}
	}
	return tokens
}

// parseTag builds a start or end tag token from the region between <
// and >.
func parseTag(content string) Token {
	tok := Token{Type: TokenStartTag}
	if strings.HasPrefix(content, "/") {
		tok.Type = TokenEndTag
		content = content[1:]
	}
	content = strings.TrimLeft(content, spaceChars)

	name := content
	if i := strings.IndexAny(content, spaceChars); i >= 0 {
		name = content[:i]
		if tok.Type == TokenStartTag {
			tok.RawAttrs = content[i+1:]
		}
	}
	name = strings.TrimSuffix(name, "/")
	tok.TagName = strings.ToLower(name)
	return tok
}

// tagHead returns the leading fragment of a mangled tag name, up to
// any embedded <. Markup like <scr<script>ipt> yields the tag name
// "scr<script" whose head is "scr".
func tagHead(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		return name[:i]
	}
	return name
}
