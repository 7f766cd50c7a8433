// Package htmlscrub sanitizes untrusted HTML into a constrained,
// safe-to-render subset that cannot carry executable content.
//
// # Overview
//
// htmlscrub lexes the input with its own fault-tolerant tokenizer and
// rewrites the token stream under an immutable [Policy]: allowed tags
// are kept (lowercased, attributes stripped), dangerous tags are
// removed together with their entire contents, comments and CDATA
// sections disappear, and everything else degrades to escaped text.
// An open-tag stack guarantees the output is well formed — every
// non-void tag that is opened gets closed, even when the input never
// closes it.
//
// The tokenizer is deliberately not an HTML5 parser. Malformed and
// adversarially obfuscated markup is its normal diet: an unclosed tag
// becomes escaped text, an unterminated comment swallows the rest of
// the input, and a dangerous tag name split across nested markup
// (<scr<script>ipt>) is recognized and defused. Sanitization never
// fails on bad input; the only possible error is an invalid Policy.
//
// # Policies
//
// A [Policy] controls:
//   - Which tags are kept ([Policy.AllowedTags])
//   - Which tags are removed with their whole subtree ([Policy.DangerousTags])
//   - Which tags are void, emitted without a closing tag ([Policy.VoidElements])
//   - Which URL schemes an anchor's href may use ([Policy.AllowedSchemes])
//   - Whether a new block-level tag auto-closes the previous one
//     ([Policy.AutoCloseBlockLevel])
//
// Two built-in policies are provided:
//   - [DefaultPolicy] — headings, paragraphs, lists, block quotes, and
//     common inline formatting with http/https links. Good for posts
//     and articles.
//   - [InlinePolicy] — basic inline formatting only, https links.
//     Good for comment sections.
//
// # Security
//
// htmlscrub defends against common XSS vectors including:
//   - Script injection via <script>, <iframe>, <object>, <embed>,
//     <base>, <style> and <xml>
//   - Event handler attributes (onclick, onerror, etc.), including
//     handlers hidden inside the tag name (<svg/onload=…>)
//   - javascript:, data: and other unlisted URL schemes in links,
//     including entity-obfuscated schemes, which never compare equal
//     to an allowed scheme because references are treated as opaque
//     text
//   - Tag names split across nested markup to evade matching
//
// Recovered attack fragments are emitted as escaped, inert text rather
// than silently dropped, so the attempt remains visible in the output.
//
// # Thread Safety
//
// Sanitize, StripTags and Tokenize are pure functions of their inputs
// and safe for concurrent use. A Policy must not be mutated after
// first use; it may then be shared across concurrent calls.
//
// # Example
//
//	clean, err := htmlscrub.Sanitize(userInput, htmlscrub.DefaultPolicy())
package htmlscrub
