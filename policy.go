package htmlscrub

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidPolicy is returned by [Sanitize] and [Policy.Validate]
// when a Policy is internally inconsistent. It is the only error the
// package produces: malformed or hostile input never fails, it
// degrades.
var ErrInvalidPolicy = errors.New("htmlscrub: invalid policy")

// Policy defines what HTML is considered safe. A Policy must not be
// mutated after first use; a single value may then be shared freely
// across concurrent [Sanitize] calls.
type Policy struct {
	// AllowedTags is the list of tag names kept in output. Allowed
	// tags are emitted lowercased and stripped of every attribute,
	// except for href on anchors (see AllowedSchemes).
	AllowedTags []string

	// BlockLevelTags names the block-level subset of AllowedTags.
	// Consulted only when AutoCloseBlockLevel is set.
	BlockLevelTags []string

	// InlineTags names the inline subset of AllowedTags. It must be
	// disjoint from BlockLevelTags.
	InlineTags []string

	// DangerousTags are removed together with their entire contents,
	// tracking nesting of the same tag name.
	DangerousTags []string

	// VoidElements are tags with no closing tag and no content, such
	// as br. They are emitted as bare open tags and never tracked on
	// the open-tag stack.
	VoidElements []string

	// AllowedSchemes lists the URL schemes permitted in an anchor's
	// href. An href with any other scheme, or with no scheme at all
	// (including relative references), is dropped while the anchor
	// tag and its text content are kept.
	AllowedSchemes []string

	// AutoCloseBlockLevel makes a new block-level open tag first
	// close any currently open block-level tag, the way browsers
	// treat sibling <p> elements. Off by default: nesting is then
	// preserved exactly as written.
	AutoCloseBlockLevel bool
}

// DefaultPolicy returns the standard content policy: headings,
// paragraphs, block quotes, preformatted text, lists, and the common
// inline formatting tags including anchors. Anchors may link to http
// and https URLs only.
func DefaultPolicy() *Policy {
	return &Policy{
		AllowedTags: []string{
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "blockquote", "pre", "hr", "br",
			"ol", "ul", "li", "dl", "dt", "dd",
			"b", "strong", "i", "em", "u", "s", "sub", "sup",
			"small", "mark", "abbr", "cite", "q", "code", "kbd",
			"var", "time", "dfn", "bdi", "bdo", "a",
		},
		BlockLevelTags: []string{
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "blockquote", "pre",
		},
		InlineTags: []string{
			"b", "strong", "i", "em", "u", "s", "sub", "sup",
			"small", "mark", "abbr", "cite", "q", "code", "kbd",
			"var", "time", "dfn", "bdi", "bdo", "a",
		},
		DangerousTags:  []string{"script", "iframe", "xml", "embed", "object", "base", "style"},
		VoidElements:   []string{"br", "hr", "img"},
		AllowedSchemes: []string{"http", "https"},
	}
}

// InlinePolicy returns a minimal policy allowing only basic inline
// formatting and https links — suitable for comment sections and
// other short user-generated content.
func InlinePolicy() *Policy {
	return &Policy{
		AllowedTags:    []string{"b", "strong", "i", "em", "u", "s", "code", "br", "a"},
		InlineTags:     []string{"b", "strong", "i", "em", "u", "s", "code", "a"},
		DangerousTags:  []string{"script", "iframe", "xml", "embed", "object", "base", "style"},
		VoidElements:   []string{"br"},
		AllowedSchemes: []string{"https"},
	}
}

// Validate reports whether the Policy is internally consistent. All
// violations wrap [ErrInvalidPolicy].
func (p *Policy) Validate() error {
	allowed := sliceToSet(p.AllowedTags)
	dangerous := sliceToSet(p.DangerousTags)
	block := sliceToSet(p.BlockLevelTags)

	for _, t := range p.AllowedTags {
		if dangerous[strings.ToLower(t)] {
			return fmt.Errorf("%w: tag %q is both allowed and dangerous", ErrInvalidPolicy, t)
		}
	}
	for _, t := range p.InlineTags {
		if block[strings.ToLower(t)] {
			return fmt.Errorf("%w: tag %q is both block-level and inline", ErrInvalidPolicy, t)
		}
	}
	for _, t := range p.BlockLevelTags {
		if !allowed[strings.ToLower(t)] {
			return fmt.Errorf("%w: block-level tag %q is not in the allowed set", ErrInvalidPolicy, t)
		}
	}
	for _, t := range p.InlineTags {
		if !allowed[strings.ToLower(t)] {
			return fmt.Errorf("%w: inline tag %q is not in the allowed set", ErrInvalidPolicy, t)
		}
	}
	return nil
}

// tagSets is a Policy compiled into lookup sets for one Sanitize call.
type tagSets struct {
	allowed   map[string]bool
	block     map[string]bool
	inline    map[string]bool
	dangerous map[string]bool
	void      map[string]bool
	schemes   map[string]bool

	// dangerousList is sorted so prefix matching is deterministic.
	dangerousList []string

	autoClose bool
}

func (p *Policy) compile() *tagSets {
	c := &tagSets{
		allowed:   sliceToSet(p.AllowedTags),
		block:     sliceToSet(p.BlockLevelTags),
		inline:    sliceToSet(p.InlineTags),
		dangerous: sliceToSet(p.DangerousTags),
		void:      sliceToSet(p.VoidElements),
		schemes:   sliceToSet(p.AllowedSchemes),
		autoClose: p.AutoCloseBlockLevel,
	}
	c.dangerousList = make([]string, 0, len(c.dangerous))
	for t := range c.dangerous {
		c.dangerousList = append(c.dangerousList, t)
	}
	sort.Strings(c.dangerousList)
	return c
}

// safeScheme reports whether href carries an explicitly allowed URL
// scheme. The scheme is everything before the first colon, compared
// lowercased; scheme-less and relative references are rejected.
// Character references inside the scheme are treated as opaque text,
// never decoded, so entity-obfuscated schemes fail the check.
func (c *tagSets) safeScheme(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	i := strings.IndexByte(lower, ':')
	if i <= 0 {
		return false
	}
	return c.schemes[lower[:i]]
}

// splitDangerous reports whether name looks like the leading fragment
// of a dangerous tag, as produced by markup like <scr<script>ipt>.
// Allowed names are exempt so short tags such as b, i, em and s are
// never mistaken for fragments of base, iframe, embed or script.
func (c *tagSets) splitDangerous(name string) (string, bool) {
	if c.allowed[name] {
		return "", false
	}
	head := tagHead(name)
	if head == "" {
		return "", false
	}
	for _, d := range c.dangerousList {
		if len(head) < len(d) && strings.HasPrefix(d, head) {
			return d, true
		}
	}
	return "", false
}

func sliceToSet(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[strings.ToLower(v)] = true
	}
	return m
}
