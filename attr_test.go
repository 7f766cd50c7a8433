package htmlscrub

import (
	"reflect"
	"testing"
)

func TestParseAttributes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			name: "double quoted",
			raw:  `href="http://example.com"`,
			want: map[string]string{"href": "http://example.com"},
		},
		{
			name: "single quoted",
			raw:  `title='hello world'`,
			want: map[string]string{"title": "hello world"},
		},
		{
			name: "unquoted",
			raw:  `width=100`,
			want: map[string]string{"width": "100"},
		},
		{
			name: "bare attribute without value",
			raw:  `disabled`,
			want: map[string]string{"disabled": ""},
		},
		{
			name: "names lowercased",
			raw:  `HREF="x" TiTle=y`,
			want: map[string]string{"href": "x", "title": "y"},
		},
		{
			name: "values trimmed",
			raw:  `href="   http://example.com  "`,
			want: map[string]string{"href": "http://example.com"},
		},
		{
			name: "whitespace around equals",
			raw:  `href = "x"`,
			want: map[string]string{"href": "x"},
		},
		{
			name: "unterminated quote runs to end",
			raw:  `href="abc`,
			want: map[string]string{"href": "abc"},
		},
		{
			name: "duplicate name keeps last value",
			raw:  `id=a id=b`,
			want: map[string]string{"id": "b"},
		},
		{
			name: "quoted value may contain spaces and brackets",
			raw:  `onclick="alert('hi there')" class=x`,
			want: map[string]string{"onclick": "alert('hi there')", "class": "x"},
		},
		{
			name: "empty input",
			raw:  ``,
			want: map[string]string{},
		},
		{
			name: "whitespace only",
			raw:  "  \t ",
			want: map[string]string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseAttributes(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parseAttributes(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestAnchorLeftover(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		// Nothing follows a rejected href: nothing to recover.
		{`href="javascript:alert(1)"`, ""},
		// An event handler after the href is recovered.
		{`href="x" onclick="alert(1)"`, "alert(1)"},
		// No href at all: scan the whole attribute text.
		{`onclick=evil`, "evil"},
		// Broken nested tag after the href, but no = sign.
		{`href="'';!--"<XSS`, ""},
		{``, ""},
	}
	for _, tc := range cases {
		if got := anchorLeftover(tc.raw); got != tc.want {
			t.Errorf("anchorLeftover(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestTrimQuotes(t *testing.T) {
	cases := []struct{ in, want string }{
		{`"x"`, "x"},
		{`'x'`, "x"},
		{`"x`, "x"},
		{`x"`, "x"},
		{`x`, "x"},
		{`""`, ""},
		{`"`, ""},
		{``, ""},
	}
	for _, tc := range cases {
		if got := trimQuotes(tc.in); got != tc.want {
			t.Errorf("trimQuotes(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{`a < b`, `a &lt; b`},
		{`a > b`, `a &gt; b`},
		{`"quoted"`, `&quot;quoted&quot;`},
		{`fish & chips`, `fish &amp; chips`},
		// An ampersand that already starts a reference stays put, so
		// sanitized output survives a second pass unchanged.
		{`&amp;`, `&amp;`},
		{`&#106;`, `&#106;`},
		{`&#x6A;`, `&#x6A;`},
		{`&{()}`, `&amp;{()}`},
		{`&#;`, `&amp;#;`},
		{`& loose`, `&amp; loose`},
		{`no specials`, `no specials`},
	}
	for _, tc := range cases {
		if got := escapeText(tc.in); got != tc.want {
			t.Errorf("escapeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
