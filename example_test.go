package htmlscrub_test

import (
	"fmt"

	"github.com/dzharii/htmlscrub"
)

func ExampleSanitize() {
	input := `<h1>Welcome</h1><script>alert('xss')</script>`
	clean, _ := htmlscrub.Sanitize(input, htmlscrub.DefaultPolicy())
	fmt.Println(clean)
	// Output: <h1>Welcome</h1>
}

func ExampleSanitize_unsafeLink() {
	input := `<a href="javascript:alert(1)">Click me</a>`
	clean, _ := htmlscrub.Sanitize(input, nil)
	fmt.Println(clean)
	// Output: <a>Click me</a>
}

func ExampleSanitize_unclosedTags() {
	input := `<p>Paragraph <b>Bold text <i>Italic without closing`
	clean, _ := htmlscrub.Sanitize(input, nil)
	fmt.Println(clean)
	// Output: <p>Paragraph <b>Bold text <i>Italic without closing</i></b></p>
}

func ExampleSanitize_customPolicy() {
	p := &htmlscrub.Policy{
		AllowedTags:    []string{"b", "i"},
		DangerousTags:  []string{"script"},
		AllowedSchemes: []string{"https"},
	}
	input := `<b>bold</b><script>alert(1)</script>`
	clean, _ := htmlscrub.Sanitize(input, p)
	fmt.Println(clean)
	// Output: <b>bold</b>
}

func ExampleStripTags() {
	input := `<p>Hello <b>world</b></p>`
	fmt.Println(htmlscrub.StripTags(input))
	// Output: Hello world
}

func ExampleTokenize() {
	for _, tok := range htmlscrub.Tokenize(`<p>Hi<!-- note --></p>`) {
		switch tok.Type {
		case htmlscrub.TokenStartTag:
			fmt.Println("start:", tok.TagName)
		case htmlscrub.TokenText:
			fmt.Println("text:", tok.Content)
		case htmlscrub.TokenComment:
			fmt.Println("comment:", tok.Content)
		case htmlscrub.TokenEndTag:
			fmt.Println("end:", tok.TagName)
		}
	}
	// Output:
	// start: p
	// text: Hi
	// comment:  note
	// end: p
}
