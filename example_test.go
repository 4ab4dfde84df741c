package chathtml_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-chathtml"
)

// Example renders a short conversation as chat bubbles.
func Example() {
	r, err := chathtml.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	out, err := r.Render(context.Background(), []chathtml.Turn{
		{User: "Hello", Assistant: "Hi there!"},
	}, "You", "Bot", chathtml.ModeChat, false)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	bot := strings.Index(out, "Hi there!")
	user := strings.Index(out, "Hello")
	fmt.Println(bot < user)
	// Output: true
}

// ExampleRenderer_RenderMarkup shows the custom code markers becoming a
// fenced block.
func ExampleRenderer_RenderMarkup() {
	r, err := chathtml.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	out, err := r.RenderMarkup(context.Background(), "Run this:\\begin{code}\nprint(1)\n\\end{code}")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(out)
	// Output:
	// <p>Run this:</p>
	// <pre><code>print(1)
	// </code></pre>
}

// ExampleParseMode shows that unknown modes are not errors.
func ExampleParseMode() {
	fmt.Println(chathtml.ParseMode("instruct"))
	fmt.Println(chathtml.ParseMode("notebook") == chathtml.ModeUnknown)
	// Output:
	// instruct
	// true
}
