package markdown

import (
	"strings"
	"testing"
)

func TestSanitizePost_RendersMarkdown(t *testing.T) {
	t.Parallel()

	out := Sanitize("**bold** and _emphasis_", KindPost)
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("expected strong tag, got %q", out)
	}
	if !strings.Contains(out, "<em>emphasis</em>") {
		t.Fatalf("expected em tag, got %q", out)
	}
	if !strings.Contains(out, "<p>") {
		t.Fatalf("post kind keeps paragraphs, got %q", out)
	}
}

func TestSanitizePost_StripsScript(t *testing.T) {
	t.Parallel()

	out := Sanitize("hello <script>alert('xss')</script> **world**", KindPost)
	if strings.Contains(out, "<script") || strings.Contains(out, "alert(") {
		t.Fatalf("script must be removed entirely, got %q", out)
	}
	if !strings.Contains(out, "<strong>world</strong>") {
		t.Fatalf("allowed markup must survive, got %q", out)
	}
	// Stripped, never escaped back into visible text.
	if strings.Contains(out, "&lt;script") {
		t.Fatalf("script must not be escaped into text, got %q", out)
	}
}

func TestSanitizePost_StripsDisallowedKeepsText(t *testing.T) {
	t.Parallel()

	out := Sanitize(`<table><tr><td>cell</td></tr></table>`, KindPost)
	if strings.Contains(out, "<table") || strings.Contains(out, "<td") {
		t.Fatalf("table markup must be stripped, got %q", out)
	}
	if !strings.Contains(out, "cell") {
		t.Fatalf("text content must be kept, got %q", out)
	}
}

func TestSanitizePost_StripsEventAttributes(t *testing.T) {
	t.Parallel()

	out := Sanitize(`<b onclick="alert(1)">click</b>`, KindPost)
	if strings.Contains(out, "onclick") {
		t.Fatalf("event attribute must be stripped, got %q", out)
	}
	if !strings.Contains(out, "<b>click</b>") {
		t.Fatalf("allowed tag must survive attribute stripping, got %q", out)
	}
}

func TestSanitizeComment_FlattensBlocks(t *testing.T) {
	t.Parallel()

	input := "# Heading\n\n- item one\n- item two\n\n**fine**"
	out := Sanitize(input, KindComment)

	for _, tag := range []string{"<h1", "<p", "<ul", "<li", "<ol", "<blockquote", "<pre"} {
		if strings.Contains(out, tag) {
			t.Fatalf("comment kind must strip %s, got %q", tag, out)
		}
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "item one") {
		t.Fatalf("text content must be kept, got %q", out)
	}
	if !strings.Contains(out, "<strong>fine</strong>") {
		t.Fatalf("inline markup must survive, got %q", out)
	}
}

func TestSanitize_PostAllowsWhatCommentStrips(t *testing.T) {
	t.Parallel()

	input := "> quoted\n\n1. first\n2. second"

	post := Sanitize(input, KindPost)
	if !strings.Contains(post, "<blockquote>") || !strings.Contains(post, "<ol>") {
		t.Fatalf("post kind keeps block structure, got %q", post)
	}

	comment := Sanitize(input, KindComment)
	if strings.Contains(comment, "<blockquote") || strings.Contains(comment, "<ol") {
		t.Fatalf("comment kind strips block structure, got %q", comment)
	}
}

func TestSanitize_AutolinksBareURLs(t *testing.T) {
	t.Parallel()

	out := Sanitize("see https://example.com/docs for details", KindPost)
	if !strings.Contains(out, `href="https://example.com/docs"`) {
		t.Fatalf("bare URL must become a link, got %q", out)
	}

	// Comments allow links too.
	out = Sanitize("mail me at www.example.com", KindComment)
	if !strings.Contains(out, "<a ") {
		t.Fatalf("expected autolink in comment, got %q", out)
	}
}

func TestSanitize_BlocksJavascriptHref(t *testing.T) {
	t.Parallel()

	out := Sanitize(`<a href="javascript:alert(1)">x</a>`, KindPost)
	if strings.Contains(out, "javascript:") {
		t.Fatalf("javascript href must be stripped, got %q", out)
	}
}

func TestSanitize_PureFunction(t *testing.T) {
	t.Parallel()

	in := "**same** input <script>x</script>"
	a := Sanitize(in, KindPost)
	b := Sanitize(in, KindPost)
	if a != b {
		t.Fatalf("sanitize must be deterministic: %q != %q", a, b)
	}
}
