package htmlsanitize_test

import (
	"strings"
	"testing"

	"cheermate/internal/app/system/htmlsanitize"
)

func TestSanitizeKeepsSafeMarkup(t *testing.T) {
	cases := []string{
		"Hello, World!",
		"<p><strong>Bold</strong> and <em>italic</em></p>",
		"<ul><li>Item 1</li><li>Item 2</li></ul>",
		"<blockquote>A quote</blockquote>",
		"<u>underline</u> <s>strikethrough</s> <sub>sub</sub> <sup>sup</sup> <mark>mark</mark>",
		"<pre><code>function test() {}</code></pre>",
	}
	for _, input := range cases {
		if got := htmlsanitize.Sanitize(input); got != input {
			t.Errorf("Sanitize(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestSanitizeStripsDangerousMarkup(t *testing.T) {
	cases := []struct {
		name, input, mustNotContain string
	}{
		{"script", "<p>Hello</p><script>alert('x')</script>", "script"},
		{"onclick", `<button onclick="alert('x')">Click</button>`, "onclick"},
		{"js href", `<a href="javascript:alert('x')">Click</a>`, "javascript:"},
		{"iframe", `<p>Content</p><iframe src="https://evil.com"></iframe>`, "iframe"},
		{"style tag", `<style>body { color: red; }</style><p>Text</p>`, "<style>"},
		{"onerror", `<img src="x" onerror="alert('x')">`, "onerror"},
		{"form", `<form action="/s"><input name="d"></form>`, "<form"},
		{"data url", `<img src="data:text/html,<script>alert('x')</script>">`, "data:text/html"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := htmlsanitize.Sanitize(tc.input); strings.Contains(got, tc.mustNotContain) {
				t.Errorf("Sanitize(%q) = %q, still contains %q", tc.input, got, tc.mustNotContain)
			}
		})
	}
}

func TestSanitizeKeepsTableAttributes(t *testing.T) {
	input := `<table class="roster"><tr><td colspan="2" style="text-align:center">Cell</td></tr></table>`
	got := htmlsanitize.Sanitize(input)
	for _, want := range []string{`class="roster"`, `colspan="2"`, `style=`} {
		if !strings.Contains(got, want) {
			t.Errorf("Sanitize(table) = %q, missing %q", got, want)
		}
	}
}

func TestIsPlainText(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hello</p>", false},
	}
	for _, tc := range cases {
		if got := htmlsanitize.IsPlainText(tc.input); got != tc.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	cases := []struct {
		input, want string
	}{
		{"", ""},
		{"Hello, World!", "<p>Hello, World!</p>"},
		{"Line 1\nLine 2\nLine 3", "<p>Line 1<br>Line 2<br>Line 3</p>"},
		{"A & B", "<p>A &amp; B</p>"},
	}
	for _, tc := range cases {
		if got := htmlsanitize.PlainTextToHTML(tc.input); got != tc.want {
			t.Errorf("PlainTextToHTML(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPrepareForDisplay(t *testing.T) {
	if got := htmlsanitize.PrepareForDisplay("Line 1\nLine 2"); string(got) != "<p>Line 1<br>Line 2</p>" {
		t.Errorf("plain text: got %q", got)
	}
	if got := htmlsanitize.PrepareForDisplay("<p>Hello</p><script>alert('x')</script>"); string(got) != "<p>Hello</p>" {
		t.Errorf("markup: got %q", got)
	}
	if got := htmlsanitize.PrepareForDisplay(""); got != "" {
		t.Errorf("empty: got %q", got)
	}
}

func TestStrip(t *testing.T) {
	if got := htmlsanitize.Strip("<b>홍길동</b>"); got != "홍길동" {
		t.Errorf("Strip = %q, want 홍길동", got)
	}
	if got := htmlsanitize.Strip("<script>alert('x')</script>차은우"); got != "차은우" {
		t.Errorf("Strip = %q, want 차은우", got)
	}
}
