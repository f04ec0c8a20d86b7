package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/use-agent/pagelens/cleaner"
)

// Sel compiles a CSS selector. Profiles are package-level data, so a bad
// selector panics at init rather than at request time.
func Sel(css string) cascadia.Selector {
	return cascadia.MustCompile(css)
}

// first returns the first node under scope matching m, or nil.
func first(scope *goquery.Selection, m cascadia.Selector) *html.Node {
	found := scope.FindMatcher(m)
	if found.Length() == 0 {
		return nil
	}
	return found.Nodes[0]
}

// Text reads the cleaned text content of the first element matching css.
func Text(css string) Strategy {
	m := Sel(css)
	return func(scope *goquery.Selection) string {
		n := first(scope, m)
		if n == nil {
			return ""
		}
		return cleaner.Text(nodeText(n))
	}
}

// Attr reads an attribute of the first element matching css.
func Attr(css, name string) Strategy {
	m := Sel(css)
	return func(scope *goquery.Selection) string {
		n := first(scope, m)
		if n == nil {
			return ""
		}
		return strings.TrimSpace(attr(n, name))
	}
}

// TextOrAttr reads the text of the first element matching css, falling
// back to one of its attributes when the text is blank.
func TextOrAttr(css, name string) Strategy {
	m := Sel(css)
	return func(scope *goquery.Selection) string {
		n := first(scope, m)
		if n == nil {
			return ""
		}
		if t := cleaner.Text(nodeText(n)); t != "" {
			return t
		}
		return strings.TrimSpace(attr(n, name))
	}
}

// Present yields "true" when an element matching css exists under scope.
func Present(css string) Strategy {
	m := Sel(css)
	return func(scope *goquery.Selection) string {
		if first(scope, m) != nil {
			return "true"
		}
		return ""
	}
}

// Value is a strategy that ignores the document and yields v. It carries
// values derived elsewhere, such as from the request URL.
func Value(v string) Strategy {
	return func(*goquery.Selection) string { return v }
}

// Map post-processes the output of s. An empty result from fn counts as
// no value, so the cascade continues.
func Map(s Strategy, fn func(string) string) Strategy {
	return func(scope *goquery.Selection) string {
		v := s(scope)
		if v == "" {
			return ""
		}
		return fn(v)
	}
}

// Submatch keeps the first capture group of re in the output of s.
func Submatch(s Strategy, re *regexp.Regexp) Strategy {
	return Map(s, func(v string) string {
		if m := re.FindStringSubmatch(v); len(m) > 1 {
			return m[1]
		}
		return ""
	})
}

// AllText collects the cleaned text of every element matching css, in
// document order, skipping blanks.
func AllText(css string) func(*goquery.Selection) []string {
	m := Sel(css)
	return func(scope *goquery.Selection) []string {
		var out []string
		for _, n := range scope.FindMatcher(m).Nodes {
			if t := cleaner.Text(nodeText(n)); t != "" {
				out = append(out, t)
			}
		}
		return out
	}
}

// AllRaw collects the untouched text content of every element matching css.
func AllRaw(css string) func(*goquery.Selection) []string {
	m := Sel(css)
	return func(scope *goquery.Selection) []string {
		var out []string
		for _, n := range scope.FindMatcher(m).Nodes {
			out = append(out, nodeText(n))
		}
		return out
	}
}

// FirstWord keeps the text before the first space.
func FirstWord(v string) string {
	word, _, _ := strings.Cut(strings.TrimSpace(v), " ")
	return word
}

// nodeText concatenates every text node below n, like DOM textContent.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
