package article

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/postcraft/internal/dom"
)

// Minifier compacts a markup fragment before it is inserted.
type Minifier func(markup string) string

var interTagWhitespace = regexp.MustCompile(`>\s+<`)

// CompactMarkup drops whitespace between tags and around the fragment.
// Whitespace inside text nodes is left alone.
func CompactMarkup(markup string) string {
	return strings.TrimSpace(interTagWhitespace.ReplaceAllString(markup, "><"))
}

// NoopMinifier returns markup unchanged.
func NoopMinifier(markup string) string {
	return markup
}

// permalinkMarkup takes the hidden-text class as its only verb.
const permalinkMarkup = `
        <span class="%s"> permalink</span>
        <svg fill="currentColor" aria-hidden="true" focusable="false" width="1em" height="1em" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
          <path d="M9.199 13.599a5.99 5.99 0 0 0 3.949 2.345 5.987 5.987 0 0 0 5.105-1.702l2.995-2.994a5.992 5.992 0 0 0 1.695-4.285 5.976 5.976 0 0 0-1.831-4.211 5.99 5.99 0 0 0-6.431-1.242 6.003 6.003 0 0 0-1.905 1.24l-1.731 1.721a.999.999 0 1 0 1.41 1.418l1.709-1.699a3.985 3.985 0 0 1 2.761-1.123 3.975 3.975 0 0 1 2.799 1.122 3.997 3.997 0 0 1 .111 5.644l-3.005 3.006a3.982 3.982 0 0 1-3.395 1.126 3.987 3.987 0 0 1-2.632-1.563A1 1 0 0 0 9.201 13.6zm5.602-3.198a5.99 5.99 0 0 0-3.949-2.345 5.987 5.987 0 0 0-5.105 1.702l-2.995 2.994a5.992 5.992 0 0 0-1.695 4.285 5.976 5.976 0 0 0 1.831 4.211 5.99 5.99 0 0 0 6.431 1.242 6.003 6.003 0 0 0 1.905-1.24l1.723-1.723a.999.999 0 1 0-1.414-1.414L9.836 19.81a3.985 3.985 0 0 1-2.761 1.123 3.975 3.975 0 0 1-2.799-1.122 3.997 3.997 0 0 1-.111-5.644l3.005-3.006a3.982 3.982 0 0 1 3.395-1.126 3.987 3.987 0 0 1 2.632 1.563 1 1 0 0 0 1.602-1.198z"/>
        </svg>`

// Play button pictogram shown over a paused GIF.
const gifPlayPath = "M1288.678 637.83q0 37-33 56l-512 288q-14 8-31 8t-32-9q-32-18-32-55v-576q0-37 32-55 31-20 63-1l512 288q33 19 33 56zm128 0q0-104-40.5-198.5t-109.5-163.5q-69-69-163.5-109.5t-198.5-40.5q-104 0-198.5 40.5t-163.5 109.5q-69 69-109.5 163.5t-40.5 198.5q0 104 40.5 198.5t109.5 163.5q69 69 163.5 109.5t198.5 40.5q104 0 198.5-40.5t163.5-109.5q69-69 109.5-163.5t40.5-198.5zm256 0q0 209-103 385.5t-279.5 279.5q-176.5 103-385.5 103t-385.5-103q-176.5-103-279.5-279.5t-103-385.5q0-209 103-385.5t279.5-279.5q176.5-103 385.5-103t385.5 103q176.5 103 279.5 279.5t103 385.5z"

// parsePermalinkIcon parses the icon once; each heading gets clones.
func parsePermalinkIcon(markup string) ([]*html.Node, error) {
	holder := dom.Element("a")
	if err := dom.Fragment(holder, markup); err != nil {
		return nil, err
	}
	var out []*html.Node
	for c := holder.FirstChild; c != nil; {
		next := c.NextSibling
		holder.RemoveChild(c)
		out = append(out, c)
		c = next
	}
	return out, nil
}

func gifIcon() *html.Node {
	return dom.Append(
		dom.SVGElement("svg", "viewBox", "0 -256 1792 1792", "aria-hidden", "true"),
		dom.SVGElement("path", "d", gifPlayPath, "fill", "var(--svg-fill)"),
	)
}
