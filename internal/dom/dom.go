// Package dom holds the small set of tree operations the article rules need:
// building elements, deep cloning, splicing a replacement in place of a node,
// and attribute access. Everything works on golang.org/x/net/html nodes so
// the rules never touch the parser's wider surface.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SVGNamespace is the namespace x/net/html uses for inline svg content.
const SVGNamespace = "svg"

// Element creates a detached HTML element. attrs are key/value pairs.
func Element(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// SVGElement creates a detached element in the svg namespace.
func SVGElement(tag string, attrs ...string) *html.Node {
	n := Element(tag, attrs...)
	n.Namespace = SVGNamespace
	return n
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append adds children to parent in order. Children must be detached.
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// Clone returns a deep copy of n with no parent or siblings.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      make([]html.Attribute, len(n.Attr)),
	}
	copy(c.Attr, n.Attr)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// Replace splices repl into old's position and detaches old.
// It reports false when old has no parent, leaving the tree unchanged.
func Replace(old, repl *html.Node) bool {
	parent := old.Parent
	if parent == nil {
		return false
	}
	if repl.Parent != nil {
		repl.Parent.RemoveChild(repl)
	}
	parent.InsertBefore(repl, old)
	parent.RemoveChild(old)
	return true
}

// Wrap replaces n with wrapper, placing a clone of n as wrapper's last child.
// It returns the clone so callers can keep following the moved content.
func Wrap(n, wrapper *html.Node) *html.Node {
	clone := Clone(n)
	wrapper.AppendChild(clone)
	Replace(n, wrapper)
	return clone
}

// Attr returns the value of key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets key to val, appending the attribute when it is missing.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes every occurrence of key.
func RemoveAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// TextContent concatenates all descendant text, like the DOM property.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			sb.WriteString(cur.Data)
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// Find returns the first element named tag in n's subtree, n included.
func Find(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// Fragment parses markup as children of context and appends them to it.
func Fragment(context *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		context.AppendChild(n)
	}
	return nil
}
