package article

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/postcraft/internal/dom"
)

// anchorHeadings gives each heading an id derived from its text and appends
// a permalink to it. Identical headings get identical ids; that is reported
// as a warning and left as is.
func (t *Transformer) anchorHeadings(region *goquery.Selection, result *Result) {
	seen := make(map[string]bool)

	for _, heading := range nodes(region.Find(t.selector)) {
		result.Stats.HeadingsFound++

		id := t.config.HeadingIDPrefix + Slugify(dom.TextContent(heading))
		if seen[id] {
			result.Stats.DuplicateIDs++
			result.AddWarning("headings", "duplicate heading id", id)
		}
		seen[id] = true

		anchor := dom.Element("a", "href", "#"+id, "class", t.config.PermalinkClass)
		for _, n := range t.icon {
			anchor.AppendChild(dom.Clone(n))
		}

		dom.SetAttr(heading, "id", id)
		heading.AppendChild(anchor)
		result.Stats.HeadingsAnchored++
	}
}
