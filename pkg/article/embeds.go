package article

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/postcraft/internal/dom"
)

// wrapEmbeds puts every fullscreen-capable iframe in a player container.
// Other iframes are left where they are.
func (t *Transformer) wrapEmbeds(region *goquery.Selection, result *Result) {
	for _, frame := range nodes(region.Find("iframe")) {
		result.Stats.Embeds++
		if !dom.HasAttr(frame, "allowfullscreen") {
			continue
		}
		dom.Wrap(frame, dom.Element("div", "class", t.config.PlayerClass))
		result.Stats.EmbedsWrapped++
	}
}
