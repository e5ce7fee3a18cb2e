package article

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/postcraft/internal/dom"
)

// rewriteImages runs the image steps on every article image in document
// order. The GIF and caption steps chain: each takes the node currently in
// the tree and returns its replacement, so a captioned GIF ends up as
// figure > label > img.
func (t *Transformer) rewriteImages(region *goquery.Selection, result *Result) error {
	cfg := t.config
	if !cfg.LazyLoad && !cfg.SizeImages && !cfg.WrapGIFs && !cfg.Figures {
		return nil
	}

	for _, img := range nodes(region.Find("img")) {
		result.Stats.Images++

		if cfg.LazyLoad {
			dom.SetAttr(img, "loading", "lazy")
			result.Stats.ImagesLazy++
		}

		src, hasSrc := dom.Attr(img, "src")

		if cfg.SizeImages && hasSrc {
			if isLocal(src) {
				if err := t.sizeImage(img, src); err != nil {
					return err
				}
				result.Stats.ImagesSized++
			} else {
				result.Stats.ImagesRemote++
			}
		}

		current, inner := img, img
		if cfg.WrapGIFs && hasSrc && isGIF(src) {
			current, inner = t.wrapGIF(current)
			result.Stats.GIFsWrapped++
		}
		if cfg.Figures && dom.HasAttr(inner, "title") {
			if err := t.wrapFigure(current, inner); err != nil {
				result.AddWarning("images", "caption markup could not be parsed", err.Error())
				continue
			}
			result.Stats.FiguresBuilt++
		}
	}
	return nil
}

// sizeImage sets width and height from the asset on disk. A missing or
// unreadable file fails the page.
func (t *Transformer) sizeImage(img *html.Node, src string) error {
	p := assetPath(src)
	size, err := t.prober.Probe(p)
	if err != nil {
		return fmt.Errorf("%w: %s (src %q): %w", ErrImageProbe, path.Join(t.config.AssetRoot, p), src, err)
	}
	dom.SetAttr(img, "width", strconv.Itoa(size.Width))
	dom.SetAttr(img, "height", strconv.Itoa(size.Height))
	return nil
}

// wrapGIF swaps img for a label holding a checked checkbox, a play icon and
// a clone of the image. A stylesheet keyed on the checkbox keeps the GIF
// paused until it is clicked.
func (t *Transformer) wrapGIF(img *html.Node) (label, clone *html.Node) {
	label = dom.Element("label", "class", t.config.GIFToggleClass)
	if t.config.GIFToggleTitle != "" {
		dom.SetAttr(label, "title", t.config.GIFToggleTitle)
	}
	dom.Append(label,
		dom.Element("input", "type", "checkbox", "checked", "true", "class", t.config.HiddenClass),
		dom.Clone(t.gifIcon),
	)
	clone = dom.Wrap(img, label)
	return label, clone
}

// wrapFigure swaps current for a figure holding a clone of current and a
// figcaption built from img's title. The cloned image has no title.
func (t *Transformer) wrapFigure(current, img *html.Node) error {
	caption, _ := dom.Attr(img, "title")

	figcaption := dom.Element("figcaption")
	if t.config.CaptionMarkup {
		if err := dom.Fragment(figcaption, caption); err != nil {
			return err
		}
	} else {
		figcaption.AppendChild(dom.Text(caption))
	}

	dom.RemoveAttr(img, "title")

	figure := dom.Element("figure")
	dom.Wrap(current, figure)
	figure.AppendChild(figcaption)
	return nil
}

// isLocal reports whether src names a file under the asset root. Anything
// mentioning http is remote, as are data: URIs and protocol-relative URLs.
func isLocal(src string) bool {
	if src == "" || strings.Contains(src, "http") {
		return false
	}
	if strings.HasPrefix(src, "//") || strings.HasPrefix(strings.ToLower(src), "data:") {
		return false
	}
	return true
}

// isGIF checks the extension of the path part of src.
func isGIF(src string) bool {
	return strings.EqualFold(path.Ext(stripQuery(src)), ".gif")
}

// assetPath turns an img src into a path relative to the asset root.
func assetPath(src string) string {
	p := stripQuery(src)
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	return p
}

func stripQuery(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		return src[:i]
	}
	return src
}
