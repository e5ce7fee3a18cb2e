// Package imagesize reads the pixel dimensions of local image assets without
// decoding the full image.
package imagesize

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"path"
	"strconv"
	"strings"

	// Register decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

// ErrUnsupportedFormat is returned when a file is not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Size is a pixel width and height.
type Size struct {
	Width  int
	Height int
}

// Prober returns the dimensions of the asset at a site-relative path.
type Prober interface {
	Probe(sitePath string) (Size, error)
}

// FSProber reads assets from an afero filesystem.
type FSProber struct {
	fs afero.Fs
}

// New returns a prober rooted at dir on the OS filesystem. Paths cannot
// escape dir.
func New(dir string) *FSProber {
	return NewFromFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// NewFromFs returns a prober over an arbitrary afero filesystem.
func NewFromFs(fs afero.Fs) *FSProber {
	return &FSProber{fs: fs}
}

// Probe opens sitePath and reads its dimensions.
func (p *FSProber) Probe(sitePath string) (Size, error) {
	name := path.Clean("/" + strings.TrimLeft(sitePath, "/"))

	f, err := p.fs.Open(name)
	if err != nil {
		return Size{}, err
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(path.Ext(name), ".svg") {
		return decodeSVG(f)
	}
	return decodeRaster(f)
}

func decodeRaster(r io.Reader) (Size, error) {
	br := bufio.NewReader(r)

	// Text sniffing lets SVG files with a non-.svg name still work.
	if head, _ := br.Peek(512); looksLikeSVG(head) {
		return decodeSVG(br)
	}

	cfg, _, err := image.DecodeConfig(br)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Size{}, ErrUnsupportedFormat
		}
		return Size{}, fmt.Errorf("decoding image header: %w", err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

func looksLikeSVG(head []byte) bool {
	s := strings.TrimSpace(string(head))
	return strings.HasPrefix(s, "<svg") ||
		(strings.HasPrefix(s, "<?xml") && strings.Contains(s, "<svg"))
}

// decodeSVG takes width/height from the root element, falling back to the
// viewBox for whichever is missing or relative.
func decodeSVG(r io.Reader) (Size, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return Size{}, fmt.Errorf("%w: svg: %v", ErrUnsupportedFormat, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return Size{}, fmt.Errorf("%w: svg: missing <svg> root", ErrUnsupportedFormat)
	}

	w, wok := svgLength(root.SelectAttrValue("width", ""))
	h, hok := svgLength(root.SelectAttrValue("height", ""))
	if wok && hok {
		return Size{Width: w, Height: h}, nil
	}

	vw, vh, ok := viewBox(root.SelectAttrValue("viewBox", ""))
	if !ok {
		if wok || hok {
			return Size{}, fmt.Errorf("%w: svg: partial size and no viewBox", ErrUnsupportedFormat)
		}
		return Size{}, fmt.Errorf("%w: svg: no size information", ErrUnsupportedFormat)
	}

	switch {
	case wok:
		h = int(math.Round(float64(w) * vh / vw))
	case hok:
		w = int(math.Round(float64(h) * vw / vh))
	default:
		w, h = int(math.Round(vw)), int(math.Round(vh))
	}
	return Size{Width: w, Height: h}, nil
}

func svgLength(v string) (int, bool) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return int(math.Round(f)), true
}

func viewBox(v string) (float64, float64, bool) {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, err1 := strconv.ParseFloat(fields[2], 64)
	h, err2 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
