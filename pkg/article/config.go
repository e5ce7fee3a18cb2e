// Package article rewrites rendered article pages before they are written to
// disk: lazy, sized images, click-to-play GIFs, captioned figures, heading
// permalinks and responsive embed containers.
package article

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-playground/validator/v10"
)

// Config controls which rewrites run and the markup they emit.
type Config struct {
	// === Scope ===

	// ArticleSelector picks the region every rule is confined to.
	ArticleSelector string `json:"article_selector" yaml:"article_selector" mapstructure:"article_selector" validate:"required,cssselector"`

	// OutputExtension is the output path suffix that turns the transform on.
	// Any other output path is passed through untouched.
	OutputExtension string `json:"output_extension" yaml:"output_extension" mapstructure:"output_extension" validate:"required,startswith=."`

	// AssetRoot is the directory site-relative image paths resolve against.
	AssetRoot string `json:"asset_root" yaml:"asset_root" mapstructure:"asset_root" validate:"required_if=SizeImages true"`

	// === Rules ===

	// LazyLoad adds loading="lazy" to every article image.
	LazyLoad bool `json:"lazy_load" yaml:"lazy_load" mapstructure:"lazy_load"`

	// SizeImages sets width/height on local images from the files on disk.
	SizeImages bool `json:"size_images" yaml:"size_images" mapstructure:"size_images"`

	// WrapGIFs replaces GIFs with a checkbox toggle so they start paused.
	WrapGIFs bool `json:"wrap_gifs" yaml:"wrap_gifs" mapstructure:"wrap_gifs"`

	// Figures turns images with a title into figure/figcaption pairs.
	Figures bool `json:"figures" yaml:"figures" mapstructure:"figures"`

	// CaptionMarkup parses the title as HTML instead of plain text.
	CaptionMarkup bool `json:"caption_markup" yaml:"caption_markup" mapstructure:"caption_markup"`

	// HeadingAnchors gives headings an id and a permalink.
	HeadingAnchors bool `json:"heading_anchors" yaml:"heading_anchors" mapstructure:"heading_anchors"`

	// HeadingLevels lists the heading tags that get anchors.
	HeadingLevels []string `json:"heading_levels" yaml:"heading_levels" mapstructure:"heading_levels" validate:"required_if=HeadingAnchors true,dive,oneof=h1 h2 h3 h4 h5 h6"`

	// HeadingIDPrefix is prepended to every heading slug.
	HeadingIDPrefix string `json:"heading_id_prefix" yaml:"heading_id_prefix" mapstructure:"heading_id_prefix" validate:"excludesrune=#"`

	// WrapEmbeds puts fullscreen-capable iframes in a player container.
	WrapEmbeds bool `json:"wrap_embeds" yaml:"wrap_embeds" mapstructure:"wrap_embeds"`

	// === Markup ===

	GIFToggleClass string `json:"gif_toggle_class" yaml:"gif_toggle_class" mapstructure:"gif_toggle_class" validate:"required"`
	GIFToggleTitle string `json:"gif_toggle_title" yaml:"gif_toggle_title" mapstructure:"gif_toggle_title"`
	HiddenClass    string `json:"hidden_class" yaml:"hidden_class" mapstructure:"hidden_class" validate:"required"`
	PermalinkClass string `json:"permalink_class" yaml:"permalink_class" mapstructure:"permalink_class" validate:"required"`
	PlayerClass    string `json:"player_class" yaml:"player_class" mapstructure:"player_class" validate:"required"`
}

// DefaultConfig returns the configuration the site is built with.
func DefaultConfig() *Config {
	return &Config{
		ArticleSelector: "main article",
		OutputExtension: ".html",
		AssetRoot:       "src",

		LazyLoad:       true,
		SizeImages:     true,
		WrapGIFs:       true,
		Figures:        true,
		CaptionMarkup:  false,
		HeadingAnchors: true,
		HeadingLevels:  []string{"h2", "h3"},
		WrapEmbeds:     true,

		HeadingIDPrefix: "heading-",
		GIFToggleClass:  "click-to-gif",
		GIFToggleTitle:  "click/hit space to show gif",
		HiddenClass:     "visually-hidden",
		PermalinkClass:  "heading-permalink",
		PlayerClass:     "video-player",
	}
}

// PresetAnchorsOnly only adds heading permalinks. It never reads the
// filesystem, which makes it safe for pages whose assets are not local.
func PresetAnchorsOnly() *Config {
	cfg := DefaultConfig()
	cfg.LazyLoad = false
	cfg.SizeImages = false
	cfg.WrapGIFs = false
	cfg.Figures = false
	cfg.WrapEmbeds = false
	return cfg
}

// Merge returns a copy of c with non-empty values from other applied.
// Rule switches are only ever turned on by other, never off.
func (c *Config) Merge(other *Config) *Config {
	merged := *c
	merged.HeadingLevels = append([]string(nil), c.HeadingLevels...)
	if other == nil {
		return &merged
	}

	overrideString(&merged.ArticleSelector, other.ArticleSelector)
	overrideString(&merged.OutputExtension, other.OutputExtension)
	overrideString(&merged.AssetRoot, other.AssetRoot)
	overrideString(&merged.HeadingIDPrefix, other.HeadingIDPrefix)
	overrideString(&merged.GIFToggleClass, other.GIFToggleClass)
	overrideString(&merged.GIFToggleTitle, other.GIFToggleTitle)
	overrideString(&merged.HiddenClass, other.HiddenClass)
	overrideString(&merged.PermalinkClass, other.PermalinkClass)
	overrideString(&merged.PlayerClass, other.PlayerClass)

	if len(other.HeadingLevels) > 0 {
		merged.HeadingLevels = append([]string(nil), other.HeadingLevels...)
	}

	merged.LazyLoad = merged.LazyLoad || other.LazyLoad
	merged.SizeImages = merged.SizeImages || other.SizeImages
	merged.WrapGIFs = merged.WrapGIFs || other.WrapGIFs
	merged.Figures = merged.Figures || other.Figures
	merged.CaptionMarkup = merged.CaptionMarkup || other.CaptionMarkup
	merged.HeadingAnchors = merged.HeadingAnchors || other.HeadingAnchors
	merged.WrapEmbeds = merged.WrapEmbeds || other.WrapEmbeds

	return &merged
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// withDefaults fills empty markup and scope fields from DefaultConfig so a
// partially populated Config still produces valid markup.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	filled := *c
	if filled.ArticleSelector == "" {
		filled.ArticleSelector = d.ArticleSelector
	}
	if filled.OutputExtension == "" {
		filled.OutputExtension = d.OutputExtension
	}
	if filled.AssetRoot == "" {
		filled.AssetRoot = d.AssetRoot
	}
	if len(filled.HeadingLevels) == 0 {
		filled.HeadingLevels = d.HeadingLevels
	}
	if filled.GIFToggleClass == "" {
		filled.GIFToggleClass = d.GIFToggleClass
	}
	if filled.HiddenClass == "" {
		filled.HiddenClass = d.HiddenClass
	}
	if filled.PermalinkClass == "" {
		filled.PermalinkClass = d.PermalinkClass
	}
	if filled.PlayerClass == "" {
		filled.PlayerClass = d.PlayerClass
	}
	return &filled
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cssselector", func(fl validator.FieldLevel) bool {
		_, err := cascadia.ParseGroup(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks the config and reports every invalid field at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatValidationError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", e.Namespace())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", e.Namespace(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", e.Namespace(), e.Param(), e.Value())
	case "cssselector":
		return fmt.Sprintf("%s is not a valid CSS selector: %q", e.Namespace(), e.Value())
	case "excludesrune":
		return fmt.Sprintf("%s must not contain %q", e.Namespace(), e.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", e.Namespace(), e.Tag())
	}
}
