// Package render draws a computed card layout onto a template.
//
// # Overview
//
// Rendering is the last step of a card: the layout engine in
// [github.com/swipefish/swipecard/pkg/layout] decides where everything goes,
// and this package only paints. [LayoutAndRender] does both in one call:
//
//	img, res, err := render.LayoutAndRender(profile, style, tmpl,
//	    "Crypto Bro", "Buys the dip, then the dip buys him.",
//	    illustration, titleFont, bodyFont)
//	data, err := render.EncodePNG(img)
//
// # Composition Order
//
// The template is resized to the canvas with a Lanczos filter when its size
// differs, then copied; the caller's template is never modified. On the copy
// the header icons are drawn first, then the title, the scaled illustration
// (alpha-composited) and finally each tagline line at its own centred box.
//
// # Colors
//
// [Style] holds hex colors for the text and the two header icons. They are
// parsed with go-colorful so any "#rgb" or "#rrggbb" form is accepted.
package render
