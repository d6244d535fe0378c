// Package pkg provides the core libraries for swipecard.
//
// # Overview
//
// Swipecard composes portrait swipe cards: a title at the top, an
// illustration in the middle and a wrapped tagline underneath, drawn on a
// fixed template. The text for each card comes from a CSV row whose
// identifier matches the illustration's file name.
//
// # Architecture
//
// The data flow through swipecard:
//
//	CSV + illustrations directory
//	         ↓
//	    [source] package (read rows, discover R001.png style files)
//	         ↓
//	    [pipeline] package (pair them, run a bounded worker pool)
//	         ↓
//	    [layout] package (fit title, image and tagline into the canvas)
//	         ↓
//	    [render] package (draw onto the template, encode PNG)
//	         ↓
//	    output/R001_Crypto_Bro.png
//
// # Quick Start
//
//	cfg := config.Builtin()
//	profile, _ := cfg.Profile("roles")
//	titleFont, bodyFont, _ := profile.ResolveFonts()
//
//	l, err := layout.Compute(profile.Layout, "Crypto Bro",
//	    "Will explain the blockchain to you at brunch",
//	    image.Pt(800, 800), titleFont, bodyFont)
//
// # Main Packages
//
// [layout] - The layout engine. Pure geometry: given a profile, the two texts,
// the illustration size and two font measurers it returns non-overlapping
// boxes, shrinking the title and then the illustration when space runs out.
//
// [render] - Draws a layout onto the template with fogleman/gg and resizes
// illustrations with disintegration/imaging.
//
// [fonts] - Resolves font candidate chains to TrueType faces, falling back to
// the embedded Go fonts, and measures text for the layout engine.
//
// [source] - CSV records keyed by identifier and illustration discovery.
//
// [config] - Named profiles (layout, colors, fonts, source columns), built-in
// or loaded from TOML.
//
// ## Infrastructure
//
// [pipeline] - Batch orchestration with per-card outcomes and a summary.
//
// [cache] - Content-addressed render cache so unchanged cards are not redrawn.
//
// [observability] - Optional hooks for card and cache events.
//
// [errors] - Structured error codes shared by all packages.
//
// [buildinfo] - Version information set at build time.
package pkg
