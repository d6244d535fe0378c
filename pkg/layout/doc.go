// Package layout computes where the three blocks of a swipe card go.
//
// A card is a fixed canvas holding, top to bottom, an upper-cased title, an
// illustration and a wrapped tagline. [Compute] measures the text with the
// caller's [Measurer] implementations and returns a [Result] whose boxes are
// pairwise disjoint and inside the canvas, or a LAYOUT_OVERFLOW error when no
// amount of shrinking makes the content fit.
//
// # Algorithm
//
//  1. Title fit: the title is measured at the nominal size and scaled down
//     when wider than the padded canvas width.
//  2. Tagline pre-measurement: the tagline is wrapped with a column budget
//     (fixed, or estimated from an average character width) and its height is
//     summed with line spacing plus a safety margin.
//  3. Image budget: the illustration is scaled uniformly into the space left
//     between the title and the tagline and pinned to the top of that region.
//  4. Overflow correction: while the tagline would cross the bottom limit the
//     image is shrunk, down to a floor; at the floor the bottom padding gives
//     way, down to its own minimum.
//  5. Tagline placement: lines are centred one by one below the image and
//     pulled upward when they would cross the bottom limit.
//
// Compute is a pure function of its inputs. A [Profile] is a plain value, so
// several profiles can be laid out concurrently.
package layout
