// Package render turns a normalized block sequence and a set of
// rendered diagram images into a standalone HTML5 document.
//
// Inline-rich blocks (headings, paragraphs, quotes, lists) are
// re-rendered from their raw Markdown through goldmark, so emphasis,
// links and footnotes behave exactly as GFM defines them. Structure
// blocks (code, tables, images, diagrams) are emitted directly from
// the block model, which keeps their layout under our control.
package render
