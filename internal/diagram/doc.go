// Package diagram renders fenced diagram blocks to raster images by
// invoking the Mermaid CLI (mmdc) as an external tool.
//
// The adapter distinguishes the tool being absent (ErrUnavailable) from
// the tool rejecting a malformed diagram (ErrSyntax), so the pipeline
// can skip-and-warn instead of aborting. Every invocation carries a
// timeout; a hung renderer becomes an error, never a stalled pipeline.
package diagram
