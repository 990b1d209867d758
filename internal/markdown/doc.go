// Package markdown normalizes Markdown source into an ordered sequence
// of typed blocks.
//
// The normalizer parses GitHub-flavored Markdown via Goldmark and walks
// the top level of the AST, classifying each node. Fenced code blocks
// whose language tag names a diagram format (e.g. mermaid) become
// diagram blocks so the pipeline can render them out-of-band. Table
// rows are padded or truncated to the header's column count. Blocks
// keep their raw source span so inline-rich content (paragraphs,
// blockquotes, lists) can be re-rendered with full Markdown semantics
// by the document renderer.
package markdown
