// Package mdpress converts Markdown documents to PDF.
//
// The pipeline normalizes Markdown into a block sequence, renders
// Mermaid diagram blocks to images through the Mermaid CLI, renders the
// document to standalone HTML, and prints it to PDF with headless
// Chrome (or paginates it natively without a browser).
//
// Basic usage:
//
//	converter, err := mdpress.NewConverter()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer converter.Close()
//
//	result, err := converter.Convert(ctx, mdpress.Input{
//		Markdown:   source,
//		SourceDir:  filepath.Dir(inputPath),
//		OutputPath: "out.pdf",
//	})
//
// Diagram failures do not abort a conversion: the affected blocks
// render as placeholders and the failures are reported as warnings on
// the Result. Use WithStrictDiagrams to make them fatal instead.
package mdpress
