package markdown

// Kind identifies a block variant.
type Kind uint8

// Block kinds, in rough order of appearance in a typical document.
const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindCodeBlock
	KindDiagram
	KindTable
	KindImage
	KindBlockquote
	KindList
	KindRule
	KindHTMLBlock
)

// String returns the kind name for diagnostics and test failures.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindCodeBlock:
		return "code"
	case KindDiagram:
		return "diagram"
	case KindTable:
		return "table"
	case KindImage:
		return "image"
	case KindBlockquote:
		return "blockquote"
	case KindList:
		return "list"
	case KindRule:
		return "rule"
	case KindHTMLBlock:
		return "html"
	}
	return "unknown"
}

// Block is one element of the normalized document body. Blocks are
// created once by the Normalizer and never mutated afterwards.
//
// Which fields are set depends on Kind:
//   - KindHeading: Level, Text, Source
//   - KindParagraph, KindBlockquote, KindList, KindHTMLBlock: Source
//   - KindCodeBlock: Language, Text
//   - KindDiagram: Language (diagram kind, e.g. "mermaid"), Text (diagram source)
//   - KindTable: Rows (row 0 is the header), Columns
//   - KindImage: Path, Text (alt text), Title
type Block struct {
	Kind     Kind
	Level    int
	Language string
	Text     string
	Source   string
	Rows     [][]string
	Columns  int
	Path     string
	Title    string
}

// Document is the normalized form of one Markdown source file.
// BaseDir is the directory relative image and link paths resolve against.
type Document struct {
	Source  string
	BaseDir string
	Blocks  []Block
}

// DiagramIndexes returns the positions of all diagram blocks, in document order.
func (d *Document) DiagramIndexes() []int {
	var idx []int
	for i, b := range d.Blocks {
		if b.Kind == KindDiagram {
			idx = append(idx, i)
		}
	}
	return idx
}
