package bookbinder

import "fmt"

// Chapter describes one source file rendered as a syntax-highlighted
// listing unit.
type Chapter struct {
	SourcePath   string // absolute path to the input file
	Title        string // breadcrumb of the path relative to the content root, LaTeX-escaped
	ID           string // sanitized identifier, safe as a file name and include label
	Language     string // listings language name, empty for a plain verbatim listing
	Color        bool
	FragmentFile string // rendered .tex fragment name inside the work directory
}

func (c Chapter) vars() map[string]any {
	return map[string]any{
		"Title":    c.Title,
		"Language": c.Language,
		"Color":    c.Color,
		"Filepath": c.SourcePath,
	}
}

// Book groups an ordered run of chapters compiled into one PDF. When a
// build is split, each volume is its own Book with Volume/Volumes set.
type Book struct {
	Title    string // raw title as supplied by the operator
	Release  string
	Contents string
	Color    bool
	Chapters []Chapter
	Volume   int // 1-based volume index
	Volumes  int // total volumes in the build
}

func (b Book) displayTitle() string {
	if b.Volumes > 1 {
		return fmt.Sprintf("%s, Volume %d of %d", b.Title, b.Volume, b.Volumes)
	}
	return b.Title
}

// outputBase is the deterministic base name for the volume's wrapper
// source file and PDF.
func (b Book) outputBase() string {
	base := sanitizeIdentifier(b.Title)
	if b.Volumes > 1 {
		base = fmt.Sprintf("%s_vol%dof%d", base, b.Volume, b.Volumes)
	}
	return base
}

func (b Book) vars() map[string]any {
	return map[string]any{
		"Title":    escapeLatex(b.displayTitle()),
		"Release":  b.Release,
		"Contents": escapeLatex(b.Contents),
		"Color":    b.Color,
		"Chapters": b.Chapters,
	}
}
