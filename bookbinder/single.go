package bookbinder

import (
	"fmt"
	"os"
	"path/filepath"
)

// ChapterCompiler typesets a single source file as a standalone
// document. ContentRoot, when set, is stripped from the path to derive
// the title; otherwise the file's own name is used.
type ChapterCompiler struct {
	SourcePath  string
	ContentRoot string
	Color       bool
	Languages   LanguageMap
	TexCommand  string
	OutputDir   string // defaults to the current working directory
}

func NewChapterCompiler(sourcePath string) *ChapterCompiler {
	return &ChapterCompiler{
		SourcePath: sourcePath,
		Languages:  DefaultLanguages(),
		TexCommand: DefaultTexCommand,
	}
}

// Compile renders and typesets the file, copies the PDF and the
// rendered .tex source back to the output directory, and returns the
// PDF path.
func (cc *ChapterCompiler) Compile() (string, error) {
	ch, err := deriveChapter(cc.SourcePath, cc.ContentRoot, cc.Color, cc.Languages)
	if err != nil {
		return "", err
	}

	outDir := cc.OutputDir
	if outDir == "" {
		if outDir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("resolving output directory: %w", err)
		}
	}

	work, err := newWorkDir("chapter")
	if err != nil {
		return "", err
	}
	defer work.Release()

	texFile := ch.ID + ".tex"
	rendered, err := Render("chapter.tex", ch.vars())
	if err != nil {
		return "", err
	}
	texPath := filepath.Join(work.Path, texFile)
	if err := os.WriteFile(texPath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", texFile, err)
	}

	pdf, err := compileTex(work.Path, texFile, cc.TexCommand)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(outDir, filepath.Base(pdf))
	if err := copyFile(pdf, dest); err != nil {
		return "", err
	}
	if err := copyFile(texPath, filepath.Join(outDir, texFile)); err != nil {
		os.Remove(dest)
		return "", err
	}
	return dest, nil
}
