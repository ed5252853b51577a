package bookbinder

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// BookCompiler assembles every source file under a root directory into
// one typeset book, optionally split across several volumes.
type BookCompiler struct {
	RootDir  string
	Title    string
	Release  string
	Contents string

	color      bool
	volumes    int
	keepWork   bool
	languages  LanguageMap
	texCommand string
	outputDir  string
}

// NewBookCompiler creates a compiler for rootDir with a single volume,
// the default language table and the default typesetting command.
func NewBookCompiler(rootDir, title, release, contents string) *BookCompiler {
	return &BookCompiler{
		RootDir:    rootDir,
		Title:      title,
		Release:    release,
		Contents:   contents,
		volumes:    1,
		languages:  DefaultLanguages(),
		texCommand: DefaultTexCommand,
	}
}

func (bc *BookCompiler) SetColor(enable bool) {
	bc.color = enable
}

// SetVolumes splits the book into n contiguous volumes. Validation
// happens at Compile time, once the chapter count is known.
func (bc *BookCompiler) SetVolumes(n int) {
	bc.volumes = n
}

// SetKeepWorkDir leaves the temporary work directory in place after the
// build, for inspection of the intermediate sources.
func (bc *BookCompiler) SetKeepWorkDir(keep bool) {
	bc.keepWork = keep
}

func (bc *BookCompiler) SetLanguages(m LanguageMap) {
	bc.languages = m
}

// SetTexCommand overrides the external typesetting compiler.
func (bc *BookCompiler) SetTexCommand(command string) {
	bc.texCommand = command
}

// SetOutputDir overrides where the finished PDFs are copied. The
// default is the invocation's current working directory.
func (bc *BookCompiler) SetOutputDir(dir string) {
	bc.outputDir = dir
}

// Compile walks the root, renders every chapter, typesets each volume
// and copies the finished PDFs out. A failure anywhere aborts the whole
// build; no PDF is written unless every volume compiled.
func (bc *BookCompiler) Compile() ([]string, error) {
	info, err := os.Stat(bc.RootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputPath, bc.RootDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInputPath, bc.RootDir)
	}

	files, err := discoverFiles(bc.RootDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, bc.RootDir)
	}
	if bc.volumes < 1 || bc.volumes > len(files) {
		return nil, fmt.Errorf("%w: %d volumes for %d chapters", ErrVolumeCount, bc.volumes, len(files))
	}

	outDir := bc.outputDir
	if outDir == "" {
		if outDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("resolving output directory: %w", err)
		}
	}

	work, err := newWorkDir("book")
	if err != nil {
		return nil, err
	}
	if bc.keepWork {
		work.Keep()
	}
	defer work.Release()

	// Names the assembler itself writes into the work directory; a
	// chapter landing on one of these would be silently overwritten.
	reserved := map[string]string{"gplv2": "the license fragment"}
	for v := 1; v <= bc.volumes; v++ {
		base := Book{Title: bc.Title, Volume: v, Volumes: bc.volumes}.outputBase()
		reserved[base] = "a book wrapper"
	}

	chapters := make([]Chapter, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, file := range files {
		ch, err := AssembleChapter(work.Path, file, bc.RootDir, bc.color, bc.languages)
		if err != nil {
			return nil, &ChapterError{File: file, Err: err}
		}
		if what, ok := reserved[ch.ID]; ok {
			return nil, &ChapterError{File: file, Err: fmt.Errorf("%w: %s is reserved for %s", ErrIdentifierCollision, ch.ID, what)}
		}
		if prev, ok := seen[ch.ID]; ok {
			return nil, &ChapterError{File: file, Err: fmt.Errorf("%w: %s collides with %s", ErrIdentifierCollision, ch.ID, prev)}
		}
		seen[ch.ID] = file
		log.Printf("Rendering %s", ch.FragmentFile)
		chapters = append(chapters, ch)
	}

	license, err := Render("gplv2.tex", map[string]any{})
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(work.Path, "gplv2.tex"), []byte(license), 0o644); err != nil {
		return nil, fmt.Errorf("writing license: %w", err)
	}

	var pdfs []string
	for i, group := range partitionVolumes(chapters, bc.volumes) {
		book := Book{
			Title:    bc.Title,
			Release:  bc.Release,
			Contents: bc.Contents,
			Color:    bc.color,
			Chapters: group,
			Volume:   i + 1,
			Volumes:  bc.volumes,
		}
		wrapper := book.outputBase() + ".tex"
		rendered, err := Render("book.tex", book.vars())
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(work.Path, wrapper), []byte(rendered), 0o644); err != nil {
			return nil, fmt.Errorf("writing wrapper %s: %w", wrapper, err)
		}
		pdf, err := compileTex(work.Path, wrapper, bc.texCommand)
		if err != nil {
			return nil, err
		}
		pdfs = append(pdfs, pdf)
	}

	// Copy out only after every volume compiled, so a late failure
	// leaves nothing behind.
	var out []string
	for _, pdf := range pdfs {
		dest := filepath.Join(outDir, filepath.Base(pdf))
		if err := copyFile(pdf, dest); err != nil {
			for _, copied := range out {
				os.Remove(copied)
			}
			return nil, err
		}
		out = append(out, dest)
	}
	return out, nil
}

// discoverFiles walks root and returns every regular file beneath it in
// lexicographic full-path order. Directories are traversed but never
// become chapters; symlinks and other non-regular entries are skipped.
func discoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInputPath, path, err)
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// WalkDir is already lexical per directory, but the ordering
	// contract is lexicographic over the full path.
	sort.Strings(files)
	return files, nil
}

// partitionVolumes splits chapters into n contiguous order-preserving
// groups whose sizes differ by at most one, the larger groups first.
// Callers must ensure 1 <= n <= len(chapters).
func partitionVolumes(chapters []Chapter, n int) [][]Chapter {
	groups := make([][]Chapter, 0, n)
	base := len(chapters) / n
	rem := len(chapters) % n
	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		groups = append(groups, chapters[start:start+size])
		start += size
	}
	return groups
}
