package bookbinder

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeIdentChars = regexp.MustCompile(`[^A-Za-z0-9-]`)

// sanitizeIdentifier turns a relative path into a name usable both as a
// bare file name and as a LaTeX include label. Each unsafe character is
// replaced individually so distinct paths stay distinguishable; the
// remaining collisions ("a.b" vs "a_b") are caught during book assembly.
func sanitizeIdentifier(rel string) string {
	return unsafeIdentChars.ReplaceAllString(filepath.ToSlash(rel), "_")
}

// escapeLatex escapes the characters that would otherwise change
// meaning inside the title templates. Underscores are the only ones a
// source path realistically carries.
func escapeLatex(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}

// deriveChapter builds the in-memory chapter for one source file. The
// title is the path relative to contentRoot rendered as a breadcrumb;
// with no contentRoot the file's own name is used. A file outside the
// declared root is an error, never silently truncated.
func deriveChapter(path, contentRoot string, color bool, langs LanguageMap) (Chapter, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Chapter{}, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Chapter{}, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	if !info.Mode().IsRegular() {
		return Chapter{}, fmt.Errorf("%w: %s is not a regular file", ErrFileAccess, path)
	}
	f, err := os.Open(abs)
	if err != nil {
		return Chapter{}, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	f.Close()

	rel := filepath.Base(abs)
	if contentRoot != "" {
		rootAbs, err := filepath.Abs(contentRoot)
		if err != nil {
			return Chapter{}, fmt.Errorf("%w: %s: %v", ErrInputPath, contentRoot, err)
		}
		r, err := filepath.Rel(rootAbs, abs)
		if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return Chapter{}, fmt.Errorf("%w: %s is not under %s", ErrPathScope, abs, rootAbs)
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)

	return Chapter{
		SourcePath: abs,
		Title:      escapeLatex(rel),
		ID:         sanitizeIdentifier(rel),
		Language:   langs.LanguageFor(abs),
		Color:      color,
	}, nil
}

// AssembleChapter derives a chapter from one source file and writes its
// rendered section fragment into workDir, ready to be included by a
// book wrapper.
func AssembleChapter(workDir, path, contentRoot string, color bool, langs LanguageMap) (Chapter, error) {
	ch, err := deriveChapter(path, contentRoot, color, langs)
	if err != nil {
		return Chapter{}, err
	}
	ch.FragmentFile = ch.ID + ".tex"
	rendered, err := Render("section.tex", ch.vars())
	if err != nil {
		return Chapter{}, err
	}
	if err := os.WriteFile(filepath.Join(workDir, ch.FragmentFile), []byte(rendered), 0o644); err != nil {
		return Chapter{}, fmt.Errorf("writing fragment %s: %w", ch.FragmentFile, err)
	}
	return ch, nil
}
