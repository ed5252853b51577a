package bookbinder

import "path/filepath"

// LanguageMap maps file names and extensions to listings language names.
// Exact file-name entries ("Makefile") take precedence over extension
// entries (".c"). A missing or empty entry selects a plain verbatim
// listing with no highlighting.
type LanguageMap map[string]string

// DefaultLanguages covers the file types found in a kernel-style source
// tree. Callers can pass their own map to cover other trees.
func DefaultLanguages() LanguageMap {
	return LanguageMap{
		"Makefile": "make",
		"Kconfig":  "make",
		".c":       "C",
		".h":       "C",
		".S":       "{[x86masm]Assembler}",
		".sh":      "sh",
	}
}

// LanguageFor returns the listings language for a file path, or the
// empty string when the file type is not in the map.
func (m LanguageMap) LanguageFor(path string) string {
	name := filepath.Base(path)
	if lang, ok := m[name]; ok {
		return lang
	}
	return m[filepath.Ext(name)]
}
