package bookbinder

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// DefaultTexCommand is the external typesetting compiler.
const DefaultTexCommand = "pdflatex"

// CompilePass identifies one of the two compiler invocations. The
// compiler must run twice: the first pass records table-of-contents and
// reference data, the second resolves it.
type CompilePass int

const (
	PassInitial CompilePass = iota + 1
	PassFinal
)

func (p CompilePass) String() string {
	switch p {
	case PassInitial:
		return "initial"
	case PassFinal:
		return "final"
	default:
		return "unknown"
	}
}

// compileTex runs the typesetting compiler twice over texFile inside
// workDir and returns the absolute path of the produced PDF. Only the
// exit code and the presence of the output artifact are checked; the
// compiler's diagnostics are not parsed.
func compileTex(workDir, texFile, command string) (string, error) {
	if command == "" {
		command = DefaultTexCommand
	}
	pdfPath := filepath.Join(workDir, strings.TrimSuffix(texFile, ".tex")+".pdf")

	for _, pass := range []CompilePass{PassInitial, PassFinal} {
		log.Printf("%s render of %s", pass, texFile)
		cmd := exec.Command(command, "-interaction=nonstopmode", texFile)
		cmd.Dir = workDir
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
		if err := cmd.Run(); err != nil {
			return "", &CompileError{Source: texFile, Pass: pass, Err: err}
		}
		if _, err := os.Stat(pdfPath); err != nil {
			return "", &CompileError{Source: texFile, Pass: pass, Err: fmt.Errorf("missing output: %v", err)}
		}
	}

	if err := verifyPDF(pdfPath); err != nil {
		return "", &CompileError{Source: texFile, Pass: PassFinal, Err: err}
	}
	return pdfPath, nil
}

// verifyPDF checks that the compiler left behind a structurally sound
// PDF. An exit code of zero does not guarantee that; a truncated or
// corrupt file would otherwise surface only in the reader.
func verifyPDF(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("output failed validation: %v", err)
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		return fmt.Errorf("counting pages: %v", err)
	}
	log.Printf("Produced %s (%d pages)", filepath.Base(path), pages)
	return nil
}
