package bookbinder

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// minimalPDF builds a one-page PDF with a correct xref table, small
// enough to hand-assemble but structurally sound.
func minimalPDF() []byte {
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>",
	}
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}

// fakeTexCommand stands in for pdflatex so pipeline tests can run
// without a TeX install. The script copies the source it was given into
// logDir and emits a valid one-page PDF next to it.
func fakeTexCommand(t *testing.T) (script, logDir string) {
	t.Helper()
	dir := t.TempDir()
	logDir = filepath.Join(dir, "log")
	if err := os.Mkdir(logDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	fixture := filepath.Join(dir, "minimal.pdf")
	if err := os.WriteFile(fixture, minimalPDF(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	script = filepath.Join(dir, "faketex")
	body := fmt.Sprintf("#!/bin/sh\ncp \"$2\" %q\ncp %q \"$(basename \"$2\" .tex).pdf\"\n", logDir, fixture)
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return script, logDir
}

func writeTex(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("\\documentclass{article}\n"), 0o644); err != nil {
		t.Fatalf("write tex: %v", err)
	}
}

func TestCompileTex_CommandFailure(t *testing.T) {
	dir := t.TempDir()
	writeTex(t, dir, "doc.tex")

	_, err := compileTex(dir, "doc.tex", "false")
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
	var cErr *CompileError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected CompileError, got %T", err)
	}
	if cErr.Pass != PassInitial {
		t.Errorf("expected failure in initial pass, got %s", cErr.Pass)
	}
}

func TestCompileTex_MissingOutput(t *testing.T) {
	dir := t.TempDir()
	writeTex(t, dir, "doc.tex")

	// "true" exits zero but leaves no PDF behind.
	_, err := compileTex(dir, "doc.tex", "true")
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
	var cErr *CompileError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected CompileError, got %T", err)
	}
	if cErr.Pass != PassInitial {
		t.Errorf("expected failure in initial pass, got %s", cErr.Pass)
	}
}

func TestCompileTex_Success(t *testing.T) {
	dir := t.TempDir()
	writeTex(t, dir, "doc.tex")
	script, _ := fakeTexCommand(t)

	pdf, err := compileTex(dir, "doc.tex", script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pdf != filepath.Join(dir, "doc.pdf") {
		t.Errorf("unexpected pdf path %q", pdf)
	}
	if _, err := os.Stat(pdf); err != nil {
		t.Errorf("pdf not produced: %v", err)
	}
}

func TestCompilePass_String(t *testing.T) {
	if PassInitial.String() != "initial" || PassFinal.String() != "final" {
		t.Errorf("unexpected pass names: %s, %s", PassInitial, PassFinal)
	}
}
