package main

import (
	"flag"
	"fmt"
	"os"

	"srcbook/bookbinder"
)

var (
	color    = flag.Bool("color", false, "turn on color pdf output")
	volumes  = flag.Int("volumes", 1, "split the book into this many volumes")
	keep     = flag.Bool("keep", false, "keep the temporary work directory for inspection")
	title    = flag.String("t", "", "title for the book (required)")
	release  = flag.String("r", "", "release date string (required)")
	contents = flag.String("c", "", "label for the table of contents (required)")
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: makebook [-color] [-volumes N] [-keep] -t title -r release -c contents DIRECTORY")
	os.Exit(2)
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 || *title == "" || *release == "" || *contents == "" {
		usage()
	}

	bc := bookbinder.NewBookCompiler(flag.Arg(0), *title, *release, *contents)
	bc.SetColor(*color)
	bc.SetVolumes(*volumes)
	bc.SetKeepWorkDir(*keep)

	pdfs, err := bc.Compile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "makebook: %v\n", err)
		os.Exit(1)
	}
	for _, pdf := range pdfs {
		fmt.Println(pdf)
	}
}
