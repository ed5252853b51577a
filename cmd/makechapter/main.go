package main

import (
	"flag"
	"fmt"
	"os"

	"srcbook/bookbinder"
)

var (
	color  = flag.Bool("color", false, "turn on color pdf output")
	parent = flag.String("p", "", "base directory stripped from the file path to derive the title")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: makechapter [-color] [-p PARENTDIR] FILE")
		os.Exit(2)
	}

	cc := bookbinder.NewChapterCompiler(flag.Arg(0))
	cc.ContentRoot = *parent
	cc.Color = *color

	pdf, err := cc.Compile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "makechapter: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(pdf)
}
