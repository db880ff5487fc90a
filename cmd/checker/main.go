package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vilterp/hilbert/pkg/formula"
	"github.com/vilterp/hilbert/pkg/verify"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s LISTING [HYPOTHESIS...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalln("couldn't open listing:", err)
	}
	lines, err := verify.ReadListing(f)
	f.Close()
	if err != nil {
		log.Fatalln(err)
	}

	var hyps []*formula.Formula
	for _, text := range flag.Args()[1:] {
		hyp, err := formula.Parse(text)
		if err != nil {
			log.Fatalln(err)
		}
		hyps = append(hyps, hyp)
	}

	if err := verify.New(hyps...).Verify(lines); err != nil {
		fmt.Println("False")
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
	fmt.Println("True")
}
