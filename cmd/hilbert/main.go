package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/robertkrimen/isatty"
	"github.com/vilterp/hilbert/pkg/formula"
	"github.com/vilterp/hilbert/pkg/oracle"
	"github.com/vilterp/hilbert/pkg/proof"
	"github.com/vilterp/hilbert/pkg/store"
)

var lemmaFile = flag.String("lemmas", "", "file of `target witness` lines for the lemma fallback")
var dataFile = flag.String("data-file", "", "proof archive; stored lemmas are used and new ones recorded")
var interactive = flag.Bool("interactive", true, "ask for lemmas on the terminal when stdin is a TTY")
var trace = flag.Bool("trace", false, "log every search decision")
var tree = flag.Bool("tree", false, "print the proof tree instead of the listing")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] FORMULA\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	target, err := formula.Parse(flag.Arg(0))
	if err != nil {
		log.Fatalln(err)
	}

	var oracles []proof.LemmaOracle
	if *lemmaFile != "" {
		f, err := os.Open(*lemmaFile)
		if err != nil {
			log.Fatalln("couldn't open lemma file:", err)
		}
		table, err := oracle.ParseTable(f)
		f.Close()
		if err != nil {
			log.Fatalln(err)
		}
		oracles = append(oracles, table)
	}

	var archive *store.Archive
	if *dataFile != "" {
		archive, err = store.Open(*dataFile)
		if err != nil {
			log.Fatalln(err)
		}
		defer archive.Close()
		oracles = append(oracles, archive)
	}

	// answers typed at the prompt; archived once the proof is stored
	answered := oracle.Table{}
	if *interactive && isatty.Check(os.Stdin.Fd()) {
		prompt, closePrompt, err := oracle.NewTerminalPrompt("/tmp/.hilbert-history")
		if err != nil {
			log.Fatalln(err)
		}
		defer closePrompt()
		oracles = append(oracles, oracle.Record(prompt, answered))
	}

	var opts []proof.Option
	if *trace {
		opts = append(opts, proof.WithTrace(func(ctx proof.Context, target *formula.Formula, rule string) {
			log.Printf("%s ⊢ %s: %s", ctx, target, rule)
		}))
	}

	step, err := proof.NewProver(oracle.Chain(oracles...), opts...).Prove(proof.EmptyContext, target)
	if err != nil {
		fmt.Fprintln(os.Stderr, "reject:", err)
		os.Exit(1)
	}

	if *tree {
		fmt.Println(step.Format().String())
		return
	}
	listing := proof.Serialize(step)
	if _, err := listing.WriteTo(os.Stdout); err != nil {
		log.Fatalln(err)
	}
	if archive != nil {
		if _, err := archive.SaveProof(target, listing.Lines()); err != nil {
			log.Fatalln(err)
		}
		if err := archive.PutLemmas(answered); err != nil {
			log.Fatalln(err)
		}
	}
}
