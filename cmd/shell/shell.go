package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/robertkrimen/isatty"
	"github.com/vilterp/hilbert/pkg/formula"
	"github.com/vilterp/hilbert/pkg/oracle"
	"github.com/vilterp/hilbert/pkg/proof"
	"github.com/vilterp/hilbert/pkg/server"
	"github.com/vilterp/hilbert/pkg/verify"
)

var url = flag.String("url", "", "URL of a hilbert server to prove against; proves locally if empty")

type shell struct {
	rl     *readline.Instance
	prompt string
	client *server.Client
	lemmas oracle.Table

	lastListing string
}

func main() {
	// get cmdline flags
	flag.Parse()

	sh := &shell{lemmas: oracle.Table{}}

	if *url != "" {
		client, err := server.NewClient(*url)
		if err != nil {
			fmt.Println("couldn't connect:", err)
			os.Exit(1)
			return
		}
		defer client.Close()
		sh.client = client
	}

	// check if is TTY
	isInputTty := isatty.Check(os.Stdin.Fd())

	if isInputTty {
		fmt.Println("hilbert shell")
		fmt.Println("\\h for help")
	}

	// initialize readline
	if isInputTty {
		sh.prompt = "⊢ "
		if *url != "" {
			sh.prompt = fmt.Sprintf("%s ⊢ ", *url)
		}
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:            sh.prompt,
		HistoryFile:       "/tmp/.hilbert-history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "bye!",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()
	sh.rl = l

	for {
		line, readlineErr := l.Readline()
		if readlineErr != nil {
			fmt.Println("bye!")
			return
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		sh.run(line)
	}
}

func (sh *shell) run(line string) {
	switch {
	case line == `\h`:
		fmt.Println(`\h	help`)
		fmt.Println(`\t F	print the proof tree of F`)
		fmt.Println(`\l T X	use X as the lemma for target T`)
		fmt.Println(`\v	verify the last listing`)
		fmt.Println(`F	prove F and print its listing`)
	case strings.HasPrefix(line, `\t `):
		sh.printTree(strings.TrimSpace(line[3:]))
	case strings.HasPrefix(line, `\l `):
		sh.addLemma(strings.Fields(line[3:]))
	case line == `\v`:
		sh.verifyLast()
	default:
		sh.prove(line)
	}
}

func (sh *shell) addLemma(fields []string) {
	if len(fields) != 2 {
		fmt.Println(`usage: \l TARGET WITNESS`)
		return
	}
	target, err := formula.Parse(fields[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	witness, err := formula.Parse(fields[1])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	sh.lemmas[target.String()] = witness
}

// localProof asks the table first, then the user.
func (sh *shell) localProof(text string) (proof.Step, error) {
	target, err := formula.Parse(text)
	if err != nil {
		return nil, err
	}
	defer sh.rl.SetPrompt(sh.prompt)
	lemmas := oracle.Chain(sh.lemmas, oracle.NewPrompt(sh.rl, os.Stdout))
	return proof.NewProver(lemmas).Prove(proof.EmptyContext, target)
}

func (sh *shell) prove(text string) {
	if sh.client != nil {
		lemmas := map[string]string{}
		for target, witness := range sh.lemmas {
			lemmas[target] = witness.String()
		}
		resp, err := sh.client.Prove(text, lemmas)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		sh.lastListing = resp.Listing
		fmt.Print(resp.Listing)
		return
	}

	step, err := sh.localProof(text)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	sh.lastListing = verify.FormatListing(proof.Serialize(step).Lines())
	fmt.Print(sh.lastListing)
}

func (sh *shell) printTree(text string) {
	step, err := sh.localProof(text)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(step.Format().String())
}

func (sh *shell) verifyLast() {
	if sh.lastListing == "" {
		fmt.Println("nothing to verify")
		return
	}
	if sh.client != nil {
		resp, err := sh.client.Verify(sh.lastListing)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(resp.Valid, resp.Error)
		return
	}
	lines, err := verify.ReadListing(strings.NewReader(sh.lastListing))
	if err == nil {
		err = verify.Verify(lines)
	}
	if err != nil {
		fmt.Println("False:", err)
		return
	}
	fmt.Println("True")
}
