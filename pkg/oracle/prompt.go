package oracle

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/vilterp/hilbert/pkg/formula"
	"github.com/vilterp/hilbert/pkg/proof"
)

// LineReader is the part of *readline.Instance the prompt needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

var _ LineReader = &readline.Instance{}

// Prompt asks a human for each lemma.
type Prompt struct {
	in  LineReader
	out io.Writer
}

var _ proof.LemmaOracle = &Prompt{}

func NewPrompt(in LineReader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

// NewTerminalPrompt opens a readline session on the terminal.
func NewTerminalPrompt(historyFile string) (*Prompt, func() error, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "X? ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, nil, err
	}
	return NewPrompt(rl, os.Stderr), rl.Close, nil
}

// Lemma shows both goals the witness X has to close and reads X. Input
// that doesn't parse is reported and asked for again; EOF or ^C gives up.
func (p *Prompt) Lemma(ctx proof.Context, target *formula.Formula) (*formula.Formula, error) {
	fmt.Fprintf(p.out, "%s ⊢ X\n", ctx)
	fmt.Fprintf(p.out, "%s ⊢ (X>%s)\n", ctx, target)
	p.in.SetPrompt("X? ")
	for {
		line, err := p.in.Readline()
		if err != nil {
			return nil, &proof.UnderivableWithoutHint{Context: ctx, Target: target, Reason: err.Error()}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lemma, err := formula.Parse(line)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return lemma, nil
	}
}
