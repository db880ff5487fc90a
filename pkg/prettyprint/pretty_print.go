package prettyprint

import (
	"fmt"
	"strings"
)

// A small document algebra for rendering proof trees.

type Doc interface {
	// String renders the document.
	String() string
	// Debug shows the document structure.
	Debug() string
}

// Text

type text struct {
	str string
}

var _ Doc = &text{}

func Text(s string) Doc {
	return &text{str: s}
}

func Textf(format string, args ...interface{}) Doc {
	return Text(fmt.Sprintf(format, args...))
}

func (t *text) String() string {
	return t.str
}

func (t *text) Debug() string {
	return fmt.Sprintf("Text(%q)", t.str)
}

// Nest

type nest struct {
	doc Doc
	by  int
}

// Nest indents every line of d by the given number of spaces.
func Nest(by int, d Doc) Doc {
	return &nest{doc: d, by: by}
}

func (n *nest) String() string {
	indent := strings.Repeat(" ", n.by)
	lines := strings.Split(n.doc.String(), "\n")
	for idx := range lines {
		lines[idx] = indent + lines[idx]
	}
	return strings.Join(lines, "\n")
}

func (n *nest) Debug() string {
	return fmt.Sprintf("Nest(%d, %s)", n.by, n.doc.Debug())
}

// Empty

type empty struct{}

var Empty Doc = &empty{}

func (*empty) String() string { return "" }
func (*empty) Debug() string  { return "Empty" }

// Seq

type seq struct {
	docs []Doc
}

func Seq(docs []Doc) Doc {
	return &seq{docs: docs}
}

func (s *seq) String() string {
	var b strings.Builder
	for _, doc := range s.docs {
		b.WriteString(doc.String())
	}
	return b.String()
}

func (s *seq) Debug() string {
	strs := make([]string, len(s.docs))
	for idx, doc := range s.docs {
		strs[idx] = doc.Debug()
	}
	return fmt.Sprintf("Seq(%s)", strings.Join(strs, ", "))
}

// Newline

type newline struct{}

var Newline Doc = &newline{}

func (*newline) String() string { return "\n" }
func (*newline) Debug() string  { return "Newline" }

// Join puts sep between docs.
func Join(docs []Doc, sep Doc) Doc {
	if len(docs) == 0 {
		return Empty
	}
	out := make([]Doc, 0, 2*len(docs)-1)
	for idx, doc := range docs {
		if idx > 0 {
			out = append(out, sep)
		}
		out = append(out, doc)
	}
	return Seq(out)
}
