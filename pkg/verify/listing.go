package verify

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Line is one row of a proof listing: `<position> <formula> <justification>`.
type Line struct {
	Position      int
	Formula       string
	Justification string
}

func (l Line) String() string {
	return fmt.Sprintf("%d\t%s\t%s", l.Position, l.Formula, l.Justification)
}

// ReadListing reads whitespace-separated proof lines. Blank lines are
// skipped; rows may come in any order.
func ReadListing(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := scanner.Text()
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, &MalformedProofLine{Text: text, Reason: "expected position, formula and justification"}
		}
		pos, err := strconv.Atoi(fields[0])
		if err != nil || pos < 1 {
			return nil, &MalformedProofLine{Text: text, Reason: "bad position"}
		}
		lines = append(lines, Line{
			Position:      pos,
			Formula:       fields[1],
			Justification: fields[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading proof listing")
	}
	return lines, nil
}

// WriteListing writes lines ascending by position.
func WriteListing(w io.Writer, lines []Line) error {
	bufWriter := bufio.NewWriter(w)
	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sortLines(sorted)
	for _, line := range sorted {
		if _, err := fmt.Fprintln(bufWriter, line.String()); err != nil {
			return err
		}
	}
	return bufWriter.Flush()
}

// FormatListing is WriteListing into a string.
func FormatListing(lines []Line) string {
	var b strings.Builder
	// strings.Builder never fails
	_ = WriteListing(&b, lines)
	return b.String()
}
