package core

import (
	"bufio"
	"errors"
	"io"
	"sort"
	"strings"
)

// LoadNote parses one file into a Note.
//
// Only the first line is searched for the note's own id. The remaining lines
// are searched for references, and only when the first line produced an id:
// an untagged note never gets references even if its body looks tagged.
func LoadNote(name string, r io.Reader) (Note, error) {
	note := Note{Name: name, ID: NoID, References: []string{}}
	br := bufio.NewReader(r)

	first, err := readLine(br)
	if err != nil && !errors.Is(err, io.EOF) {
		return Note{}, &ReadError{Name: name, Err: err}
	}

	ids := ExtractIDs(first)
	if len(ids) == 0 {
		return note, nil
	}
	note.ID = ids[0]

	seen := make(map[string]struct{})
	for !errors.Is(err, io.EOF) {
		var line string
		line, err = readLine(br)
		if err != nil && !errors.Is(err, io.EOF) {
			return Note{}, &ReadError{Name: name, Err: err}
		}
		for _, ref := range ExtractIDs(line) {
			seen[ref] = struct{}{}
		}
	}

	for ref := range seen {
		note.References = append(note.References, ref)
	}
	sort.Strings(note.References)

	return note, nil
}

// readLine returns the next line without its terminator.
// At end of input it returns whatever is left together with io.EOF.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, err
}
