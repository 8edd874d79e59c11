package core

// NoID is the id assigned to a note whose first line carries no id tag.
const NoID = "(none)"

// Note is the central entity of the domain.
// It represents one file of the slip-box: the id it declares on its first
// line and the ids it references in its body.
type Note struct {
	Name       string   `json:"name" yaml:"name"`
	ID         string   `json:"id" yaml:"id"`
	References []string `json:"references" yaml:"references"`
}

// Tagged reports whether the note declared an id on its first line.
func (n Note) Tagged() bool {
	return n.ID != NoID
}

// Cites reports whether the note references the given id in its body.
func (n Note) Cites(id string) bool {
	for _, ref := range n.References {
		if ref == id {
			return true
		}
	}
	return false
}

func (n Note) clone() Note {
	refs := make([]string, len(n.References))
	copy(refs, n.References)
	n.References = refs
	return n
}
