package core

// Index provides constant-time lookups over a corpus.
// When several notes share an id (or a name), the one that appears first in
// corpus order wins.
type Index struct {
	corpus *Corpus
	byID   map[string]int
	byName map[string]int
}

// NewIndex builds the lookup tables for c.
func NewIndex(c *Corpus) *Index {
	idx := &Index{
		corpus: c,
		byID:   make(map[string]int, len(c.notes)),
		byName: make(map[string]int, len(c.notes)),
	}
	for i, n := range c.notes {
		if _, ok := idx.byID[n.ID]; !ok {
			idx.byID[n.ID] = i
		}
		if _, ok := idx.byName[n.Name]; !ok {
			idx.byName[n.Name] = i
		}
	}
	return idx
}

// ByID returns the first note declaring id.
func (idx *Index) ByID(id string) (Note, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Note{}, false
	}
	return idx.corpus.notes[i].clone(), true
}

// ByName returns the note loaded from the named file.
func (idx *Index) ByName(name string) (Note, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return Note{}, false
	}
	return idx.corpus.notes[i].clone(), true
}

// Duplicates maps every real id declared by more than one note to the names
// of those notes, in corpus order.
func (idx *Index) Duplicates() map[string][]string {
	names := make(map[string][]string)
	for _, n := range idx.corpus.notes {
		if n.Tagged() {
			names[n.ID] = append(names[n.ID], n.Name)
		}
	}
	for id, ns := range names {
		if len(ns) < 2 {
			delete(names, id)
		}
	}
	return names
}
