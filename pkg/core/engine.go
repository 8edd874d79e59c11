package core

import (
	"fmt"
	"sort"
)

// Tree is the one-hop neighborhood of a note: the notes it references and the
// notes that reference it. The two lists are independent; aligning them for
// display is up to the renderer.
type Tree struct {
	Root        Note   `json:"root" yaml:"root"`
	Descendants []Note `json:"descendants" yaml:"descendants"`
	Linkers     []Note `json:"linkers" yaml:"linkers"`
}

// Engine answers queries over a corpus.
// It only holds immutable values and is safe for concurrent use.
type Engine struct {
	corpus *Corpus
	index  *Index
}

// NewEngine indexes c and returns an engine over it.
func NewEngine(c *Corpus) *Engine {
	return &Engine{corpus: c, index: NewIndex(c)}
}

// Corpus returns the corpus the engine was built from.
func (e *Engine) Corpus() *Corpus {
	return e.corpus
}

// Index returns the engine's lookup index.
func (e *Engine) Index() *Index {
	return e.index
}

// List returns every note sorted by id.
// Notes sharing an id are ordered by name.
func (e *Engine) List() []Note {
	notes := e.corpus.Notes()
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].ID != notes[j].ID {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].Name < notes[j].Name
	})
	return notes
}

// Get resolves each id in request order. Unknown ids are skipped.
func (e *Engine) Get(ids ...string) []Note {
	notes := make([]Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := e.index.ByID(id); ok {
			notes = append(notes, n)
		}
	}
	return notes
}

// Tree returns the neighborhood of the note declaring id.
// It fails with ErrNotFound when no note declares id.
// Dangling references are left out of Descendants.
func (e *Engine) Tree(id string) (Tree, error) {
	root, ok := e.index.ByID(id)
	if !ok {
		return Tree{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	tree := Tree{
		Root:        root,
		Descendants: []Note{},
		Linkers:     []Note{},
	}

	for _, ref := range root.References {
		if n, ok := e.index.ByID(ref); ok {
			tree.Descendants = append(tree.Descendants, n)
		}
	}

	for _, n := range e.corpus.notes {
		if n.Cites(root.ID) {
			tree.Linkers = append(tree.Linkers, n.clone())
		}
	}

	return tree, nil
}
