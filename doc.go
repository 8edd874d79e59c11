// Package slipbox queries a directory of plain-text notes that link to each
// other through id tags.
//
// The first line of a note may carry a tag such as "id: 2a1" (or "id=2a1");
// the first tag on that line is the note's id. Every tag on a later line is a
// reference to another note. A note without an id on its first line is
// listed under the id "(none)" and never references anything.
//
// Loading reads the whole directory into an immutable Corpus. Queries over it
// never touch the disk again:
//
//   - List returns every note sorted by id.
//   - Get resolves ids, skipping the ones no note declares.
//   - Tree returns the notes a note references and the notes referencing it.
//
// Usage:
//
//	engine, err := slipbox.Load(ctx, "./notes", slipbox.WithRecursive(true))
//	if err != nil {
//		return err
//	}
//	tree, err := engine.Tree("2a1")
package slipbox
