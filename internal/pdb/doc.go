// Package pdb walks a whole PDB file and dispatches record blocks by tag.
//
// Ownership boundary:
// - tag to handler registry
// - block dispatch and skipping of unregistered tags
// - the parsed File aggregate
//
// Line classification, folding, token grammar and record assembly live in
// the line, fold, token and record subpackages.
package pdb
