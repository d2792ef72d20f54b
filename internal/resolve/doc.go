// Package resolve folds extraction results into one canonical record per law.
//
// Revisions of a law are ordered by revision key (the ISO date from the file
// name). The newest revision supplies the record's fields and current file;
// every surviving revision is listed in the history, oldest first.
//
// Two files with the same law id and revision key cannot both be history
// entries. The one with the lexicographically greater path wins, the others
// are dropped and reported as notes.
package resolve
