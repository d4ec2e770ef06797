// Package corpus handles the filesystem edges of a run: enumerating
// candidate template files under a source root and copying kept files
// into a destination directory.
package corpus
