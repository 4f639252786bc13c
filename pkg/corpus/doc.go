// Package corpus provides line sources for building a markov.WordTable.
//
// A corpus can be a plain text file with one tweet per line, an HTML page
// whose readable article text is extracted first, or a SQLite database
// queried for a single text column. Open picks the right source for a path.
package corpus
