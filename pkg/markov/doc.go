/*
Package markov provides a small, in-memory, first-order Markov chain toolkit
for building word-transition models from short lines of text and sampling
them into synthetic sentences.

A WordTable owns every distinct word of a corpus in an append-only arena.
Transitions between words reference their targets by index, and each edge
carries a weight equal to the number of times the pair was seen. Ingest fills
a table from a LineSource; Generate and Sentences walk it with an explicit,
seedable random source so that every run is reproducible.

A word ending in the terminator ("." by default) ends a sentence. It never
gets outgoing transitions and is never chosen to start a sentence.
*/
package markov
