/*
Package brain implements a variable-order Markov chain chatbot brain.

A Brain learns word-sequence statistics from raw text lines and produces
replies by a weighted random walk over the learned transitions. States of
every length from 1 up to a configured maximum are recorded simultaneously,
and generation falls back across context lengths, so short inputs still find
something to say while longer contexts keep sentences coherent.

The brain is fully in-memory and synchronous. A single Brain instance mutates
both its transition store and its random source on generation, so it must not
be shared across goroutines without external locking.
*/
package brain
