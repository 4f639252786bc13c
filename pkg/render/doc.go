/*
Package render formats generated sentences for output.

A Renderer wraps a text/template that is executed once per sentence with a
Tweet value. The default template reproduces the classic output format:

	Tweet 1: the cat sat.

Custom templates may use the fields of Tweet and a small set of helper
functions (add, sub, inc, dec, mod, join, upper, lower, repeat, isSet).
*/
package render
