package render

import (
	"reflect"
	"strings"
	"text/template"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add":    add,
		"sub":    sub,
		"inc":    inc,
		"dec":    dec,
		"mod":    mod,
		"join":   join,
		"upper":  strings.ToUpper,
		"lower":  strings.ToLower,
		"repeat": repeat,
		"isSet":  isSet,
	}
}

// add returns a + b.
func add(a, b int) int {
	return a + b
}

// sub returns a - b.
func sub(a, b int) int {
	return a - b
}

// inc returns i + 1.
func inc(i int) int {
	return i + 1
}

// dec returns i - 1.
func dec(i int) int {
	return i - 1
}

// mod returns a % b. Returns 0 if b is 0.
func mod(a, b int) int {
	if b == 0 {
		return 0
	}
	return a % b
}

// join joins words with sep. The argument order suits pipelines:
// {{.Words | join " "}}.
func join(sep string, words []string) string {
	return strings.Join(words, sep)
}

// repeat returns a slice of integers from 0 to count-1.
func repeat(count int) []int {
	if count < 0 {
		return []int{}
	}
	s := make([]int, count)
	for i := 0; i < count; i++ {
		s[i] = i
	}
	return s
}

// isSet returns true if a value is not its zero value.
func isSet(val any) bool {
	v := reflect.ValueOf(val)
	if !v.IsValid() {
		return false
	}
	return !v.IsZero()
}
