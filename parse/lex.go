// Package parse splits command lines the way a POSIX shell does. It is used to turn the partial
// command line handed over by a completion script back into words.
package parse

import (
	"strings"

	"github.com/google/shlex"
)

// Split splits s into words using shell quoting and escaping rules
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = []string{}
	}

	return args, nil
}

// StripQuotes removes one layer of matching enclosing quotes from s
func StripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}

	return s
}

// EndsWithSpace reports whether s ends with unescaped whitespace, i.e. whether the user has
// started a new word
func EndsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	if last != ' ' && last != '\t' {
		return false
	}

	escapes := 0
	for i := len(s) - 2; i >= 0 && s[i] == '\\'; i-- {
		escapes++
	}

	return escapes%2 == 0
}

// Words splits a partially typed command line into words. The program name is dropped and,
// when the line ends with whitespace, an empty word is appended so the caller can tell a new
// word from an unfinished one. A line with an unterminated quote is closed before splitting;
// if it still cannot be split it falls back to whitespace separation.
func Words(line string) []string {
	line = StripQuotes(line)

	words, err := Split(line)
	for _, closing := range []string{`"`, `'`} {
		if err == nil {
			break
		}
		words, err = Split(line + closing)
	}
	if err != nil {
		words = strings.Fields(line)
	}

	if len(words) > 0 {
		words = words[1:]
	}
	if EndsWithSpace(line) {
		words = append(words, "")
	}

	return words
}
