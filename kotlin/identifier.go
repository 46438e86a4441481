package kotlin

import (
	"strings"
	"unicode"
)

// Kotlin hard keywords. They cannot be used as identifiers without
// backquotes.
var reservedWords = map[string]bool{
	"as":        true,
	"break":     true,
	"class":     true,
	"continue":  true,
	"do":        true,
	"else":      true,
	"false":     true,
	"for":       true,
	"fun":       true,
	"if":        true,
	"in":        true,
	"interface": true,
	"is":        true,
	"null":      true,
	"object":    true,
	"package":   true,
	"return":    true,
	"super":     true,
	"this":      true,
	"throw":     true,
	"true":      true,
	"try":       true,
	"typealias": true,
	"typeof":    true,
	"val":       true,
	"var":       true,
	"when":      true,
	"while":     true,
}

// escapeIdentifier backquotes reserved words and names that are not plain
// identifiers.
func escapeIdentifier(name string) string {
	if reservedWords[name] || needsQuoting(name) {
		return "`" + name + "`"
	}
	return name
}

// needsQuoting returns true if name is not a valid unquoted identifier.
func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return true
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return true
		}
	}
	return false
}

// escapeQualified escapes each segment of a dotted name.
func escapeQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = escapeIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// quoteString returns a Kotlin string literal.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '$':
			b.WriteString(`\$`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
