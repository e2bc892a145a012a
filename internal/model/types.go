package model

import "strings"

// SplitType splits a SWIG type token such as "r.q(const).Foo" into its
// qualifier segments and base name. Dots nested inside parentheses or angle
// brackets belong to the segment that contains them, so template arguments
// and function-pointer signatures stay intact.
func SplitType(token string) (quals []string, base string) {
	depth := 0
	start := 0
	for i := 0; i < len(token); i++ {
		switch token[i] {
		case '(', '<':
			depth++
		case ')', '>':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth == 0 {
				quals = append(quals, token[start:i])
				start = i + 1
			}
		}
	}
	return quals, token[start:]
}

// CppType renders a SWIG type token as a C++ declaration fragment, e.g.
// "r.q(const).Foo" becomes "const Foo&". Tokens with qualifiers it does not
// understand are returned unchanged.
func CppType(token string) string {
	if token == "" {
		return ""
	}
	quals, base := SplitType(token)
	cpp := templateArgs(base)
	for _, q := range quals {
		switch {
		case q == "r":
			cpp += "&"
		case q == "z":
			cpp += "&&"
		case q == "p":
			cpp += "*"
		case q == "q(const)":
			cpp = "const " + cpp
		case strings.HasPrefix(q, "a("):
			cpp += "[]"
		default:
			return token
		}
	}
	return cpp
}

func templateArgs(s string) string {
	s = strings.ReplaceAll(s, "<(", "<")
	return strings.ReplaceAll(s, ")>", ">")
}
