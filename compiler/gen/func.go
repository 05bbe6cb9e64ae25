package gen

import (
	"strings"
	"unicode"
)

// snake converts the given struct or field name into a snake_case.
//
//	Username => username
//	FullName => full_name
//	HTTPCode => http_code
func snake(s string) string {
	var (
		j int
		b strings.Builder
		r = []rune(s)
	)
	for i := 0; i < len(r); i++ {
		// Put '_' if it is not a start or end of a word, current letter is uppercase,
		// and previous is lowercase (cases like: "UserInfo"), or next letter is also
		// a lowercase and previous letter is not "_".
		if i > 0 && i < len(r)-1 && unicode.IsUpper(r[i]) {
			if unicode.IsLower(r[i-1]) ||
				j != i-1 && unicode.IsLower(r[i+1]) && unicode.IsLetter(r[i-1]) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r[i]))
	}
	return b.String()
}
