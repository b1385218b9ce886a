package utils

var Has = struct{}{}

type Set map[string]struct{}

func (s Set) Add(key string) {
	s[key] = Has
}

func (s Set) Has(key string) bool {
	_, in := s[key]
	return in
}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func IsIn(l []string, s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// AsciiLower transforms (A-Z) char to (a-z), left other untouched.
func AsciiLower(s string) string {
	out := []byte(s)
	for index, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[index] = c - 'A' + 'a'
		}
	}
	return string(out)
}
