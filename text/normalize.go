// Package text provides Unicode helpers for user visible identifiers,
// such as grid line names, built on golang.org/x/text.
//
// CSS compares custom identifiers by code points : two names which
// only differ by their normalization form never match, which is
// almost always an authoring mistake. This package detects and
// repairs such names.
package text

import "golang.org/x/text/unicode/norm"

// Normalizer applies one of the four Unicode normalization forms.
// The zero value applies NFC, the form recommended for identifiers.
type Normalizer struct {
	form norm.Form
}

func NFC() Normalizer  { return Normalizer{form: norm.NFC} }
func NFD() Normalizer  { return Normalizer{form: norm.NFD} }
func NFKC() Normalizer { return Normalizer{form: norm.NFKC} }
func NFKD() Normalizer { return Normalizer{form: norm.NFKD} }

// Normalize returns `s` in the normal form.
func (n Normalizer) Normalize(s string) string { return n.form.String(s) }

// NormalizeBytes returns `b` in the normal form.
func (n Normalizer) NormalizeBytes(b []byte) []byte { return n.form.Bytes(b) }

// IsNormalized returns true if `s` is already in the normal form.
func (n Normalizer) IsNormalized(s string) bool { return n.form.IsNormalString(s) }

// Equivalent returns true if `a` and `b` are equal once normalized.
func (n Normalizer) Equivalent(a, b string) bool {
	return a == b || n.Normalize(a) == n.Normalize(b)
}
