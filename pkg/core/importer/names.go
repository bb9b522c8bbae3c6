package importer

import (
	"strings"

	"github.com/mhagedorn/wachplan/pkg/core/model"
)

var umlauts = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// NormalizeSurname canonicalizes a surname for fuzzy matching:
// lowercase, umlauts expanded, dots stripped, whitespace collapsed.
func NormalizeSurname(s string) string {
	s = umlauts.Replace(strings.ToLower(strings.TrimSpace(s)))
	s = strings.ReplaceAll(s, ".", "")
	return strings.Join(strings.Fields(s), " ")
}

// Resolution is the outcome of resolving one row label.
type Resolution int

const (
	ResolutionMatched Resolution = iota
	ResolutionUnmatched
	ResolutionAmbiguous
)

// Resolver maps spreadsheet row labels to staff references within one
// identity space (staff or apprentices are resolved separately).
type Resolver struct {
	byFullName map[string]model.PersonRef
	bySurname  map[string][]model.PersonRef
}

func NewResolver() *Resolver {
	return &Resolver{
		byFullName: make(map[string]model.PersonRef),
		bySurname:  make(map[string][]model.PersonRef),
	}
}

// Add registers one known person under their full name and surname.
func (r *Resolver) Add(ref model.PersonRef, surname, givenName string) {
	full := strings.ToLower(strings.TrimSpace(surname) + ", " + strings.TrimSpace(givenName))
	r.byFullName[full] = ref
	key := NormalizeSurname(surname)
	r.bySurname[key] = append(r.bySurname[key], ref)
}

// StaffResolver builds a resolver over the full staff list.
func StaffResolver(staff []model.Person) *Resolver {
	r := NewResolver()
	for _, p := range staff {
		r.Add(p.Ref(), p.Surname, p.GivenName)
	}
	return r
}

// ApprenticeResolver builds a resolver over the apprentice list.
func ApprenticeResolver(apprentices []model.Apprentice) *Resolver {
	r := NewResolver()
	for _, a := range apprentices {
		r.Add(a.Ref(), a.Surname, a.GivenName)
	}
	return r
}

// Resolve maps a row label to a person reference. Precedence:
//
//  1. exact "Surname, GivenName" match, case-insensitive
//  2. normalized-surname match, when unique
//  3. caller-supplied override keyed by normalized surname
//  4. ambiguous surnames without an override are never guessed
//
// The returned key is the normalized surname, used for reporting
// unmatched rows.
func (r *Resolver) Resolve(label string, overrides map[string]model.PersonRef) (ref model.PersonRef, key string, res Resolution) {
	label = strings.TrimSpace(label)
	surname := label
	if i := strings.Index(label, ","); i >= 0 {
		surname = label[:i]
	}
	key = NormalizeSurname(surname)

	if ref, ok := r.byFullName[strings.ToLower(label)]; ok {
		return ref, key, ResolutionMatched
	}

	candidates := r.bySurname[key]
	if len(candidates) == 1 {
		return candidates[0], key, ResolutionMatched
	}
	if ref, ok := overrides[key]; ok {
		return ref, key, ResolutionMatched
	}
	if len(candidates) > 1 {
		return model.PersonRef{}, key, ResolutionAmbiguous
	}
	return model.PersonRef{}, key, ResolutionUnmatched
}
