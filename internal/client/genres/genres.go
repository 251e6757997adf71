// Package genres maps the genre labels shown during onboarding to the
// server's fixed set of boolean style preferences.
//
// The mapping is a declared table, not derived from the labels: several
// labels (including localized ones) resolve to the same key and two keys
// have no label at all.
package genres

import "strings"

// Key names one style preference field on the server.
type Key string

const (
	Romance     Key = "romance"
	Fantasy     Key = "fantasy"
	SciFi       Key = "sciFi"
	Horror      Key = "horror"
	Mystery     Key = "mystery"
	Thriller    Key = "thriller"
	Psychology  Key = "psychology"
	Inspiration Key = "inspiration"
	Comedy      Key = "comedy"
	Action      Key = "action"
	Adventure   Key = "adventure"
	Comics      Key = "comics"
	Childrens   Key = "childrens"
	Art         Key = "art"
	Food        Key = "food"
	Biography   Key = "biography"
	Science     Key = "science"
	Technology  Key = "technology"
	HowTo       Key = "howto"
	Travel      Key = "travel"
	EpicFantasy Key = "epicfantasy"
)

// Entry binds a canonical onboarding label to its preference key.
type Entry struct {
	Label string
	Key   Key
}

// Table is the canonical label table in display order. It follows the
// genre picker of the onboarding screen, which lists 19 labels including
// Travel. Technology and EpicFantasy have no label and are never set from
// the UI.
var Table = [...]Entry{
	{"Romance", Romance},
	{"Fantasy", Fantasy},
	{"Sci-Fi", SciFi},
	{"Horror", Horror},
	{"Mystery", Mystery},
	{"Thriller", Thriller},
	{"Psychology", Psychology},
	{"Inspiration", Inspiration},
	{"Comedy", Comedy},
	{"Action", Action},
	{"Adventure", Adventure},
	{"Comics", Comics},
	{"Children's", Childrens},
	{"Art & Photography", Art},
	{"Food & Drink", Food},
	{"Biography", Biography},
	{"Science & Technology", Science},
	{"Guide / How-to", HowTo},
	{"Travel", Travel},
}

// aliases are accepted on input only. Reverse mapping always yields the
// canonical label from Table.
var aliases = map[string]Key{
	"Fantasia":             Fantasy,
	"Ficção Científica":    SciFi,
	"Terror":               Horror,
	"Mistério":             Mystery,
	"Suspense":             Thriller,
	"Psicologia":           Psychology,
	"Inspiração":           Inspiration,
	"Comédia":              Comedy,
	"Ação":                 Action,
	"Aventura":             Adventure,
	"Quadrinhos":           Comics,
	"Infantil":             Childrens,
	"Arte & Fotografia":    Art,
	"Culinária & Bebidas":  Food,
	"Biografia":            Biography,
	"Ciência & Tecnologia": Science,
	"Guia / Como Fazer":    HowTo,
	"Viagem":               Travel,
}

// Labels returns the canonical labels in table order.
func Labels() []string {
	out := make([]string, 0, len(Table))
	for _, e := range Table {
		out = append(out, e.Label)
	}
	return out
}

// KeyForLabel resolves a canonical or localized label. Matching ignores
// surrounding whitespace and letter case.
func KeyForLabel(label string) (Key, bool) {
	label = strings.TrimSpace(label)
	for _, e := range Table {
		if strings.EqualFold(e.Label, label) {
			return e.Key, true
		}
	}
	for alias, k := range aliases {
		if strings.EqualFold(alias, label) {
			return k, true
		}
	}
	return "", false
}

// LabelForKey returns the canonical label of k, if it has one.
func LabelForKey(k Key) (string, bool) {
	for _, e := range Table {
		if e.Key == k {
			return e.Label, true
		}
	}
	return "", false
}
