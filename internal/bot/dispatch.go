package bot

import (
	"strings"
	"unicode/utf8"

	"github.com/inventabot/inventabot/internal/inventory"
)

// intent pairs a keyword set with the aggregation it triggers. Intents
// are evaluated top-down and the first match wins; adding a new intent is
// a new table entry, not a new branch.
type intent struct {
	keywords []string
	run      func(t *inventory.Table, msg string) string
}

// intents is the ordered dispatch table. Order matters: "valor total"
// also contains "total", so the stock intent shadows the valuation
// intent for messages naming both.
var intents = []intent{
	{
		keywords: []string{"categorías", "categorias", "todas las categorias"},
		run: func(t *inventory.Table, _ string) string {
			return t.CategoriesSummary()
		},
	},
	{
		keywords: []string{"suma", "total", "stock total", "cuanto stock"},
		run: func(t *inventory.Table, _ string) string {
			return t.StockSummary()
		},
	},
	{
		keywords: []string{"valor total", "costo total", "precio total"},
		run: func(t *inventory.Table, _ string) string {
			return t.ValueSummary()
		},
	},
	{
		keywords: []string{"buscar", "mostrar", "productos"},
		run: func(t *inventory.Table, msg string) string {
			terms := searchTerms(msg)
			if len(terms) == 0 {
				return ""
			}
			return t.SearchSummary(terms)
		},
	},
}

// stopWords are command-ish tokens dropped from search term extraction.
var stopWords = []string{"buscar", "mostrar", "productos", "dame", "quiero"}

// HeuristicFacts classifies the message against the intent table and runs
// at most one aggregation. The returned string is embedded in the AI
// prompt as precomputed facts; an empty string means no intent matched
// and the model answers from the full inventory text alone.
func HeuristicFacts(t *inventory.Table, msg string) string {
	lower := strings.ToLower(msg)
	for _, in := range intents {
		for _, kw := range in.keywords {
			if strings.Contains(lower, kw) {
				return in.run(t, msg)
			}
		}
	}
	return ""
}

// searchTerms extracts search terms from the raw message: whitespace
// tokens longer than two runes, minus the stop words.
func searchTerms(msg string) []string {
	var terms []string
	for _, tok := range strings.Fields(msg) {
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		if isStopWord(tok) {
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}

func isStopWord(tok string) bool {
	for _, sw := range stopWords {
		if strings.EqualFold(tok, sw) {
			return true
		}
	}
	return false
}
