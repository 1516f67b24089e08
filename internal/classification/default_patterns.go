package classification

import "github.com/Veraticus/painel/internal/model"

// DefaultRules returns the company rules used by the bank reconciliation page.
// Keywords are written folded (no accents, lower case).
func DefaultRules() []Rule {
	return []Rule{
		{
			Company:  model.CompanyPP,
			Keyword:  "pp participacoes",
			Priority: 30,
		},
		{
			Company:  model.CompanyXBrothers,
			Keyword:  "xbrother",
			Priority: 20,
		},
		{
			Company:  model.CompanyTempreco,
			Keyword:  "tempreco",
			Priority: 10,
		},
	}
}
