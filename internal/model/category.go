package model

// Company is a business-entity label derived from an account description.
type Company string

const (
	// CompanyPP is the holding company.
	CompanyPP Company = "PP PARTICIPAÇÕES"
	// CompanyXBrothers is the XBrothers store chain.
	CompanyXBrothers Company = "XBROTHERS"
	// CompanyTempreco is the Tempreço store chain.
	CompanyTempreco Company = "TEMPREÇO"
	// CompanyOther is the fallback when no rule matches.
	CompanyOther Company = "OUTROS"
)

// Companies lists every label a description can map to, fallback last.
func Companies() []Company {
	return []Company{CompanyPP, CompanyXBrothers, CompanyTempreco, CompanyOther}
}

// String returns the label.
func (c Company) String() string {
	return string(c)
}
