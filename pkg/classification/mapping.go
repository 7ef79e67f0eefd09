package classification

import (
	"github.com/helpdeskai/intake-engine/pkg/lexicon"
)

// TaxonomyMapping translates classification labels into the numeric
// identifiers of the external ticketing system (GLPI ITIL taxonomy: ticket
// type 1=incident, 2=request; category identifiers index the itilcategories
// table).
type TaxonomyMapping struct {
	TypeToID     map[string]int
	CategoryToID map[string]int

	// OtherCategoryID is the designated fallback for unmapped labels.
	OtherCategoryID int
}

// DefaultTaxonomy returns the fixed mapping the engine ships with.
func DefaultTaxonomy() *TaxonomyMapping {
	return &TaxonomyMapping{
		TypeToID: map[string]int{
			lexicon.TypeIncident: 1,
			lexicon.TypeRequest:  2,
		},
		CategoryToID: map[string]int{
			lexicon.CategoryIncidentHardware: 1,
			lexicon.CategoryIncidentSoftware: 2,
			lexicon.CategoryIncidentNetwork:  3,
			lexicon.CategoryIncidentSecurity: 4,
			lexicon.CategoryRequestHardware:  5,
			lexicon.CategoryRequestSoftware:  6,
			lexicon.CategoryRequestAccess:    7,
			lexicon.CategoryRequestInfo:      8,
			DefaultCategory(lexicon.TypeIncident): 9,
			DefaultCategory(lexicon.TypeRequest):  10,
		},
		OtherCategoryID: 0,
	}
}

// TypeID maps a type label to its ticket-type identifier. Unknown labels map
// to incident, the engine's conservative default.
func (m *TaxonomyMapping) TypeID(label string) int {
	if id, ok := m.TypeToID[label]; ok {
		return id
	}
	return m.TypeToID[lexicon.TypeIncident]
}

// CategoryID maps a category label to its taxonomy identifier, falling back
// to the designated "other" identifier for unmapped labels.
func (m *TaxonomyMapping) CategoryID(label string) int {
	if id, ok := m.CategoryToID[label]; ok {
		return id
	}
	return m.OtherCategoryID
}
