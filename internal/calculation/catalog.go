package calculation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// SectionInfo is a flattened, display-ready row of the section catalog
type SectionInfo struct {
	Code           string   `json:"code"`
	Description    string   `json:"description"`
	CompanyRate    string   `json:"company_rate"`
	IndividualRate string   `json:"individual_rate"`
	NoPANRate      string   `json:"no_pan_rate"`
	Threshold      string   `json:"threshold"`
	ThresholdTypes []string `json:"threshold_types,omitempty"`
	Slabs          []string `json:"slabs,omitempty"`
	Conditions     []string `json:"conditions,omitempty"`
	Notes          []string `json:"notes,omitempty"`
}

// Catalog lists every section of reg in registry order
func Catalog(reg *domain.Registry) []SectionInfo {
	return catalogOf(reg.Sections())
}

// SearchCatalog lists the sections whose code or description contains query
func SearchCatalog(reg *domain.Registry, query string) []SectionInfo {
	return catalogOf(reg.Search(query))
}

// DescribeSection flattens one section
func DescribeSection(s *domain.Section) SectionInfo {
	info := SectionInfo{
		Code:           s.Code,
		Description:    s.Description,
		CompanyRate:    LabelNotApplicable,
		IndividualRate: LabelNotApplicable,
		NoPANRate:      FormatRate(s.NoPANRate),
		Threshold:      s.ThresholdLabel(),
		Notes:          s.SpecialNotes(),
	}

	if flat, ok := s.CategoryRates(); ok {
		info.CompanyRate = rateWithNote(flat.Company, flat.CompanyNote)
		info.IndividualRate = rateWithNote(flat.Individual, flat.IndividualNote)
	}

	switch r := s.Rate.(type) {
	case domain.SlabRate:
		info.CompanyRate = "Slab-based"
		info.IndividualRate = "Slab-based"
		for _, slab := range r.Slabs {
			info.Slabs = append(info.Slabs, slab.Description+": "+FormatRate(slab.Rate))
		}
	case domain.ConditionalRate:
		for _, c := range r.Conditions {
			info.Conditions = append(info.Conditions, c.Condition+": "+FormatRate(c.Rate))
		}
	}

	if m, ok := s.Threshold.(domain.MultiThreshold); ok {
		for _, t := range m.Types {
			info.ThresholdTypes = append(info.ThresholdTypes, t.Type+": "+t.Label)
		}
	}
	return info
}

// NotesText joins the special notes for single-column output
func (si SectionInfo) NotesText() string {
	return strings.Join(si.Notes, ", ")
}

func catalogOf(sections []domain.Section) []SectionInfo {
	out := make([]SectionInfo, 0, len(sections))
	for i := range sections {
		out = append(out, DescribeSection(&sections[i]))
	}
	return out
}

func rateWithNote(r *decimal.Decimal, note string) string {
	if r == nil {
		return LabelNotApplicable
	}
	if note == "" {
		return FormatRate(*r)
	}
	return FormatRate(*r) + " " + note
}
