package config

// RuleTable is the on-disk form of the section registry
type RuleTable struct {
	Metadata RuleMetadata    `yaml:"metadata" json:"metadata"`
	Interest InterestRules   `yaml:"interest" json:"interest"`
	Sections []SectionRecord `yaml:"sections" json:"sections"`
}

// RuleMetadata identifies a rule table and the dates it is valid for
type RuleMetadata struct {
	Version       string `yaml:"version" json:"version"`
	FiscalYear    string `yaml:"fiscal_year" json:"fiscal_year"`
	EffectiveFrom string `yaml:"effective_from,omitempty" json:"effective_from,omitempty"` // YYYY-MM-DD
	EffectiveTo   string `yaml:"effective_to,omitempty" json:"effective_to,omitempty"`     // YYYY-MM-DD
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
}

// InterestRules holds the late-deposit interest rate, percent per month
type InterestRules struct {
	RatePerMonth *string `yaml:"rate_per_month" json:"rate_per_month"`
}

// SectionRecord is one section as written in the rule table. Decimal fields
// are kept as strings until conversion so that 0.1 stays exact.
type SectionRecord struct {
	Code           string                `yaml:"code" json:"code"`
	Description    string                `yaml:"description" json:"description"`
	Threshold      *string               `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	ThresholdLabel string                `yaml:"threshold_label,omitempty" json:"threshold_label,omitempty"`
	ThresholdTypes *ThresholdTypesRecord `yaml:"threshold_types,omitempty" json:"threshold_types,omitempty"`

	CompanyRate        *string `yaml:"company_rate,omitempty" json:"company_rate,omitempty"`
	IndividualRate     *string `yaml:"individual_rate,omitempty" json:"individual_rate,omitempty"`
	CompanyRateNote    string  `yaml:"company_rate_note,omitempty" json:"company_rate_note,omitempty"`
	IndividualRateNote string  `yaml:"individual_rate_note,omitempty" json:"individual_rate_note,omitempty"`
	NoPANRate          *string `yaml:"no_pan_rate" json:"no_pan_rate"`

	Slabs      []SlabRecord      `yaml:"slabs,omitempty" json:"slabs,omitempty"`
	Conditions []ConditionRecord `yaml:"conditions,omitempty" json:"conditions,omitempty"`

	PropertySection bool `yaml:"property_section,omitempty" json:"property_section,omitempty"`
	TaxOnExcess     bool `yaml:"tax_on_excess,omitempty" json:"tax_on_excess,omitempty"`
	Cumulative      bool `yaml:"cumulative,omitempty" json:"cumulative,omitempty"`
}

// ThresholdTypesRecord lists the threshold bases of a multi-threshold section
type ThresholdTypesRecord struct {
	Default string                `yaml:"default,omitempty" json:"default,omitempty"`
	Types   []ThresholdTypeRecord `yaml:"types" json:"types"`
}

// ThresholdTypeRecord is one threshold basis
type ThresholdTypeRecord struct {
	Type      string  `yaml:"type" json:"type"`
	Threshold *string `yaml:"threshold" json:"threshold"`
	Label     string  `yaml:"label,omitempty" json:"label,omitempty"`
}

// SlabRecord is one payment band; from and to are optional inclusive bounds
type SlabRecord struct {
	Description string  `yaml:"description" json:"description"`
	Rate        *string `yaml:"rate" json:"rate"`
	From        *string `yaml:"from,omitempty" json:"from,omitempty"`
	To          *string `yaml:"to,omitempty" json:"to,omitempty"`
}

// ConditionRecord is one conditional rate variant
type ConditionRecord struct {
	Condition string  `yaml:"condition" json:"condition"`
	Rate      *string `yaml:"rate" json:"rate"`
}
