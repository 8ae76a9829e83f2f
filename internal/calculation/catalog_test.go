package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	reg := defaultRegistry(t)

	catalog := Catalog(reg)
	require.Len(t, catalog, reg.Len())
	assert.Equal(t, reg.Sections()[0].Code, catalog[0].Code)

	byCode := make(map[string]SectionInfo, len(catalog))
	for _, info := range catalog {
		byCode[info.Code] = info
	}

	contractor := byCode["194C"]
	assert.Equal(t, "2%", contractor.CompanyRate)
	assert.Equal(t, "1%", contractor.IndividualRate)
	assert.Equal(t, "20%", contractor.NoPANRate)
	assert.Equal(t, "₹1,00,000 (Annual)", contractor.Threshold)
	assert.Equal(t, []string{
		"Single Transaction: ₹30,000 (Single Transaction)",
		"Annual Aggregate: ₹1,00,000 (Annual)",
	}, contractor.ThresholdTypes)
	assert.Contains(t, contractor.Notes, "Multiple Threshold Types")

	cash := byCode["194NF"]
	assert.Equal(t, "Slab-based", cash.CompanyRate)
	assert.Equal(t, "0%", cash.NoPANRate)
	assert.Equal(t, []string{"Exceed 20 Lacs but does not exceed 1 Cr: 2%", "Withdrawal in Excess of Rs. 1 Cr: 5%"}, cash.Slabs)
	assert.Equal(t, "Slab-based", cash.NotesText())

	bonds := byCode["194LC"]
	assert.Len(t, bonds.Conditions, 3)
	assert.Contains(t, bonds.Notes, "Conditional Rates")

	assert.Equal(t, "2% (from 1st Oct 2024)", byCode["194H"].IndividualRate)
	assert.Equal(t, LabelNotApplicable, byCode["192A"].CompanyRate)
}

func TestSearchCatalog(t *testing.T) {
	reg := defaultRegistry(t)

	found := SearchCatalog(reg, "contractor")
	require.NotEmpty(t, found)
	for _, info := range found {
		assert.Contains(t, info.Code, "194C")
	}
	assert.Empty(t, SearchCatalog(reg, "no such payment"))
}
