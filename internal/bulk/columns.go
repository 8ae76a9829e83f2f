package bulk

// Column headers of a bulk workbook. Matching is case-insensitive and ignores
// surrounding spaces.
const (
	ColDeducteeName      = "Deductee Name"
	ColDeducteePAN       = "Deductee PAN"
	ColSection           = "TDS Section"
	ColAmount            = "Transaction Amount"
	ColDeductionDate     = "Date of Deduction"
	ColPaymentDate       = "Date of Payment"
	ColCategory          = "Declared Category"
	ColThresholdType     = "Threshold Type"
	ColSlab              = "Slab"
	ColCondition         = "Condition"
	ColThresholdExceeded = "Threshold Exceeded"
)

// RequiredColumns must all be present in the header row
var RequiredColumns = []string{
	ColDeducteeName,
	ColDeducteePAN,
	ColSection,
	ColAmount,
	ColDeductionDate,
}

// OptionalColumns are read when present
var OptionalColumns = []string{
	ColPaymentDate,
	ColCategory,
	ColThresholdType,
	ColSlab,
	ColCondition,
	ColThresholdExceeded,
}
