package category

// DefaultCategories is the registry used when the configuration does not
// declare one.
func DefaultCategories() []Category {
	return []Category{
		{Id: "cos-hosting", Name: "Hosting", Parent: CostOfSales},
		{Id: "cos-third-party-software", Name: "Third Party Software", Parent: CostOfSales},
		{Id: "cos-support", Name: "Customer Support", Parent: CostOfSales},
		{Id: "base-pay", Name: "Base Pay", Parent: Opex},
		{Id: "capitalized-salaries", Name: "Capitalized Salaries", Parent: Opex, IsNegative: true},
		{Id: "commissions", Name: "Commissions", Parent: Opex},
		{Id: "reclass-salaries", Name: "Reclass Salaries", Parent: Opex, IsNegative: true},
		{Id: "bonus", Name: "Bonus", Parent: Opex},
		{Id: "benefits", Name: "Benefits", Parent: Opex},
		{Id: "payroll-taxes", Name: "Payroll Taxes", Parent: Opex},
		{Id: "other-compensation", Name: "Other Compensation", Parent: Opex},
		{Id: "telecom", Name: "Telecom", Parent: Opex},
		{Id: "recruiting", Name: "Recruiting", Parent: Opex},
		{Id: "training", Name: "Training", Parent: Opex},
		{Id: "office-supplies", Name: "Office Supplies", Parent: Opex},
		{Id: "other-expenses", Name: "Other Expenses", Parent: Opex},
		{Id: "travel-entertainment", Name: "Travel & Entertainment", Parent: Opex},
		{Id: "professional-services", Name: "Professional Services", Parent: Opex},
		{Id: "software", Name: "Software", Parent: Opex},
		{Id: "facilities", Name: "Facilities", Parent: Opex},
		{Id: "depreciation", Name: "Depreciation", Parent: Opex},
	}
}

func DefaultSubgroups() map[Subgroup][]string {
	return map[Subgroup][]string{
		CompAndBenefits: {
			"base-pay",
			"capitalized-salaries",
			"commissions",
			"reclass-salaries",
			"bonus",
			"benefits",
			"payroll-taxes",
			"other-compensation",
		},
		Other: {
			"telecom",
			"recruiting",
			"training",
			"office-supplies",
			"other-expenses",
		},
	}
}
