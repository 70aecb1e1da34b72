package variance

import (
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/category"
)

const (
	CostOfSalesGroupId   = string(category.CostOfSales)
	CostOfSalesGroupName = "Cost of Sales"
)

// SummaryFunc computes the summary of one category for a period.
type SummaryFunc func(c category.Category) CategorySummary

// Aggregate builds the cost of sales, opex subgroup and net totals of a period
// by mapping summarize over the registry. The returned PeriodData carries no
// period tags; callers set Year, Quarter and Month.
func Aggregate(registry *category.Registry, summarize SummaryFunc) PeriodData {
	costOfSales := group(CostOfSalesGroupId, CostOfSalesGroupName, registry.ByParent(category.CostOfSales), summarize)

	opex := OpexGroup{SubGroups: make([]SubCategoryGroup, 0, len(category.Subgroups))}
	for _, subgroup := range category.Subgroups {
		g := AggregateSubgroup(registry, subgroup, summarize)
		opex.SubGroups = append(opex.SubGroups, g)
		opex.Total = opex.Total.Add(g.Total)
	}
	remaining := registry.Remaining()
	opex.Categories = make([]CategorySummary, 0, len(remaining))
	for _, c := range remaining {
		s := summarize(c)
		opex.Categories = append(opex.Categories, s)
		opex.Total = opex.Total.Add(s.Totals())
	}

	return PeriodData{
		CostOfSales: costOfSales,
		Opex:        opex,
		NetTotal:    costOfSales.Total.Add(opex.Total),
	}
}

// AggregateSubgroup summarizes a single opex subgroup.
func AggregateSubgroup(registry *category.Registry, subgroup category.Subgroup, summarize SummaryFunc) SubCategoryGroup {
	return group(string(subgroup), subgroup.DisplayName(), registry.Members(subgroup), summarize)
}

func group(id, name string, categories []category.Category, summarize SummaryFunc) SubCategoryGroup {
	g := SubCategoryGroup{
		Id:         id,
		Name:       name,
		Categories: make([]CategorySummary, 0, len(categories)),
	}
	for _, c := range categories {
		s := summarize(c)
		g.Categories = append(g.Categories, s)
		g.Total = g.Total.Add(s.Totals())
	}
	return g
}
