package category

import (
	"errors"
	"fmt"
)

type Parent string

const (
	CostOfSales Parent = "cost-of-sales"
	Opex        Parent = "opex"
)

type Subgroup string

const (
	CompAndBenefits Subgroup = "comp-and-benefits"
	Other           Subgroup = "other"
)

// Subgroups lists the opex subgroups in display order.
var Subgroups = []Subgroup{CompAndBenefits, Other}

func (s Subgroup) DisplayName() string {
	switch s {
	case CompAndBenefits:
		return "Comp and Benefits"
	case Other:
		return "Other"
	}
	return string(s)
}

var ErrInvalidRegistry = errors.New("invalid category registry")

type Category struct {
	Id     string
	Name   string
	Parent Parent
	// IsNegative is a display hint only. It never changes arithmetic.
	IsNegative bool
}

// Taxonomy assigns opex categories to a named subgroup. Categories missing from
// the table are reported directly under opex.
type Taxonomy map[string]Subgroup

// NewTaxonomy builds a Taxonomy from subgroup -> category ids lists, the shape
// used in configuration.
func NewTaxonomy(members map[Subgroup][]string) (Taxonomy, error) {
	taxonomy := Taxonomy{}
	for subgroup, ids := range members {
		if !isKnownSubgroup(subgroup) {
			return nil, fmt.Errorf("%w: unknown subgroup %q", ErrInvalidRegistry, subgroup)
		}
		for _, id := range ids {
			if existing, ok := taxonomy[id]; ok && existing != subgroup {
				return nil, fmt.Errorf("%w: category %q assigned to both %q and %q", ErrInvalidRegistry, id, existing, subgroup)
			}
			taxonomy[id] = subgroup
		}
	}
	return taxonomy, nil
}

func isKnownSubgroup(s Subgroup) bool {
	for _, known := range Subgroups {
		if known == s {
			return true
		}
	}
	return false
}

// Registry is the immutable, ordered list of categories together with the
// subgroup classification of its opex members.
type Registry struct {
	categories []Category
	byId       map[string]int
	taxonomy   Taxonomy
}

// NewRegistry validates the categories and the taxonomy against each other.
func NewRegistry(categories []Category, taxonomy Taxonomy) (*Registry, error) {
	r := &Registry{
		categories: make([]Category, 0, len(categories)),
		byId:       make(map[string]int, len(categories)),
		taxonomy:   Taxonomy{},
	}
	for _, c := range categories {
		if c.Id == "" {
			return nil, fmt.Errorf("%w: category %q has no id", ErrInvalidRegistry, c.Name)
		}
		if c.Parent != CostOfSales && c.Parent != Opex {
			return nil, fmt.Errorf("%w: category %q has unknown parent %q", ErrInvalidRegistry, c.Id, c.Parent)
		}
		if _, exists := r.byId[c.Id]; exists {
			return nil, fmt.Errorf("%w: duplicate category id %q", ErrInvalidRegistry, c.Id)
		}
		r.byId[c.Id] = len(r.categories)
		r.categories = append(r.categories, c)
	}
	for id, subgroup := range taxonomy {
		idx, ok := r.byId[id]
		if !ok {
			return nil, fmt.Errorf("%w: subgroup %q references unknown category %q", ErrInvalidRegistry, subgroup, id)
		}
		if r.categories[idx].Parent != Opex {
			return nil, fmt.Errorf("%w: subgroup %q references non-opex category %q", ErrInvalidRegistry, subgroup, id)
		}
		r.taxonomy[id] = subgroup
	}
	return r, nil
}

// All returns a copy of the categories in registry order.
func (r *Registry) All() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

func (r *Registry) Get(id string) (Category, bool) {
	idx, ok := r.byId[id]
	if !ok {
		return Category{}, false
	}
	return r.categories[idx], true
}

func (r *Registry) ByParent(parent Parent) []Category {
	var out []Category
	for _, c := range r.categories {
		if c.Parent == parent {
			out = append(out, c)
		}
	}
	return out
}

// SubgroupOf returns the subgroup tag of a category, if it has one.
func (r *Registry) SubgroupOf(id string) (Subgroup, bool) {
	s, ok := r.taxonomy[id]
	return s, ok
}

// Members returns the categories of a subgroup in registry order.
func (r *Registry) Members(subgroup Subgroup) []Category {
	var out []Category
	for _, c := range r.categories {
		if r.taxonomy[c.Id] == subgroup {
			out = append(out, c)
		}
	}
	return out
}

// Remaining returns opex categories that are not part of any subgroup.
func (r *Registry) Remaining() []Category {
	var out []Category
	for _, c := range r.categories {
		if c.Parent != Opex {
			continue
		}
		if _, tagged := r.taxonomy[c.Id]; !tagged {
			out = append(out, c)
		}
	}
	return out
}
