package service

import (
	"fmt"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
)

// Catalog is an index over the static transaction type definitions.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	defs     []domain.TypeDefinition
	byValue  map[domain.TransactionType]int
	byID     map[string]int
	children map[string][]domain.TransactionType // parent id -> child tokens, catalog order
}

// NewCatalog indexes defs and checks the two-level hierarchy invariants.
func NewCatalog(defs []domain.TypeDefinition) (*Catalog, error) {
	c := &Catalog{
		defs:     make([]domain.TypeDefinition, len(defs)),
		byValue:  make(map[domain.TransactionType]int, len(defs)),
		byID:     make(map[string]int, len(defs)),
		children: make(map[string][]domain.TransactionType),
	}

	var problems []string
	for i, d := range defs {
		d.Children = append([]string(nil), d.Children...)
		c.defs[i] = d

		if d.ID == "" || d.Value == "" {
			problems = append(problems, fmt.Sprintf("entry %d: id and value are required", i))
			continue
		}
		if _, dup := c.byID[d.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate id %q", d.ID))
			continue
		}
		if _, dup := c.byValue[d.Value]; dup {
			problems = append(problems, fmt.Sprintf("duplicate value %q", d.Value))
			continue
		}
		c.byID[d.ID] = i
		c.byValue[d.Value] = i
	}

	for _, d := range c.defs {
		switch {
		case d.IsParent && d.Parent != "":
			problems = append(problems, fmt.Sprintf("%q is both a parent and a child", d.ID))
		case !d.IsParent && d.Parent == "":
			problems = append(problems, fmt.Sprintf("%q has no parent", d.ID))
		case !d.IsParent && len(d.Children) > 0:
			problems = append(problems, fmt.Sprintf("%q lists children but is not a parent", d.ID))
		case !d.IsParent:
			idx, ok := c.byID[d.Parent]
			if !ok {
				problems = append(problems, fmt.Sprintf("%q: parent %q does not exist", d.ID, d.Parent))
				continue
			}
			if !c.defs[idx].IsParent {
				problems = append(problems, fmt.Sprintf("%q: parent %q is not a parent entry", d.ID, d.Parent))
				continue
			}
			c.children[d.Parent] = append(c.children[d.Parent], d.Value)
		}
	}

	// The children list of every parent must match the back-references exactly.
	for _, d := range c.defs {
		if !d.IsParent {
			continue
		}
		listed := make(map[string]bool, len(d.Children))
		for _, childID := range d.Children {
			idx, ok := c.byID[childID]
			if !ok {
				problems = append(problems, fmt.Sprintf("%q: child %q does not exist", d.ID, childID))
				continue
			}
			if c.defs[idx].Parent != d.ID {
				problems = append(problems, fmt.Sprintf("%q: child %q points to parent %q", d.ID, childID, c.defs[idx].Parent))
			}
			listed[childID] = true
		}
		for _, tok := range c.children[d.ID] {
			if id := c.defs[c.byValue[tok]].ID; !listed[id] {
				problems = append(problems, fmt.Sprintf("%q: child %q is not listed in children", d.ID, id))
			}
		}
	}

	if len(problems) > 0 {
		return nil, &domain.ErrInvalidCatalog{Problems: problems}
	}
	return c, nil
}

// DefaultCatalog indexes domain.DefaultTypeDefinitions.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(domain.DefaultTypeDefinitions())
	if err != nil {
		panic("default catalog is inconsistent: " + err.Error())
	}
	return c
}

// Lookup resolves a token to its definition.
func (c *Catalog) Lookup(t domain.TransactionType) (domain.TypeDefinition, bool) {
	idx, ok := c.byValue[t]
	if !ok {
		return domain.TypeDefinition{}, false
	}
	return c.defs[idx], true
}

// Definitions returns the catalog entries in declaration order.
func (c *Catalog) Definitions() []domain.TypeDefinition {
	out := make([]domain.TypeDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Values returns every token in declaration order.
func (c *Catalog) Values() []domain.TransactionType {
	out := make([]domain.TransactionType, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d.Value)
	}
	return out
}

// Children returns the child tokens of a parent token (nil for children and unknown tokens).
func (c *Catalog) Children(parent domain.TransactionType) []domain.TransactionType {
	def, ok := c.Lookup(parent)
	if !ok || !def.IsParent {
		return nil
	}
	return append([]domain.TransactionType(nil), c.children[def.ID]...)
}

// ParentOf returns the parent token of a child token.
func (c *Catalog) ParentOf(child domain.TransactionType) (domain.TransactionType, bool) {
	def, ok := c.Lookup(child)
	if !ok || def.IsParent {
		return "", false
	}
	return c.defs[c.byID[def.Parent]].Value, true
}
