package service

import "github.com/boddenberg/momentum-bfa-go/internal/domain"

// Toggle applies one checkbox toggle to current and returns the new selection.
// The input is never modified. Unknown tokens return current unchanged and false.
//
//   - parent unchecked -> parent and all of its children become selected
//   - parent checked   -> parent and all of its children are removed
//   - child unchecked  -> child and (if missing) its parent become selected
//   - child checked    -> child is removed; the parent goes too when no sibling is left
func (c *Catalog) Toggle(current domain.Selection, t domain.TransactionType) (domain.Selection, bool) {
	def, ok := c.Lookup(t)
	if !ok {
		return current, false
	}

	next := current.Clone()

	if def.IsParent {
		children := c.children[def.ID]
		if current.Contains(t) {
			drop := make(map[domain.TransactionType]bool, len(children)+1)
			drop[t] = true
			for _, ch := range children {
				drop[ch] = true
			}
			return without(next, drop), true
		}

		next = append(next, t)
		for _, ch := range children {
			if !next.Contains(ch) {
				next = append(next, ch)
			}
		}
		return next, true
	}

	parent, _ := c.ParentOf(t)

	if current.Contains(t) {
		next = without(next, map[domain.TransactionType]bool{t: true})
		for _, sibling := range c.children[def.Parent] {
			if next.Contains(sibling) {
				return next, true
			}
		}
		return without(next, map[domain.TransactionType]bool{parent: true}), true
	}

	next = append(next, t)
	if !next.Contains(parent) {
		next = append(next, parent)
	}
	return next, true
}

// Consistent reports whether every parent with children is selected exactly
// when at least one of its children is selected.
func (c *Catalog) Consistent(sel domain.Selection) bool {
	for _, d := range c.defs {
		children := c.children[d.ID]
		if !d.IsParent || len(children) == 0 {
			continue
		}
		anyChild := false
		for _, ch := range children {
			if sel.Contains(ch) {
				anyChild = true
				break
			}
		}
		if sel.Contains(d.Value) != anyChild {
			return false
		}
	}
	return true
}

func without(sel domain.Selection, drop map[domain.TransactionType]bool) domain.Selection {
	out := sel[:0]
	for _, v := range sel {
		if !drop[v] {
			out = append(out, v)
		}
	}
	return out
}
