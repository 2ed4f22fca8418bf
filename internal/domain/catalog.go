package domain

// ============================================================
// Transaction Type Catalog
// ============================================================

// TransactionType is the externally visible token of a catalog entry
// (e.g. "Card Present", "POS"). Selections and coefficient tables are keyed by it.
type TransactionType string

const (
	TypeCardPresent    TransactionType = "Card Present"
	TypeCardNotPresent TransactionType = "Card Not Present"
	TypeATM            TransactionType = "ATM"
	TypePOS            TransactionType = "POS"
	TypeEcommerce      TransactionType = "E-commerce"
	TypeRecurring      TransactionType = "Recurring"
)

// TypeDefinition is an immutable catalog entry.
// Parents carry Children (child ids); children carry Parent (a parent id).
type TypeDefinition struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Value       TransactionType `json:"value"`
	IsParent    bool            `json:"isParent,omitempty"`
	Parent      string          `json:"parent,omitempty"`
	Children    []string        `json:"children,omitempty"`
}

// DefaultTypeDefinitions returns the static two-level catalog rendered by the
// dashboard: Card Present (ATM, POS) and Card Not Present (E-commerce, Recurring).
func DefaultTypeDefinitions() []TypeDefinition {
	return []TypeDefinition{
		{
			ID:          "card-present",
			Title:       "Card Present (CP)",
			Description: "In-person/physical transactions at physical locations",
			Value:       TypeCardPresent,
			IsParent:    true,
			Children:    []string{"atm", "pos"},
		},
		{
			ID:          "card-not-present",
			Title:       "Card Not Present (CNP)",
			Description: "Remote transactions without physical card use",
			Value:       TypeCardNotPresent,
			IsParent:    true,
			Children:    []string{"ecommerce", "recurring"},
		},
		{
			ID:          "atm",
			Title:       "ATM",
			Description: "Cash withdrawals and deposits at ATMs",
			Value:       TypeATM,
			Parent:      "card-present",
		},
		{
			ID:          "pos",
			Title:       "POS",
			Description: "Point of sale terminal transactions",
			Value:       TypePOS,
			Parent:      "card-present",
		},
		{
			ID:          "ecommerce",
			Title:       "E-commerce",
			Description: "Online shopping and digital transactions",
			Value:       TypeEcommerce,
			Parent:      "card-not-present",
		},
		{
			ID:          "recurring",
			Title:       "Recurring",
			Description: "Scheduled repeat payments and subscriptions",
			Value:       TypeRecurring,
			Parent:      "card-not-present",
		},
	}
}

// Selection is the ordered set of selected transaction type tokens.
// Order is insertion order; the first element is the representative type
// reported in a CalculationResult.
type Selection []TransactionType

// Contains reports whether t is selected.
func (s Selection) Contains(t TransactionType) bool {
	for _, v := range s {
		if v == t {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	copy(out, s)
	return out
}
