package domain

// Role is a semantic column purpose within a price-list sheet.
type Role string

const (
	RoleProductName     Role = "product_name"
	RoleDescription     Role = "description"
	RoleBrand           Role = "brand"
	RoleListPrice       Role = "list_price"
	RoleDiscountedPrice Role = "discounted_price"
)

// ProductRecord is one extracted product row. Records are created by the
// row extractor, appended to the sheet result and never mutated afterward.
// Every emitted record satisfies len(trim(Name)) > 3 and ListPrice > 0.
type ProductRecord struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Brand           string   `json:"brand,omitempty"`
	CompanyName     string   `json:"companyName"`
	ListPrice       float64  `json:"listPrice"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
	CurrencyCode    string   `json:"currencyCode"`
}

// ColumnMap assigns columns to roles for one sheet, plus the sheet's default
// currency. It is built once per sheet and read-only afterward. At most one
// column is held per role; a later assignment overwrites an earlier one,
// so duplicate colored columns let the rightmost win.
type ColumnMap struct {
	columns  map[Role]int
	currency string
}

// NewColumnMap creates an empty map seeded with the locale default currency.
func NewColumnMap(defaultCurrency string) *ColumnMap {
	return &ColumnMap{
		columns:  make(map[Role]int),
		currency: defaultCurrency,
	}
}

// Assign binds a role to a column index, replacing any previous binding.
func (m *ColumnMap) Assign(role Role, col int) {
	m.columns[role] = col
}

// Column returns the column index bound to the role, if any.
func (m *ColumnMap) Column(role Role) (int, bool) {
	col, ok := m.columns[role]
	return col, ok
}

// SetCurrency overrides the default currency for the sheet.
func (m *ColumnMap) SetCurrency(code string) {
	if code != "" {
		m.currency = code
	}
}

// Currency returns the sheet's currency code.
func (m *ColumnMap) Currency() string {
	return m.currency
}

// Empty reports whether no role has been assigned a column. A sheet whose
// map stays empty has no usable color signal and is skipped.
func (m *ColumnMap) Empty() bool {
	return len(m.columns) == 0
}
