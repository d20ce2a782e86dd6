package categories

// System-provided defaults. Users can replace either list wholesale and
// reset back to these at any time.

var defaultExpense = []string{
	"Food",
	"Housing",
	"Transportation",
	"Utilities",
	"Healthcare",
	"Entertainment",
	"Shopping",
	"Education",
	"Travel",
	"Other",
}

var defaultIncome = []string{
	"Salary",
	"Freelance",
	"Investments",
	"Gifts",
	"Other",
}

// DefaultFor returns a copy of the system default list for the given type.
func DefaultFor(t Type) []string {
	var src []string
	switch t {
	case Income:
		src = defaultIncome
	default:
		src = defaultExpense
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
