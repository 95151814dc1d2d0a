package category

// Defaults is the set every new account starts with.
var Defaults = []CreateCategoryParams{
	{Name: "Salary", Type: TypeIncome, Color: "#10B981", Icon: "banknotes"},
	{Name: "Freelance", Type: TypeIncome, Color: "#059669", Icon: "briefcase"},
	{Name: "Investments", Type: TypeIncome, Color: "#047857", Icon: "chart-bar"},
	{Name: "Other Income", Type: TypeIncome, Color: "#065F46", Icon: "plus-circle"},

	{Name: "Food & Dining", Type: TypeExpense, Color: "#EF4444", Icon: "cake"},
	{Name: "Transportation", Type: TypeExpense, Color: "#F97316", Icon: "truck"},
	{Name: "Shopping", Type: TypeExpense, Color: "#EAB308", Icon: "shopping-bag"},
	{Name: "Entertainment", Type: TypeExpense, Color: "#8B5CF6", Icon: "film"},
	{Name: "Bills & Utilities", Type: TypeExpense, Color: "#06B6D4", Icon: "bolt"},
	{Name: "Healthcare", Type: TypeExpense, Color: "#EC4899", Icon: "heart"},
	{Name: "Education", Type: TypeExpense, Color: "#3B82F6", Icon: "academic-cap"},
	{Name: "Other Expenses", Type: TypeExpense, Color: "#6B7280", Icon: "ellipsis-horizontal"},
}
