package analyze

// CategoryGeneral is the bucket for patterns the model reported without
// a category. Not part of the predefined table.
const CategoryGeneral = "general"

// PredefinedCategoryOrder fixes the rendering order of the predefined
// categories. The knowledge bank lists these first, custom categories
// after.
var PredefinedCategoryOrder = []string{
	"coding_style",
	"architecture",
	"testing",
	"documentation",
	"workflow",
	"tools",
	"communication",
	"error_handling",
	"performance",
	"ui_ux",
}

// PredefinedCategories maps each predefined category to its description.
var PredefinedCategories = map[string]string{
	"coding_style":   "Naming conventions, formatting, code style preferences",
	"architecture":   "File structure, design patterns, project organization",
	"testing":        "Testing approaches, coverage expectations, test patterns",
	"documentation":  "Comments, README, JSDoc, docstrings preferences",
	"workflow":       "Git practices, PR conventions, commit style",
	"tools":          "Preferred libraries, frameworks, dependencies",
	"communication":  "How you prefer the assistant to respond, verbosity, explanations",
	"error_handling": "Exception handling, validation, error messages",
	"performance":    "Optimization preferences, caching, efficiency",
	"ui_ux":          "User interface patterns, design choices, accessibility",
}

// IsPredefinedCategory reports whether name is in the predefined table.
func IsPredefinedCategory(name string) bool {
	_, ok := PredefinedCategories[name]
	return ok
}
