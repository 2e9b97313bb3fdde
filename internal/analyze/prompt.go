package analyze

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/promptbank/internal/extract"
)

// discoverySystemPrompt instructs the model on the five preference
// signals to look for and pins the JSON reply shape the decoder expects.
const discoverySystemPrompt = `You are an expert at analyzing user behavior patterns from coding assistant conversations.

Your task is to identify recurring patterns, preferences, and stylistic choices from a collection of user prompts given to a coding assistant.

Focus on:
1. EXPLICIT INSTRUCTIONS - Things the user directly asks for (e.g., "always use TypeScript")
2. CORRECTIONS - Things the user corrects, which reveal implicit preferences (e.g., "no, use camelCase")
3. REPEATED REQUESTS - Similar requests made across different sessions
4. STYLE PREFERENCES - Coding style, naming conventions, file organization
5. WORKFLOW PATTERNS - How the user likes to work, what they prioritize

For each pattern you identify:
- Summarize it in one clear sentence
- Quote 2-3 example prompts that demonstrate it
- Rate your confidence: high (appears 3+ times explicitly), medium (appears 2 times or implicitly), low (inferred from single occurrence)
- Suggest a category from: coding_style, architecture, testing, documentation, workflow, tools, communication, error_handling, performance, ui_ux, or suggest a custom category

Output your analysis as valid JSON with this structure:
{
    "patterns": [
        {
            "summary": "One sentence describing the pattern",
            "examples": ["quote1", "quote2"],
            "confidence": "high|medium|low",
            "category": "category_name"
        }
    ],
    "custom_categories": [
        {
            "name": "category_name",
            "description": "What this category covers"
        }
    ]
}`

// FormatPrompts renders a batch as a numbered list annotated with each
// prompt's type and project, one prompt per line.
func FormatPrompts(prompts []extract.AnalysisPrompt) string {
	lines := make([]string, 0, len(prompts))
	for i, p := range prompts {
		ptype := p.Type
		if ptype == "" {
			ptype = "general"
		}
		project := p.Project
		if project == "" {
			project = "unknown"
		}
		lines = append(lines, fmt.Sprintf("[%d] (%s, %s) %s", i+1, ptype, project, p.Text))
	}
	return strings.Join(lines, "\n")
}

// buildUserMessage wraps a formatted batch in the analysis request.
func buildUserMessage(prompts []extract.AnalysisPrompt) string {
	return fmt.Sprintf(`Analyze these %d user prompts from coding assistant sessions and identify recurring patterns:

%s

Remember to output valid JSON with patterns and any custom categories.`, len(prompts), FormatPrompts(prompts))
}
