package quality

import "fmt"

// NarrationSystemPrompt frames the external narrator's role. The
// narrator only explains; it never touches data.
const NarrationSystemPrompt = `You are an AI assistant helping explain CRM data quality issues to business users.

Given a list of data quality issues found in a CRM dataset, explain:
1. Why each type of issue matters for business operations
2. What downstream risks these issues could cause (automation failures, bad analytics, customer impact)
3. Suggested priority order for cleanup

Keep your response:
- Business-focused (not technical jargon)
- Concise but comprehensive
- Actionable
- Do NOT use any emojis

CRITICAL: You are ONLY explaining and advising. You are NOT modifying any data.`

// NarrationPrompt builds the user prompt for the narrator from the
// deterministic issue summary.
func NarrationPrompt(issues []Issue) string {
	return fmt.Sprintf(`Analyze these CRM data quality issues and provide business-focused explanations:

%s
Provide:
1. Business impact explanation for each issue type
2. Downstream risks if not addressed
3. Recommended cleanup priority order

Do NOT use any emojis in your response.
`, NarrationInput(issues))
}
