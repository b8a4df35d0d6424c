package convert

import "strings"

// DefaultInstructions is used when no custom prompt is selected
const DefaultInstructions = `You are an expert content processor. Your task is to convert the following web page text into clean, structured markdown format.

INSTRUCTIONS:
1. Output the source URL in the beginning as a markdown link "[Source URL](<URL>)"
2. Remove all navigation menus, headers, footers, advertisements
3. Extract all meaningful content from the text
4. Structure the content with appropriate markdown headers (# ## ###)
5. Format lists, quotes, and code blocks appropriately
6. Remove repetitive or boilerplate text
7. Maintain logical flow and readability
8. If there are multiple articles or sections, separate them clearly
9. Remove social media buttons, "share this" links, and similar UI elements
10. Keep only the essential, valuable content that a reader would want
11. In the end, add a "CTA in this page" section to include important call to actions, such as "View Fees", "Enroll Now", "Read More", etc.`

const (
	inputDelimiter    = "\n\nINPUT TEXT:\n"
	outputInstruction = "\n\nOUTPUT:\nPlease provide only the clean markdown content without any explanations or meta-commentary."
)

// BuildPrompt joins the instructions, the source text and the output-only instruction.
// A blank override falls back to DefaultInstructions.
func BuildPrompt(sourceText, override string) string {
	instructions := DefaultInstructions
	if strings.TrimSpace(override) != "" {
		instructions = override
	}
	return instructions + inputDelimiter + sourceText + outputInstruction
}
