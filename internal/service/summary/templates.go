package summary

// Template is a canned instruction preset offered to the user instead
// of a hand-written prompt.
type Template struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

var templates = []Template{
	{
		Value:  "executive",
		Label:  "Executive Summary",
		Prompt: "create a concise executive summary with key decisions, action items, and next steps in bullet points",
	},
	{
		Value:  "action-items",
		Label:  "Action Items Only",
		Prompt: "extract and list only the action items, decisions, and tasks assigned to specific people",
	},
	{
		Value:  "detailed",
		Label:  "Detailed Summary",
		Prompt: "provide a comprehensive summary including main topics discussed, decisions made, and follow-up actions",
	},
	{
		Value:  "key-points",
		Label:  "Key Points",
		Prompt: "summarize the main discussion points and conclusions in a structured format",
	},
}

func Templates() []Template {
	cpy := make([]Template, len(templates))
	copy(cpy, templates)
	return cpy
}
