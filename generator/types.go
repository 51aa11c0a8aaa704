package generator

import "strings"

// PromptSpec holds the form fields for one generation request.
type PromptSpec struct {
	Role                string `json:"role"`
	Profile             string `json:"profile"`
	Audience            string `json:"audience"`
	Objective           string `json:"objective"`
	Context             string `json:"context"`
	Restrictions        string `json:"restrictions"`
	FormatOutput        string `json:"format_output"`
	Length              string `json:"length"`
	Language            string `json:"language"`
	Tone                string `json:"tone"`
	Example             string `json:"example"`
	ClarificationNeeded bool   `json:"clarification_needed"`
}

// normalized returns a copy with surrounding whitespace removed. Example only
// loses its surrounding line breaks so code indentation is kept.
func (s PromptSpec) normalized() PromptSpec {
	out := PromptSpec{
		Role:                strings.TrimSpace(s.Role),
		Profile:             strings.TrimSpace(s.Profile),
		Audience:            strings.TrimSpace(s.Audience),
		Objective:           strings.TrimSpace(s.Objective),
		Context:             strings.TrimSpace(s.Context),
		Restrictions:        strings.TrimSpace(s.Restrictions),
		FormatOutput:        strings.TrimSpace(s.FormatOutput),
		Length:              strings.TrimSpace(s.Length),
		Language:            strings.TrimSpace(s.Language),
		Tone:                strings.TrimSpace(s.Tone),
		ClarificationNeeded: s.ClarificationNeeded,
	}
	if strings.TrimSpace(s.Example) != "" {
		out.Example = strings.Trim(s.Example, "\r\n")
	}
	return out
}

// Prompt is the message set sent to a chat model.
type Prompt struct {
	System string
	User   string
}

// Answer is a model reply to a tried prompt.
type Answer struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}
