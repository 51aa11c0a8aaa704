package generator

// Options lists the preset choices offered by the form dropdowns.
type Options struct {
	Profiles  []string   `json:"profiles"`
	Audiences []string   `json:"audiences"`
	Formats   []string   `json:"formats"`
	Lengths   []string   `json:"lengths"`
	Languages []string   `json:"languages"`
	Tones     []string   `json:"tones"`
	Defaults  PromptSpec `json:"defaults"`
}

// DefaultOptions returns the preset lists and the values the form starts with.
func DefaultOptions() Options {
	return Options{
		Profiles: []string{
			"Complete beginner",
			"Beginner in this field",
			"Confirmed/Intermediate",
			"Expert",
			"Multi-domain expert",
		},
		Audiences: []string{
			"Junior developer",
			"Senior developer",
			"Product Manager",
			"UX/UI designer",
			"Data Analyst",
			"Non-technical/Client",
			"Whole team",
			"Student/Learner",
		},
		Formats: []string{
			"Structured text",
			"Markdown with sections",
			"JSON",
			"Numbered list",
			"Table",
			"Commented code",
			"Step-by-step guide",
			"Key points + details",
		},
		Lengths: []string{
			"Ultra-concise (50-100 words)",
			"Concise (150-250 words)",
			"Normal (300-500 words)",
			"Detailed (600-1000 words)",
			"Very detailed (1000+ words)",
		},
		Languages: []string{
			"Python (latest version)",
			"Python 3.9+",
			"JavaScript (ES6+)",
			"TypeScript",
			"SQL",
			"Java",
			"C#",
			"Go",
			"Rust",
			"Pseudo-code",
			"Agnostic (language-neutral)",
		},
		Tones: []string{
			"Educational (explains the concepts)",
			"Formal and professional",
			"Conversational and friendly",
			"Technical and precise",
			"Creative and innovative",
			"Skeptical and critical",
			"Encouraging and motivating",
		},
		Defaults: PromptSpec{
			Profile:             "Confirmed/Intermediate",
			Audience:            "Junior developer",
			FormatOutput:        "Commented code",
			Length:              "Detailed (600-1000 words)",
			Language:            "Python (latest version)",
			Tone:                "Technical and precise",
			ClarificationNeeded: true,
		},
	}
}
