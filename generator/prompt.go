package generator

import (
	"strings"
)

const (
	headerRole          = "## ROLE"
	headerAudience      = "## TARGET AUDIENCE"
	headerObjective     = "## OBJECTIVE"
	headerFormat        = "## FORMAT & STRUCTURE"
	headerRestrictions  = "## RESTRICTIONS & EXCLUSIONS"
	headerExample       = "## EXAMPLE OF WHAT I EXPECT"
	headerTone          = "## TONE & STYLE"
	headerClarification = "## CLARIFICATION"
	headerResponse      = "## RESPONSE"

	restrictionsLead  = "Do NOT / avoid:"
	exampleLead       = "Here is an example of an ideal response:"
	clarificationText = "If you detect any ambiguity or missing information, " +
		"ask one or two precise questions before answering.\n"
	closingText = "Now respond, following EXACTLY the specifications above."

	fence = "```"
)

// Assemble builds the prompt document for spec. It has no side effects and
// the same spec always yields the same bytes.
func Assemble(spec PromptSpec) (string, error) {
	s := spec.normalized()
	if err := validateSpec(s); err != nil {
		return "", err
	}

	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	if s.Role != "" {
		add(headerRole, "You are "+s.Role+".\n")
	}

	if s.Audience != "" {
		add(headerAudience, "Addressing: "+s.Audience+".")
		if s.Profile != "" {
			add("My profile: " + s.Profile + ".\n")
		}
	}

	if s.Objective != "" || s.Context != "" {
		add(headerObjective)
		if s.Objective != "" {
			add("I want: " + s.Objective)
		}
		if s.Context != "" {
			add("Technical context: " + s.Context + "\n")
		}
	}

	var output []string
	if s.FormatOutput != "" {
		output = append(output, "Format: "+s.FormatOutput)
	}
	if s.Length != "" {
		output = append(output, "Length: "+s.Length)
	}
	if s.Language != "" {
		output = append(output, "Language: "+s.Language)
	}
	if len(output) > 0 {
		add(headerFormat)
		add(output...)
		add("")
	}

	if s.Restrictions != "" {
		add(headerRestrictions, restrictionsLead, s.Restrictions+"\n")
	}

	if s.Example != "" {
		add(headerExample, exampleLead, "\n"+fence+"\n"+s.Example+"\n"+fence+"\n")
	}

	if s.Tone != "" {
		add(headerTone, "Tone: "+s.Tone+"\n")
	}

	if s.ClarificationNeeded {
		add(headerClarification, clarificationText)
	}

	add(headerResponse, closingText)

	return joinEntries(lines), nil
}

// joinEntries drops entries that are blank once trimmed and joins the rest
// with newlines. Entries are filtered whole, so line breaks inside a kept
// entry (the example fence, trailing section breaks) survive.
func joinEntries(entries []string) string {
	kept := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e) == "" {
			continue
		}
		kept = append(kept, e)
	}
	return strings.Join(kept, "\n")
}
