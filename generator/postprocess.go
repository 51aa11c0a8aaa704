package generator

import (
	"errors"
	"strings"
)

// PostProcess trims a raw model reply and rejects empty ones.
func PostProcess(raw, model string) (Answer, error) {
	text := strings.TrimSpace(stripOuterFence(strings.TrimSpace(raw)))
	if text == "" {
		return Answer{}, errors.New("model returned an empty answer")
	}
	return Answer{Text: text, Model: model}, nil
}

// stripOuterFence removes a ``` fence wrapping the whole reply, which some
// models add around Markdown answers.
func stripOuterFence(s string) string {
	if !strings.HasPrefix(s, fence) || !strings.HasSuffix(s, fence) || len(s) < 2*len(fence) {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	inner := s[nl+1 : len(s)-len(fence)]
	if strings.Contains(inner, fence) {
		return s
	}
	return inner
}
