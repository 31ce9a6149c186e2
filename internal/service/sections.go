package service

import (
	"regexp"
	"slices"
	"strings"
)

// Reply sections, in the order they are rendered.
const (
	SectionDefinition         = "Definition"
	SectionSymptoms           = "Symptoms"
	SectionPrevention         = "Prevention"
	SectionMedicalSuggestions = "Medical Suggestions"
)

// SectionOrder is the canonical order of reply sections.
var SectionOrder = []string{
	SectionDefinition,
	SectionSymptoms,
	SectionPrevention,
	SectionMedicalSuggestions,
}

// sectionKeywords maps lowercase keywords to the section they ask for. The
// slice order is the detection order.
var sectionKeywords = []struct {
	keyword string
	section string
}{
	{"definition", SectionDefinition},
	{"symptom", SectionSymptoms},
	{"prevention", SectionPrevention},
	{"medical suggestion", SectionMedicalSuggestions},
	{"suggestion", SectionMedicalSuggestions},
}

var sectionHeaders = func() map[string]*regexp.Regexp {
	headers := make(map[string]*regexp.Regexp, len(SectionOrder))
	for _, title := range SectionOrder {
		headers[title] = regexp.MustCompile(`(?i)\*\*` + regexp.QuoteMeta(title) + `\*\*[ \t]*`)
	}
	return headers
}()

// DetectSections returns the sections the message explicitly asks for.
func DetectSections(message string) []string {
	lowered := strings.ToLower(message)
	var requested []string
	for _, kw := range sectionKeywords {
		if strings.Contains(lowered, kw.keyword) && !slices.Contains(requested, kw.section) {
			requested = append(requested, kw.section)
		}
	}
	return requested
}

// FormatSections keeps only the populated sections of text, restricted to
// requested when it is not empty, and renders them in canonical order as
// "**Title**\nbody\n" blocks. It returns "" when no section is populated.
func FormatSections(text string, requested []string) string {
	extracted := make(map[string]string, len(SectionOrder))
	for _, title := range SectionOrder {
		if content := extractSection(text, title); content != "" {
			extracted[title] = content
		}
	}

	ordered := SectionOrder
	if len(requested) > 0 {
		ordered = nil
		for _, title := range SectionOrder {
			if slices.Contains(requested, title) {
				ordered = append(ordered, title)
			}
		}
	}

	var parts []string
	for _, title := range ordered {
		if content, ok := extracted[title]; ok {
			parts = append(parts, "**"+title+"**\n"+content+"\n")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.Join(parts, "\n")) + "\n"
}

// extractSection returns the trimmed body following the first "**title**"
// header, up to the next line starting with "**" or the end of text.
func extractSection(text, title string) string {
	loc := sectionHeaders[title].FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[1]:]
	if end := strings.Index(body, "\n**"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
