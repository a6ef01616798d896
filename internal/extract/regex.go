package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?(\(?\d{3}\)?[-.\s]?)?\d{3}[-.\s]?\d{4}`)
	locationPattern = regexp.MustCompile(`[A-Z][a-z]+(?:\s[A-Z][a-z]+)*,\s*[A-Z]{2}`)
	namePattern     = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+`)

	summaryPattern = regexp.MustCompile(`(?i)(summary|objective|profile)[\s:]+([^\n]+(?:\n[^\n]+){0,3})`)
	skillsPattern  = regexp.MustCompile(`(?i)(skills|technologies|expertise)[\s:]+([^\n]+(?:\n[^\n]+){0,5})`)
	certsPattern   = regexp.MustCompile(`(?i)(certifications|certificates|licenses)[\s:]+([^\n]+(?:\n[^\n]+){0,5})`)
	langPattern    = regexp.MustCompile(`(?i)languages[\s:]+([^\n]+)`)

	experienceHeader = regexp.MustCompile(`(?i)(experience|work history|employment)[\s:]+`)
	experienceStop   = regexp.MustCompile(`(?i)education|skills|certifications`)
	educationHeader  = regexp.MustCompile(`(?i)(education|academic)[\s:]+`)
	educationStop    = regexp.MustCompile(`(?i)experience|skills|certifications`)

	entrySplit = regexp.MustCompile(`\n\n+`)
	listSplit  = regexp.MustCompile(`[,;\n•·]`)
	pairSplit  = regexp.MustCompile(`[,;]`)
)

// Regex is a heuristic extractor built on section-header patterns. It is
// deterministic and never fails; unmatched fields stay empty.
type Regex struct{}

// NewRegex creates the regex extractor.
func NewRegex() *Regex { return &Regex{} }

// Extract implements Extractor. The returned error is always nil.
func (x *Regex) Extract(_ context.Context, text string) (domain.ParsedData, error) {
	return domain.ParsedData{
		Name:           extractName(text),
		Email:          emailPattern.FindString(text),
		Phone:          strings.TrimSpace(phonePattern.FindString(text)),
		Location:       locationPattern.FindString(text),
		Summary:        extractGroup(summaryPattern, text, 2),
		Skills:         extractList(skillsPattern, text, listSplit, 50),
		Experience:     extractExperience(text),
		Education:      extractEducation(text),
		Certifications: extractList(certsPattern, text, listSplit, 0),
		Languages:      extractList(langPattern, text, pairSplit, 0),
	}, nil
}

// extractName treats a short capitalized first line as the candidate name.
func extractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) < 50 && namePattern.MatchString(line) {
			return line
		}
		return ""
	}
	return ""
}

// extractGroup returns the trimmed capture group of the first match.
func extractGroup(re *regexp.Regexp, text string, group int) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[group])
}

// extractList pulls the section body and splits it into trimmed items.
// maxLen drops suspiciously long items (0 disables the cap).
func extractList(re *regexp.Regexp, text string, split *regexp.Regexp, maxLen int) []string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var items []string
	for _, raw := range split.Split(m[len(m)-1], -1) {
		item := strings.TrimSpace(raw)
		if item == "" {
			continue
		}
		if maxLen > 0 && len(item) >= maxLen {
			continue
		}
		items = append(items, item)
	}
	return items
}

// sectionBody cuts the text between a section header and the next known
// section header.
func sectionBody(text string, header, stop *regexp.Regexp) string {
	loc := header.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[1]:]
	if stopLoc := stop.FindStringIndex(body); stopLoc != nil {
		body = body[:stopLoc[0]]
	}
	return body
}

func extractExperience(text string) []domain.ExperienceEntry {
	body := sectionBody(text, experienceHeader, experienceStop)
	if body == "" {
		return nil
	}
	var entries []domain.ExperienceEntry
	for _, raw := range entrySplit.Split(body, -1) {
		entry := strings.TrimSpace(raw)
		if len(entry) <= 20 {
			continue
		}
		if len(entry) > 500 {
			entry = entry[:500]
		}
		entries = append(entries, domain.ExperienceEntry{Description: entry})
	}
	return entries
}

func extractEducation(text string) []domain.EducationEntry {
	body := sectionBody(text, educationHeader, educationStop)
	if body == "" {
		return nil
	}
	var entries []domain.EducationEntry
	for _, raw := range entrySplit.Split(body, -1) {
		if len(strings.TrimSpace(raw)) <= 10 {
			continue
		}
		entries = append(entries, domain.EducationEntry{})
	}
	return entries
}
