package generate

import "strings"

// SynonymGroup maps everyday terms to the canonical policy topic they
// refer to. The table is data: it renders into the prompt and drives
// query expansion before retrieval, so the mapping is testable apart
// from the prompt text.
type SynonymGroup struct {
	Terms []string
	Topic string
}

type SynonymTable []SynonymGroup

// DefaultSynonyms covers the policy manual's topic vocabulary.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		{Terms: []string{"fuel", "petrol", "transport", "commute"}, Topic: "Travel Allowance"},
		{Terms: []string{"car financing", "vehicle loan", "auto financing"}, Topic: "Car Financing Policy"},
		{Terms: []string{"bonus", "commission", "performance pay"}, Topic: "Incentive Structure"},
		{Terms: []string{"vacation", "pto", "paid time off", "holidays"}, Topic: "Leave Policy"},
		{Terms: []string{"health insurance", "medical policy", "health coverage"}, Topic: "OPD Policy / Maternity / Insurance"},
		{Terms: []string{"gratuity", "retirement", "fund", "pension"}, Topic: "Provident Fund"},
		{Terms: []string{"termination", "job end", "contract end"}, Topic: "Resignation & Termination Policy"},
		{Terms: []string{"training bond", "skills clause", "non-compete"}, Topic: "Non-Competing Technology"},
		{Terms: []string{"leaves", "casual leave", "sick leave", "annual leave"}, Topic: "Leave Policy"},
	}
}

// PromptLines renders the table as prompt-ready mapping lines.
func (t SynonymTable) PromptLines() string {
	var b strings.Builder
	for _, g := range t {
		quoted := make([]string, len(g.Terms))
		for i, term := range g.Terms {
			quoted[i] = `"` + term + `"`
		}
		b.WriteString("   - ")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString(` → "`)
		b.WriteString(g.Topic)
		b.WriteString("\"\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Expand appends the canonical topic of every matched term to the
// query, so retrieval finds passages phrased in policy vocabulary even
// when the user asks in everyday terms.
func (t SynonymTable) Expand(query string) string {
	lower := strings.ToLower(query)
	var topics []string
	seen := make(map[string]struct{})
	for _, g := range t {
		for _, term := range g.Terms {
			if strings.Contains(lower, term) {
				if _, ok := seen[g.Topic]; !ok {
					seen[g.Topic] = struct{}{}
					topics = append(topics, g.Topic)
				}
				break
			}
		}
	}
	if len(topics) == 0 {
		return query
	}
	return query + " " + strings.Join(topics, " ")
}
