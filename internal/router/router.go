package router

import (
	"strconv"
	"strings"

	"hrassistant/internal/domain"
)

// MissingDaysMessage is shown when a leave application omits or
// malforms the day count.
const MissingDaysMessage = "Please specify leave days like: 'apply for leave 2.5'"

// Rule inspects a normalized query and either claims it, producing a
// classification, or passes it to the next rule. A claimed query may
// still carry an error (for example a malformed day count).
type Rule struct {
	Name  string
	Apply func(query string) (domain.Classification, bool, error)
}

// Router classifies queries with an ordered rule list. Order matters:
// an application query could otherwise also match balance phrasing.
type Router struct {
	rules []Rule
}

// New returns a router with the default rules: leave application by
// prefix, balance by phrase set, policy question as fallback.
func New() *Router {
	return &Router{rules: []Rule{
		LeaveApplicationRule("apply for leave"),
		BalanceRule("leave balance", "remaining leaves", "how many leaves"),
		PolicyQuestionRule(),
	}}
}

// NewWithRules builds a router from a custom ordered rule list.
func NewWithRules(rules ...Rule) *Router {
	return &Router{rules: rules}
}

// Classify lower-cases and trims the query and runs it through the rule
// list in order. The returned error is user-visible.
func (r *Router) Classify(raw string) (domain.Classification, error) {
	query := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range r.rules {
		if cls, ok, err := rule.Apply(query); ok {
			return cls, err
		}
	}
	// unreachable with the default fallback rule in place
	return domain.Classification{Kind: domain.KindPolicyQuestion, Question: query}, nil
}

// LeaveApplicationRule claims queries starting with the given prefix and
// parses the fourth whitespace-separated token as a day count.
func LeaveApplicationRule(prefix string) Rule {
	return Rule{
		Name: "leave-application",
		Apply: func(query string) (domain.Classification, bool, error) {
			if !strings.HasPrefix(query, prefix) {
				return domain.Classification{}, false, nil
			}
			fields := strings.Fields(query)
			if len(fields) < 4 {
				return domain.Classification{}, true,
					domain.Errorf(domain.ErrValidation, MissingDaysMessage)
			}
			days, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return domain.Classification{}, true,
					domain.Errorf(domain.ErrParse, MissingDaysMessage)
			}
			return domain.Classification{Kind: domain.KindLeaveApplication, Days: days}, true, nil
		},
	}
}

// BalanceRule claims queries containing any of the given phrases.
func BalanceRule(phrases ...string) Rule {
	return Rule{
		Name: "balance",
		Apply: func(query string) (domain.Classification, bool, error) {
			for _, p := range phrases {
				if strings.Contains(query, p) {
					return domain.Classification{Kind: domain.KindBalance}, true, nil
				}
			}
			return domain.Classification{}, false, nil
		},
	}
}

// PolicyQuestionRule claims everything; it must be last.
func PolicyQuestionRule() Rule {
	return Rule{
		Name: "policy-question",
		Apply: func(query string) (domain.Classification, bool, error) {
			return domain.Classification{Kind: domain.KindPolicyQuestion, Question: query}, true, nil
		},
	}
}
