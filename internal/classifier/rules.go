package classifier

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"jortiz/resumen-csv/internal/models"
)

// RulesFromKeywords converts per-category keyword additions into contains
// rules, sorted by category so the resulting order is deterministic. They
// are meant to be appended after the user's explicit rules.
func RulesFromKeywords(overrides map[string][]string) []models.CategorizationRule {
	categories := make([]string, 0, len(overrides))
	for category := range overrides {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var rules []models.CategorizationRule
	for _, category := range categories {
		for _, keyword := range overrides[category] {
			rules = append(rules, models.CategorizationRule{
				Name: "keyword: " + keyword,
				Condition: models.RuleCondition{
					Field:    models.FieldDescription,
					Operator: models.OpContains,
					Value:    keyword,
				},
				Action:  models.RuleAction{Category: category, Subcategory: category},
				Enabled: true,
			})
		}
	}
	return rules
}

// RulesFromExcludedOwners converts the configured excluded-owner list into
// equals rules that force the excluded type. Transactions belonging to these
// owners never count toward income or expense totals.
func RulesFromExcludedOwners(owners []string) []models.CategorizationRule {
	var rules []models.CategorizationRule
	for _, owner := range owners {
		rules = append(rules, models.CategorizationRule{
			Name: "excluded owner: " + owner,
			Condition: models.RuleCondition{
				Field:    models.FieldOwner,
				Operator: models.OpEquals,
				Value:    owner,
			},
			Action: models.RuleAction{
				Type:        models.TypeExcluded,
				Category:    models.CategoryUncategorized,
				Subcategory: models.CategoryUncategorized,
			},
			Enabled: true,
		})
	}
	return rules
}

// applyRules evaluates the user's rules in order and returns the first
// enabled rule whose condition matches. User rules always win over built-in
// heuristics.
func applyRules(in Input, rules []models.CategorizationRule) (Result, bool) {
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if matchCondition(in, rule.Condition) {
			resType := rule.Action.Type
			if resType == "" {
				resType = typeForCategory(rule.Action.Category, in.Amount)
			}
			return Result{
				Type:        resType,
				Category:    rule.Action.Category,
				Subcategory: rule.Action.Subcategory,
			}, true
		}
	}
	return Result{}, false
}

func matchCondition(in Input, cond models.RuleCondition) bool {
	switch cond.Operator {
	case models.OpGreaterThan, models.OpLessThan:
		return matchNumeric(in, cond)
	default:
		return matchString(fieldValue(in, cond.Field), cond)
	}
}

func fieldValue(in Input, field string) string {
	switch field {
	case models.FieldOwner:
		return in.Owner
	case models.FieldAccount:
		return in.Account
	case models.FieldAmount:
		return in.Amount.String()
	default:
		return in.Description
	}
}

// matchString evaluates the string operators case-insensitively.
func matchString(value string, cond models.RuleCondition) bool {
	v := strings.ToLower(value)
	target := strings.ToLower(cond.Value)

	switch cond.Operator {
	case models.OpContains:
		return strings.Contains(v, target)
	case models.OpEquals:
		return v == target
	case models.OpStartsWith:
		return strings.HasPrefix(v, target)
	case models.OpEndsWith:
		return strings.HasSuffix(v, target)
	case models.OpRegex:
		re, err := regexp.Compile("(?i)" + cond.Value)
		if err != nil {
			return false
		}
		return re.MatchString(value)
	}
	return false
}

// matchNumeric evaluates greaterThan/lessThan against the amount field only.
func matchNumeric(in Input, cond models.RuleCondition) bool {
	if cond.Field != models.FieldAmount {
		return false
	}
	threshold, err := decimal.NewFromString(cond.Value)
	if err != nil {
		return false
	}
	switch cond.Operator {
	case models.OpGreaterThan:
		return in.Amount.GreaterThan(threshold)
	case models.OpLessThan:
		return in.Amount.LessThan(threshold)
	}
	return false
}
