package models

// Rule condition operators. String comparisons are case-insensitive.
const (
	OpContains    = "contains"
	OpEquals      = "equals"
	OpStartsWith  = "startsWith"
	OpEndsWith    = "endsWith"
	OpGreaterThan = "greaterThan"
	OpLessThan    = "lessThan"
	OpRegex       = "regex"
)

// Rule condition fields.
const (
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldOwner       = "owner"
	FieldAccount     = "account"
)

// RuleCondition is the predicate half of a categorization rule.
type RuleCondition struct {
	Field    string `yaml:"field" json:"field"`
	Operator string `yaml:"operator" json:"operator"`
	Value    string `yaml:"value" json:"value"`
}

// RuleAction is the assignment applied when a condition matches. Type is
// optional; when empty the transaction type is derived from the category and
// the amount sign.
type RuleAction struct {
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Category    string `yaml:"category" json:"category"`
	Subcategory string `yaml:"subcategory" json:"subcategory"`
}

// CategorizationRule is a user-defined rule. Rules are ordered and the first
// enabled rule whose condition matches wins, ahead of every built-in
// heuristic.
type CategorizationRule struct {
	Name      string        `yaml:"name" json:"name"`
	Condition RuleCondition `yaml:"condition" json:"condition"`
	Action    RuleAction    `yaml:"action" json:"action"`
	Enabled   bool          `yaml:"enabled" json:"enabled"`
}
