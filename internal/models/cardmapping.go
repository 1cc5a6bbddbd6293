package models

import "strings"

// CardMapping associates the last 4 digits of a card number with the person
// the card belongs to. Used to resolve owners from card fragments that appear
// in statement text.
type CardMapping struct {
	Last4 string `yaml:"last4" json:"last4"`
	Owner string `yaml:"owner" json:"owner"`
}

// CardMappings is a lookup table over a slice of mappings.
type CardMappings []CardMapping

// OwnerFor returns the owner whose last-4 fragment appears in the text, or ""
// when no mapping matches.
func (m CardMappings) OwnerFor(text string) string {
	for _, cm := range m {
		if cm.Last4 != "" && strings.Contains(text, cm.Last4) {
			return cm.Owner
		}
	}
	return ""
}

// OwnerForExact returns the owner mapped to exactly the given last-4 digits.
func (m CardMappings) OwnerForExact(last4 string) string {
	for _, cm := range m {
		if cm.Last4 == last4 {
			return cm.Owner
		}
	}
	return ""
}
