package pipeline

import "strings"

// DefaultIcon is returned by SelectIcon when no rule matches.
const DefaultIcon = "article"

// iconRule maps any of its keywords to a Material Symbols icon name.
type iconRule struct {
	keywords []string
	icon     string
}

// iconRules is ordered: the first rule with a matching keyword wins.
var iconRules = []iconRule{
	{keywords: []string{"dashboard", "overview"}, icon: "dashboard"},
	{keywords: []string{"metric", "measure"}, icon: "analytics"},
	{keywords: []string{"insight", "intelligence"}, icon: "lightbulb"},
	{keywords: []string{"feature"}, icon: "star"},
	{keywords: []string{"implementation", "timeline"}, icon: "rocket_launch"},
	{keywords: []string{"compliance", "privacy"}, icon: "gavel"},
	{keywords: []string{"support", "help"}, icon: "support"},
	{keywords: []string{"contact"}, icon: "mail"},
	{keywords: []string{"question", "faq"}, icon: "help"},
}

// SelectIcon returns the icon name for a section heading.
// Matching is a case-insensitive substring test.
func SelectIcon(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range iconRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.icon
			}
		}
	}
	return DefaultIcon
}
