package grant

import (
	"strings"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// classificationRule routes identifiers containing marker to format.
type classificationRule struct {
	marker string
	format domain.FormatTag
}

// classificationRules are checked in order; the first match wins.
var classificationRules = []classificationRule{
	{marker: "AWS", format: domain.FormatStructured},
	{marker: "BRL", format: domain.FormatCatalyst},
	{marker: "AI for Economic", format: domain.FormatEmpowerment},
}

// Classify selects the format of a document from its identifier.
// Matching is case-sensitive. Identifiers matching no rule are General.
func Classify(id string) domain.FormatTag {
	for _, rule := range classificationRules {
		if strings.Contains(id, rule.marker) {
			return rule.format
		}
	}
	return domain.FormatGeneral
}
