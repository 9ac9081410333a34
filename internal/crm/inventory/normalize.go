package inventory

import (
	"fmt"
	"regexp"
	"strings"
)

var dimensionNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// NormalizeOrderWeek trims and uppercases an order week ("s12" -> "S12").
// Blank input becomes nil.
func NormalizeOrderWeek(value *string) *string {
	if value == nil {
		return nil
	}
	stripped := strings.TrimSpace(*value)
	if stripped == "" {
		return nil
	}
	upper := strings.ToUpper(stripped)
	return &upper
}

// NormalizeFilterDimensions reduces free-text dimensions to a canonical
// "A x B x C" form by extracting the leading numbers. Filters sewn on wire
// (cousus_sur_fil) only have two dimensions. When not enough numbers are
// found, the trimmed input is kept as-is.
func NormalizeFilterDimensions(dimensions *string, filterType string) *string {
	if dimensions == nil || *dimensions == "" {
		return nil
	}

	numbers := dimensionNumber.FindAllString(*dimensions, -1)
	if filterType == FilterTypeCousuSurFil {
		if len(numbers) >= 2 {
			normalized := fmt.Sprintf("%s x %s", numbers[0], numbers[1])
			return &normalized
		}
	} else if len(numbers) >= 3 {
		normalized := fmt.Sprintf("%s x %s x %s", numbers[0], numbers[1], numbers[2])
		return &normalized
	}

	trimmed := strings.TrimSpace(*dimensions)
	return &trimmed
}
