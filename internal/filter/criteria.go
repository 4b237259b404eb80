package filter

import (
	"fmt"
	"strings"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// ParseCriteria builds a facet selection from user input such as flags or
// query parameters. Values may be repeated or comma-separated. from and to
// must be given together and may not be inverted.
func ParseCriteria(categories, locations, suppliers []string, from, to string) (model.FilterCriteria, error) {
	criteria := model.FilterCriteria{
		Categories: splitValues(categories),
		Locations:  splitValues(locations),
		Suppliers:  splitValues(suppliers),
	}

	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return criteria, nil
	}
	if from == "" || to == "" {
		return model.FilterCriteria{}, fmt.Errorf("%w: a date range needs both from and to", common.ErrInvalidConfig)
	}

	start, ok := ParseDate(from)
	if !ok {
		return model.FilterCriteria{}, fmt.Errorf("%w: invalid from date %q", common.ErrInvalidConfig, from)
	}
	end, ok := ParseDate(to)
	if !ok {
		return model.FilterCriteria{}, fmt.Errorf("%w: invalid to date %q", common.ErrInvalidConfig, to)
	}
	if end.Before(start) {
		return model.FilterCriteria{}, fmt.Errorf("%w: date range ends before it starts", common.ErrInvalidConfig)
	}

	criteria.DateRange = &model.DateRange{Start: start, End: end}
	return criteria, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
