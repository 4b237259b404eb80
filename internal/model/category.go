package model

import (
	"encoding/json"
	"fmt"
)

// CategoryOption is one row of the vendor-category lookup table.
type CategoryOption struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// UnmarshalJSON accepts numeric or textual category values.
func (c *CategoryOption) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value any    `json:"value"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode category: %w", err)
	}
	c.Value = MustKey(raw.Value)
	c.Name = raw.Name
	return nil
}

// CategoryNames maps category codes to display names.
type CategoryNames map[string]string

// NewCategoryNames indexes a category table by canonical code.
func NewCategoryNames(options []CategoryOption) CategoryNames {
	names := make(CategoryNames, len(options))
	for _, opt := range options {
		if opt.Value == "" {
			continue
		}
		if _, exists := names[opt.Value]; !exists {
			names[opt.Value] = opt.Name
		}
	}
	return names
}

// Name returns the display name for code, or the code itself when unknown.
func (n CategoryNames) Name(code string) string {
	key, ok := CanonicalKey(code)
	if !ok {
		return code
	}
	if name, ok := n[key]; ok {
		return name
	}
	return code
}

// DecodeCategories decodes a JSON array of category options.
func DecodeCategories(data []byte) ([]CategoryOption, error) {
	var options []CategoryOption
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return options, nil
}
