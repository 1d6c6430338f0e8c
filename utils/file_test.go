package utils

import (
	"testing"

	"gotest.tools/assert"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Acme Tools":        "acme_tools",
		"Summer Sale!":      "summer_sale_",
		"Price List (2026)": "price_list__2026_",
		"plain":             "plain",
		"":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in))
	}
}
