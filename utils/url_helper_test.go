package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		ref      string
		expected string
	}{
		{
			name:     "root relative",
			base:     "https://www.amazon.com/s?k=",
			ref:      "/Some-Product/dp/B000000001?ref=sr_1_1",
			expected: "https://www.amazon.com/Some-Product/dp/B000000001?ref=sr_1_1",
		},
		{
			name:     "already absolute",
			base:     "https://www.ebay.com/sch/i.html?_nkw=",
			ref:      "https://www.ebay.com/itm/1234",
			expected: "https://www.ebay.com/itm/1234",
		},
		{
			name:     "protocol relative",
			base:     "https://www.ebay.com/sch/i.html?_nkw=",
			ref:      "//i.ebayimg.com/thumbs/1.jpg",
			expected: "https://i.ebayimg.com/thumbs/1.jpg",
		},
		{
			name:     "surrounding whitespace",
			base:     "https://www.amazon.com/s?k=",
			ref:      "  /dp/X  ",
			expected: "https://www.amazon.com/dp/X",
		},
		{
			name:     "empty base",
			base:     "",
			ref:      "/dp/X",
			expected: "/dp/X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AbsoluteURL(tt.base, tt.ref))
		})
	}
}
