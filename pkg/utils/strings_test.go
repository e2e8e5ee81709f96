package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Men's T-Shirt!", "mens-t-shirt"},
		{"Summer Tee 2.0", "summer-tee-20"},
		{"  Spaced   Out  ", "spaced-out"},
		{"---", ""},
		{"Already-Slugged", "already-slugged"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.in), "input %q", tc.in)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, ParseInt("42", 0))
	assert.Equal(t, 7, ParseInt("", 7))
	assert.Equal(t, 7, ParseInt("abc", 7))
	assert.Equal(t, -3, ParseInt("-3", 0))
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 19.99, ParseFloat("19.99", 0))
	assert.Equal(t, 1.5, ParseFloat("", 1.5))
	assert.Equal(t, 1.5, ParseFloat("abc", 1.5))
}
