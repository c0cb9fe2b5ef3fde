package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitCodeGenerator(t *testing.T) {
	tests := []struct {
		length int
		re     *regexp.Regexp
	}{
		{length: 6, re: regexp.MustCompile(`^\d{6}$`)},
		{length: 8, re: regexp.MustCompile(`^\d{8}$`)},
		{length: 0, re: regexp.MustCompile(`^\d{6}$`)},
	}

	for _, tt := range tests {
		g := NewDigitCodeGenerator(tt.length)
		seen := map[string]struct{}{}
		for i := 0; i < 200; i++ {
			code, err := g.Generate()
			require.NoError(t, err)
			assert.Regexp(t, tt.re, code)
			seen[code] = struct{}{}
		}
		assert.Greater(t, len(seen), 150)
	}
}
