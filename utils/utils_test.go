package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := GenerateID()
		assert.Len(t, id, 4)
		for _, r := range id {
			assert.True(t, r >= 'a' && r <= 'z', "id %q must be lower-case letters", id)
		}
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1, "ids should vary")
}

func TestParseIntWithDefault(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"5", 6, 5},
		{"", 6, 6},
		{"abc", 6, 6},
		{"0", 6, 6},
		{"-3", 6, 6},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseIntWithDefault(tc.in, tc.def), "input %q", tc.in)
	}
}
