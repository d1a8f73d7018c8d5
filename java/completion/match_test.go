package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher(t *testing.T) {
	tests := []struct {
		prefix string
		opts   Options
		name   string
		want   bool
	}{
		{"", DefaultOptions(), "anything", true},
		{"ge", DefaultOptions(), "get", true},
		{"Ge", DefaultOptions(), "get", false},
		{"Ge", Options{}, "get", true},
		{"AIOOBE", DefaultOptions(), "ArrayIndexOutOfBoundsException", true},
		{"NPE", DefaultOptions(), "NullPointerException", true},
		{"NPE", DefaultOptions(), "NumberFormatException", false},
		{"getVal", DefaultOptions(), "getValue", true},
		{"getVal", DefaultOptions(), "getDefaultValue", false},
		{"sIn", DefaultOptions(), "setIn", true},
		{"value", Options{Subword: true}, "getDefaultValue", true},
		{"value", DefaultOptions(), "getDefaultValue", false},
		{"xyz", Options{Subword: true}, "getDefaultValue", false},
	}
	for _, tc := range tests {
		m := NewMatcher(tc.prefix, tc.opts)
		assert.Equal(t, tc.want, m.Matches(tc.name), "%q against %q", tc.prefix, tc.name)
	}
}

func TestCamelCaseTakesPrecedenceOverSubword(t *testing.T) {
	m := NewMatcher("inVal", Options{Subword: true})
	assert.True(t, m.CamelCase())
	assert.True(t, m.Matches("inValue"))
	assert.False(t, m.Matches("getInitialValue"))
}

func TestCamelParts(t *testing.T) {
	assert.Equal(t, []string{"A", "I", "O", "O", "B", "E"}, camelParts("AIOOBE"))
	assert.Equal(t, []string{"get", "V", "N"}, camelParts("getVN"))
}
