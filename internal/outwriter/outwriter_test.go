package outwriter

import (
	"testing"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/stretchr/testify/assert"
)

func TestGetMaxTableValueWidth(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		fixedWidth int
		expected   int
	}{
		{name: "wide terminal is capped", width: 300, fixedWidth: 20, expected: 90},
		{name: "narrow terminal has a floor", width: 30, fixedWidth: 20, expected: 15},
		{name: "room left after fixed columns", width: 100, fixedWidth: 45, expected: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, getMaxTableValueWidth(cfg, tt.fixedWidth))
		})
	}
}

func TestGetMaxTableValueWidth_AutoDetect(t *testing.T) {
	width := getMaxTableValueWidth(&contract.Config{}, 20)
	assert.GreaterOrEqual(t, width, 15)
	assert.LessOrEqual(t, width, 90)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, contract.UpdateValue, countLabel(3, false))
	assert.Equal(t, contract.CurrentValue, countLabel(0, false))
	assert.Equal(t, contract.TrackedValue, vcsLabel(true, false))
	assert.Equal(t, contract.PlainValue, vcsLabel(false, false))
	assert.Contains(t, countLabel(3, true), contract.UpdateValue)
	assert.Contains(t, vcsLabel(true, true), contract.TrackedValue)
}
