package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightToggle(t *testing.T) {
	tests := []struct {
		name    string
		current []int
		targets []int
		want    []int
	}{
		{name: "partially on turns all on", current: []int{1, 2}, targets: []int{1, 2, 3}, want: []int{1, 2, 3}},
		{name: "all on turns all off", current: []int{1, 2, 3}, targets: []int{1, 2, 3}, want: []int{}},
		{name: "untouched rows stay", current: []int{1, 2, 3, 8}, targets: []int{2, 3}, want: []int{1, 8}},
		{name: "none on", current: nil, targets: []int{4, 2}, want: []int{2, 4}},
		{name: "empty targets", current: []int{5}, targets: nil, want: []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := NewHighlightSet(tt.current...)
			got := before.Toggle(tt.targets)
			assert.Equal(t, tt.want, got.Entries())
			assert.Equal(t, len(tt.current), before.Len(), "toggle must not mutate the receiver")
		})
	}
}

func TestHighlightZeroValue(t *testing.T) {
	var h HighlightSet
	assert.False(t, h.Includes(0))
	assert.Equal(t, 0, h.Len())
	h = h.Toggle([]int{7})
	assert.True(t, h.Includes(7))
}
