package ships

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	table := NewTable()

	tests := []struct {
		shipType string
		expected string
	}{
		{"sidewinder", "Sidewinder"},
		{"SideWinder", "Sidewinder"},
		{"federation_dropship_mkii", "Federal Assault Ship"},
		{"independant_trader", "Keelback"},
		{"unknown_hull", "unknown_hull"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.shipType, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.DisplayName(tt.shipType))
		})
	}
}

func TestNewTableFromCopiesInput(t *testing.T) {
	src := map[string]string{"Eagle": "Eagle Mk II"}
	table := NewTableFrom(src)
	src["eagle"] = "changed"

	assert.Equal(t, "Eagle Mk II", table.DisplayName("eagle"))
	assert.Equal(t, 1, table.Len())
}
