package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTagInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple list", "go, web, testing", []string{"go", "web", "testing"}},
		{"whitespace trimmed", "  go ,  web  ", []string{"go", "web"}},
		{"empty entries dropped", "go,,web,", []string{"go", "web"}},
		{"duplicates collapse keeping order", "go, web, go", []string{"go", "web"}},
		{"empty input", "", []string{}},
		{"only commas", ",,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTagInput(tt.input))
		})
	}
}

func TestReconcileTags(t *testing.T) {
	t.Run("add and remove", func(t *testing.T) {
		toAdd, toRemove := ReconcileTags([]string{"go", "web"}, []string{"web", "testing"})
		assert.Equal(t, []string{"testing"}, toAdd)
		assert.Equal(t, []string{"go"}, toRemove)
	})

	t.Run("same set is a no-op", func(t *testing.T) {
		toAdd, toRemove := ReconcileTags([]string{"go", "web"}, []string{"go", "web"})
		assert.Empty(t, toAdd)
		assert.Empty(t, toRemove)
	})

	t.Run("clear all", func(t *testing.T) {
		toAdd, toRemove := ReconcileTags([]string{"go"}, nil)
		assert.Empty(t, toAdd)
		assert.Equal(t, []string{"go"}, toRemove)
	})

	t.Run("resubmitting is idempotent", func(t *testing.T) {
		requested := []string{"a", "b"}
		toAdd, _ := ReconcileTags(nil, requested)
		toAdd2, toRemove2 := ReconcileTags(toAdd, requested)
		assert.Empty(t, toAdd2)
		assert.Empty(t, toRemove2)
	})
}
