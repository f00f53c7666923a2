package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurveyDriverHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := NewSurveyDriver()

	_, err := driver.Input(ctx, InputConfig{Message: "Publication id"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = driver.MultiSelect(ctx, SelectConfig{Message: "Sections", Options: []string{"settings"}})
	assert.ErrorIs(t, err, context.Canceled)

	assert.ErrorIs(t, driver.Info(ctx, "done"), context.Canceled)
}

func TestSelectionHelpers(t *testing.T) {
	options := []string{"settings", "hero", "faq"}

	assert.Equal(t, 2, indexOf(options, "faq"))
	assert.Equal(t, -1, indexOf(options, "team"))
	assert.Equal(t, []int{0, 2}, indicesOf(options, []string{"faq", "settings"}))
	assert.Equal(t, []string{"hero"}, defaultsFromIndices(options, []int{1, 7, -1}))
}
