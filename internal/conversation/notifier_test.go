package conversation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/chucklechow/internal/logger"
)

func TestCLINotifier(t *testing.T) {
	var lines []string
	n := NewCLINotifier(logger.Nop(), func(format string, a ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, a...))
	})

	require.NoError(t, n.Notify(context.Background(), "Recipe saved to favorites!"))
	require.NoError(t, n.NotifyUrgent(context.Background(), "Recipe already in favorites!"))

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Recipe saved to favorites!")
	assert.Contains(t, lines[1], "Recipe already in favorites!")
}
