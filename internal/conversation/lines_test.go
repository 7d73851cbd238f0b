package conversation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/chucklechow/internal/domain"
)

func TestLineFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no selection", domain.ErrNoSelection, "Pick somethin’, ya lazy bum! 😛"},
		{"server message", &domain.ServerError{Status: 500, Message: "Kitchen's on fire"}, "💥 Dang it! Kitchen's on fire 🤦‍♂️"},
		{"server without message", &domain.ServerError{Status: 502}, "💥 Dang it! server error 502: Bad Gateway 🤦‍♂️"},
		{"network", fmt.Errorf("generate: %w", &domain.NetworkError{Op: "generate", Err: errors.New("connection refused")}), "💥 Dang it! couldn't reach the kitchen (connection refused) 🤦‍♂️"},
		{"malformed", &domain.MalformedResponseError{Reason: "missing title"}, "💥 Dang it! the kitchen sent back gibberish 🤦‍♂️"},
		{"other", errors.New("boom"), "💥 Dang it! boom 🤦‍♂️"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineFailed(tt.err))
		})
	}
}

func TestLocalisedLines(t *testing.T) {
	assert.Equal(t, "Recipe saved to favorites!", LineSaved("english"))
	assert.Equal(t, "¡Receta guardada en favoritos!", LineSaved("spanish"))
	assert.Equal(t, "Recipe already in favorites!", LineAlreadySaved(""))
	assert.Equal(t, "Recipe removed from favorites", LineRemoved("english"))
	assert.Equal(t, "Receta eliminada de favoritos", LineRemoved("spanish"))
	assert.Contains(t, LineConfirmRemove("english", "Toast"), "Are you sure you want to remove this recipe?")
	assert.Contains(t, LineConfirmRemove("spanish", "Toast"), "¿Seguro que quieres eliminar esta receta?")
}

func TestLineUnknownCategoryListsCategories(t *testing.T) {
	line := LineUnknownCategory("candy")
	for _, c := range domain.Categories {
		assert.Contains(t, line, c.String())
	}
}

func TestLineBadFavoriteNumber(t *testing.T) {
	assert.Equal(t, "No favorites yet.", LineBadFavoriteNumber("3", 0))
	assert.Contains(t, LineBadFavoriteNumber("9", 2), "1-2")
}

func TestLineShareFallback(t *testing.T) {
	assert.Equal(t, "Sharing not supported. Copy this: Toast", LineShareFallback("Toast"))
}
