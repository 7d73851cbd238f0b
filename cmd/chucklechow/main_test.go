package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/chucklechow/internal/catalog"
	"github.com/hammamikhairi/chucklechow/internal/config"
	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
	"github.com/hammamikhairi/chucklechow/internal/recipeapi"
	"github.com/hammamikhairi/chucklechow/internal/viewmodel"
)

func TestNewModelSendsConfiguredPreferences(t *testing.T) {
	sent := make(chan domain.Preferences, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Preferences domain.Preferences `json:"preferences"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		sent <- body.Preferences
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title": "Midnight Tofu", "ingredients": ["tofu"], "steps": ["Fry"]}`))
	}))
	defer srv.Close()

	log := logger.Nop()
	cfg := config.Default()
	cfg.Language = viewmodel.LanguageSpanish
	cfg.Preferences = config.PreferencesConfig{Diet: "vegan", Time: "quick", Style: "cajun", Category: "dinner"}
	d := &deps{
		cfg:     cfg,
		log:     log,
		catalog: catalog.New(log),
		client:  recipeapi.NewClient(srv.URL, log),
	}

	st := d.newModel().Request(context.Background(), true)
	require.Equal(t, viewmodel.StatusLoaded, st.Status, "err: %v", st.Err)

	assert.Equal(t, domain.Preferences{
		Diet:     "vegan",
		Time:     "quick",
		Style:    "cajun",
		Category: "dinner",
		Language: viewmodel.LanguageSpanish,
	}, <-sent)
}

func TestMergePreferences(t *testing.T) {
	base := config.PreferencesConfig{Diet: "keto", Time: "slow", Style: "french"}
	flags := config.PreferencesConfig{Diet: "vegan", Category: " brunch ", Style: "  "}

	assert.Equal(t, config.PreferencesConfig{
		Diet:     "vegan",
		Time:     "slow",
		Style:    "french",
		Category: "brunch",
	}, mergePreferences(base, flags))
	assert.Equal(t, "keto", base.Diet, "base is not modified")
}
