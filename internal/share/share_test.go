package share

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
)

func eggRecipe() domain.Recipe {
	return domain.Recipe{
		Title:       "Scrambled Shenanigans",
		Ingredients: []string{"egg", "milk"},
		Steps:       []string{"Mix", "Cook"},
		Equipment:   []string{"whisk", "pan"},
	}
}

func TestClipboardText(t *testing.T) {
	got, err := Format(eggRecipe(), TargetClipboard)
	require.NoError(t, err)

	want := "Scrambled Shenanigans\n\n" +
		"Ingredients:\negg\nmilk\n\n" +
		"Steps:\n1. Mix\n2. Cook\n\n" +
		"Equipment: whisk, pan\n" +
		"Chaos Gear: None"
	assert.Equal(t, want, got)

	assert.Less(t, strings.Index(got, "egg"), strings.Index(got, "milk"))
	assert.Less(t, strings.Index(got, "1. Mix"), strings.Index(got, "2. Cook"))
}

func TestClipboardTextWithGearAndNoEquipment(t *testing.T) {
	r := eggRecipe()
	r.Equipment = nil
	r.ChaosGear = "a banjo"
	got := ClipboardText(r)
	assert.NotContains(t, got, "Equipment:")
	assert.True(t, strings.HasSuffix(got, "\n\nChaos Gear: a banjo"))
}

func TestShareTextFallsBackToSummary(t *testing.T) {
	assert.Equal(t, "Scrambled Shenanigans\nIngredients: egg, milk\nSteps: Mix; Cook", ShareText(eggRecipe()))

	r := eggRecipe()
	r.ShareText = "Eggs gone wild"
	assert.Equal(t, "Eggs gone wild", ShareText(r))
}

func TestSocialLinks(t *testing.T) {
	r := eggRecipe()
	r.ShareText = "Eggs & milk?"

	fb, err := Format(r, TargetFacebook)
	require.NoError(t, err)
	u, err := url.Parse(fb)
	require.NoError(t, err)
	assert.Equal(t, "www.facebook.com", u.Host)
	assert.Equal(t, "/sharer/sharer.php", u.Path)
	assert.Equal(t, DefaultAppURL, u.Query().Get("u"))
	assert.Equal(t, "Eggs & milk?", u.Query().Get("quote"))
	assert.NotContains(t, fb, "+", "spaces are %20")

	x, err := Formatter{AppURL: "https://chow.test/"}.Format(r, TargetX)
	require.NoError(t, err)
	u, err = url.Parse(x)
	require.NoError(t, err)
	assert.Equal(t, "x.com", u.Host)
	assert.Equal(t, "Get a load of this hogwash: Eggs & milk?\nCheck out my app: https://chow.test/ 🤠", u.Query().Get("text"))
}

func TestGenericShareIsMessage(t *testing.T) {
	got, err := Format(eggRecipe(), TargetShare)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "Get a load of this hogwash: Scrambled Shenanigans"))
}

func TestParseTarget(t *testing.T) {
	tests := map[string]Target{
		"":        TargetShare,
		"twitter": TargetX,
		"X":       TargetX,
		"fb":      TargetFacebook,
		"copy":    TargetClipboard,
	}
	for in, want := range tests {
		got, err := ParseTarget(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTarget("myspace")
	assert.Error(t, err)

	_, err = Format(eggRecipe(), Target("myspace"))
	assert.Error(t, err)
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestSharerCopies(t *testing.T) {
	clip := &fakeClipboard{}
	s := NewSharer(clip, logger.Nop())

	res, err := s.Share(context.Background(), eggRecipe(), TargetClipboard)
	require.NoError(t, err)
	assert.True(t, res.Copied)
	assert.Equal(t, ClipboardText(eggRecipe()), clip.text)
}

func TestSharerSocialDoesNotCopy(t *testing.T) {
	clip := &fakeClipboard{}
	s := NewSharer(clip, logger.Nop(), WithAppURL("https://chow.test/"))

	res, err := s.Share(context.Background(), eggRecipe(), TargetX)
	require.NoError(t, err)
	assert.False(t, res.Copied)
	assert.Contains(t, res.Text, "https://x.com/intent/tweet?text=")
	assert.Contains(t, res.Text, url.QueryEscape("https://chow.test/"))
	assert.Empty(t, clip.text)
}

func TestSharerFallsBackToText(t *testing.T) {
	tests := []struct {
		name string
		clip domain.Clipboard
	}{
		{"no clipboard", nil},
		{"clipboard unsupported", &fakeClipboard{err: domain.ErrShareUnavailable}},
		{"clipboard broken", &fakeClipboard{err: errors.New("xclip exited 1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSharer(tt.clip, logger.Nop())
			_, err := s.Share(context.Background(), eggRecipe(), TargetShare)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrShareUnavailable)

			var fb *domain.ShareFallbackError
			require.ErrorAs(t, err, &fb)
			want, _ := Format(eggRecipe(), TargetShare)
			assert.Equal(t, want, fb.Text)
		})
	}
}

func TestSystemClipboard(t *testing.T) {
	var got string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error { got = text; return nil }
	defer func() { clipboardWriteAll = orig }()

	err := SystemClipboard{}.WriteText(context.Background(), "hello")
	if clipboard.Unsupported {
		assert.ErrorIs(t, err, domain.ErrShareUnavailable)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestExportXLSX(t *testing.T) {
	favs := []domain.Favorite{
		{Recipe: eggRecipe(), ID: 1700000000000, Rating: 4},
		{Recipe: domain.Recipe{Title: "Bare Bones", Ingredients: []string{}, Steps: []string{}}, ID: 1700000000001},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(favs, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "title", rows[0][1])
	assert.Equal(t, "1700000000000", rows[1][0])
	assert.Equal(t, "Scrambled Shenanigans", rows[1][1])
	assert.Equal(t, "4", rows[1][2])
	assert.Equal(t, "egg\nmilk", rows[1][5])
	assert.Equal(t, "Bare Bones", rows[2][1])
}
