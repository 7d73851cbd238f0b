package share

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hammamikhairi/chucklechow/internal/domain"
)

// ExportSheet is the worksheet holding exported favorites.
const ExportSheet = "Favorites"

var exportHeader = []interface{}{
	"id", "title", "rating", "calories", "chaos_factor",
	"ingredients", "steps", "equipment", "chaos_gear", "share_text",
}

// ExportXLSX writes favorites as a spreadsheet, one row per favorite
// after a header row. Lists are joined one item per line.
func ExportXLSX(favorites []domain.Favorite, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	sw, err := f.NewStreamWriter(ExportSheet)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := sw.SetRow("A1", exportHeader); err != nil {
		return fmt.Errorf("export header: %w", err)
	}
	for i, fav := range favorites {
		row := []interface{}{
			strconv.FormatInt(fav.ID, 10), fav.Title, fav.Rating, fav.Nutrition.Calories, fav.Nutrition.ChaosFactor,
			strings.Join(fav.Ingredients, "\n"),
			strings.Join(fav.Steps, "\n"),
			strings.Join(fav.Equipment, "\n"),
			fav.ChaosGear,
			ShareText(fav.Recipe),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // A2, A3, ...
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("export row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
