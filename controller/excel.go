package controller

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cafedir/form"
	"cafedir/model"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName       = "Sheet1"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// sheetColumns is the column order of imported and exported spreadsheets,
// paired with the form field each column feeds.
var sheetColumns = []struct{ header, field string }{
	{"name", "name"},
	{"map_url", "murl"},
	{"img_url", "iurl"},
	{"location", "location"},
	{"has_sockets", "has_socket"},
	{"has_toilet", "has_toilet"},
	{"has_wifi", "has_wifi"},
	{"can_take_calls", "take_call"},
	{"seats", "seats"},
	{"coffee_price", "coffee_price"},
}

type skippedRow struct {
	Row    int
	Reason string
}

// parseCafeSheet reads data rows (after the header) and runs each through the
// same rules as the add-café form.
func parseCafeSheet(r io.Reader, currency string) ([]model.Cafe, []skippedRow, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer xl.Close()

	sheet := sheetName
	if idx, _ := xl.GetSheetIndex(sheet); idx == -1 {
		sheets := xl.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, errors.New("spreadsheet has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, errors.New("spreadsheet must have at least one row of data")
	}

	var cafes []model.Cafe
	var skipped []skippedRow
	for i, row := range rows[1:] {
		rowNum := i + 2
		if len(row) < len(sheetColumns) {
			skipped = append(skipped, skippedRow{Row: rowNum, Reason: "incomplete row"})
			continue
		}

		values := url.Values{}
		for col, c := range sheetColumns {
			values.Set(c.field, row[col])
		}

		f, fe := form.ValidateCafe(values)
		if fe != nil {
			skipped = append(skipped, skippedRow{Row: rowNum, Reason: fe.Error()})
			continue
		}
		cafes = append(cafes, f.Cafe(currency))
	}

	return cafes, skipped, nil
}

func writeCafeSheet(w io.Writer, cafes []model.Cafe) error {
	xl := excelize.NewFile()
	defer xl.Close()

	header := make([]interface{}, len(sheetColumns))
	for i, c := range sheetColumns {
		header[i] = c.header
	}
	if err := xl.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, cafe := range cafes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			cafe.Name,
			cafe.MapURL,
			cafe.ImgURL,
			cafe.Location,
			form.ChoiceOf(cafe.HasSockets),
			form.ChoiceOf(cafe.HasToilet),
			form.ChoiceOf(cafe.HasWifi),
			form.ChoiceOf(cafe.CanTakeCalls),
			cafe.Seats,
			strings.TrimSpace(cafe.CoffeePrice),
		}
		if err := xl.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	return xl.Write(w)
}
