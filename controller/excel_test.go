package controller

import (
	"bytes"
	"testing"

	"cafedir/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	xl := excelize.NewFile()
	defer xl.Close()

	if sheet != "Sheet1" {
		require.NoError(t, xl.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, xl.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, xl.Write(&buf))
	return &buf
}

var sheetHeader = []interface{}{
	"name", "map_url", "img_url", "location", "has_sockets",
	"has_toilet", "has_wifi", "can_take_calls", "seats", "coffee_price",
}

func TestParseCafeSheet(t *testing.T) {
	buf := buildSheet(t, "Sheet1", [][]interface{}{
		sheetHeader,
		{"Alpha", "https://m/a", "https://i/a", "London", "1", "1", "0", "0", "10-20", "2.50"},
		{"", "https://m/b", "https://i/b", "London", "1", "1", "0", "0", "10-20", "2.50"},
		{"Gamma", "https://m/c", "https://i/c", "Bath", "2", "1", "0", "0", "5", "1.00"},
		{"Delta"},
	})

	cafes, skipped, err := parseCafeSheet(buf, "£")
	require.NoError(t, err)

	require.Len(t, cafes, 1)
	assert.Equal(t, "Alpha", cafes[0].Name)
	assert.True(t, cafes[0].HasSockets)
	assert.False(t, cafes[0].HasWifi)
	assert.Equal(t, "£2.50", cafes[0].CoffeePrice)

	require.Len(t, skipped, 3)
	assert.Equal(t, 3, skipped[0].Row)
	assert.Equal(t, 4, skipped[1].Row)
	assert.Equal(t, 5, skipped[2].Row)
	assert.Equal(t, "incomplete row", skipped[2].Reason)
}

func TestParseCafeSheet_FallsBackToFirstSheet(t *testing.T) {
	buf := buildSheet(t, "Cafes", [][]interface{}{
		sheetHeader,
		{"Alpha", "https://m/a", "https://i/a", "London", "0", "0", "1", "1", "10", "£4.00"},
	})

	cafes, skipped, err := parseCafeSheet(buf, "£")
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, cafes, 1)
	assert.Equal(t, "£4.00", cafes[0].CoffeePrice)
	assert.True(t, cafes[0].CanTakeCalls)
}

func TestParseCafeSheet_HeaderOnly(t *testing.T) {
	buf := buildSheet(t, "Sheet1", [][]interface{}{sheetHeader})

	_, _, err := parseCafeSheet(buf, "£")
	assert.Error(t, err)
}

func TestWriteCafeSheet_RoundTrip(t *testing.T) {
	in := []model.Cafe{
		{
			Name: "Alpha", MapURL: "https://m/a", ImgURL: "https://i/a", Location: "London",
			HasSockets: true, HasToilet: false, HasWifi: true, CanTakeCalls: false,
			Seats: "10-20", CoffeePrice: "£2.50",
		},
		{
			Name: "Beta", MapURL: "https://m/b", ImgURL: "https://i/b", Location: "Leeds",
			HasSockets: false, HasToilet: true, HasWifi: false, CanTakeCalls: true,
			Seats: "50+", CoffeePrice: "£3.00",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCafeSheet(&buf, in))

	out, skipped, err := parseCafeSheet(&buf, "£")
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].Name, out[i].Name)
		assert.Equal(t, in[i].Location, out[i].Location)
		assert.Equal(t, in[i].HasSockets, out[i].HasSockets)
		assert.Equal(t, in[i].HasToilet, out[i].HasToilet)
		assert.Equal(t, in[i].HasWifi, out[i].HasWifi)
		assert.Equal(t, in[i].CanTakeCalls, out[i].CanTakeCalls)
		assert.Equal(t, in[i].Seats, out[i].Seats)
		assert.Equal(t, in[i].CoffeePrice, out[i].CoffeePrice)
	}
}
