package main

import (
	"strings"
	"testing"

	"github.com/Christosun/flotech-report-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPassword(t *testing.T) {
	pw, err := readPassword(strings.NewReader("rahasia123\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "rahasia123", pw)

	pw, err = readPassword(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)

	_, err = readPassword(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFilterUnits(t *testing.T) {
	units := []*models.StockUnit{
		{Name: "A", Category: models.CategoryStock, Status: models.StockAvailable},
		{Name: "B", Category: models.CategoryDemo, Status: models.StockOnLoan},
		{Name: "C", Category: models.CategoryDemo, Status: models.StockAvailable},
	}
	assert.Len(t, filterUnits(units, models.ParseStockFilter("all", "")), 3)

	got := filterUnits(units, models.ParseStockFilter("demo", "available"))
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].Name)

	assert.Empty(t, filterUnits(units, models.ParseStockFilter("stock", "on_loan")))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "initdb", "useradd", "render"} {
		assert.True(t, names[want], want)
	}
}
