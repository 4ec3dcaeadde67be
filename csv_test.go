package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sites.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRows(t *testing.T) {
	path := writeTempCSV(t, "groupname;site_country;site_name;site_id;park_id;technology\n"+
		"EU-Sites;France;Paris1;P001;PK9;5G\n"+
		"NA-Sites;Canada;Toronto2;T002;PK3;4G\n")

	rows, err := LoadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{
		GroupName:   "EU-Sites",
		SiteCountry: "France",
		SiteName:    "Paris1",
		SiteID:      "P001",
		ParkID:      "PK9",
		Technology:  "5G",
	}, rows[0])
	assert.Equal(t, "NA-Sites", rows[1].GroupName)
}

func TestLoadRowsStripsByteOrderMark(t *testing.T) {
	path := writeTempCSV(t, "\xEF\xBB\xBFgroupname;site_country;site_name;site_id;park_id;technology\n"+
		"EU-Sites;France;Paris1;P001;PK9;5G\n")

	rows, err := LoadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "EU-Sites", rows[0].GroupName)
}

func TestLoadRowsIgnoresExtraColumns(t *testing.T) {
	path := writeTempCSV(t, "groupname;site_country;site_name;site_id;park_id;technology;comment\n"+
		"EU-Sites;France;Paris1;P001;PK9;5G;decommissioning 2027\n")

	rows, err := LoadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "5G", rows[0].Technology)
}

func TestLoadRowsMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "groupname;site_country;site_name;site_id;park_id\n"+
		"EU-Sites;France;Paris1;P001;PK9\n")

	_, err := LoadRows(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "technology")
}

func TestLoadRowsMissingFile(t *testing.T) {
	_, err := LoadRows(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadRowsEmptyBody(t *testing.T) {
	path := writeTempCSV(t, "groupname;site_country;site_name;site_id;park_id;technology\n")

	rows, err := LoadRows(path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
