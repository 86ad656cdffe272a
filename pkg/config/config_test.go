package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SheetsConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("SHEETS_SPREADSHEET_ID", "1abcDEF")
	os.Setenv("SHEETS_CREDENTIALS_PATH", "/etc/creds.json")
	defer func() {
		os.Unsetenv("SHEETS_SPREADSHEET_ID")
		os.Unsetenv("SHEETS_CREDENTIALS_PATH")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify Sheets config
	assert.Equal(t, "1abcDEF", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "/etc/creds.json", cfg.Sheets.CredentialsPath)
	assert.Equal(t, BackendSpreadsheet, cfg.Directory.Backend)
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DIRECTORY_BACKEND", BackendPostgres)
	defer os.Unsetenv("DIRECTORY_BACKEND")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "hospital_directory", cfg.Database.Database)
	assert.Equal(t, 50.0, cfg.Search.DefaultRadiusKm)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_SpreadsheetBackendRequiresSpreadsheetID(t *testing.T) {
	os.Unsetenv("SHEETS_SPREADSHEET_ID")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnknownBackend(t *testing.T) {
	os.Setenv("DIRECTORY_BACKEND", "dynamo")
	defer os.Unsetenv("DIRECTORY_BACKEND")

	_, err := Load()
	assert.Error(t, err)
}
