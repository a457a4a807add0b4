package config

import (
	"os"

	"github.com/joho/godotenv"
)

// ApplyEnv loads a .env file from the working directory if there is one
// and lets TRADERATER_* variables override the loaded values. Variables
// already set in the environment win over the .env file.
func (c *Config) ApplyEnv(files ...string) {
	_ = godotenv.Load(files...)

	setStr(&c.Journal.Type, "TRADERATER_JOURNAL")
	setStr(&c.Scoring.Policy, "TRADERATER_POLICY")
	setStr(&c.Journal.CSVPath, "TRADERATER_CSV_PATH")
	setStr(&c.Journal.DBPath, "TRADERATER_DB_PATH")
	setStr(&c.Journal.PostgresDSN, "TRADERATER_POSTGRES_DSN")
	setStr(&c.Journal.Sheets.Token, "TRADERATER_SHEETS_TOKEN")
	setStr(&c.Journal.Sheets.SpreadsheetID, "TRADERATER_SHEETS_ID")
	setStr(&c.Journal.Sheets.Sheet, "TRADERATER_SHEETS_SHEET")
	setStr(&c.Log.Level, "TRADERATER_LOG_LEVEL")
	setStr(&c.Log.File, "TRADERATER_LOG_FILE")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
