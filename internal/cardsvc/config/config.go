package config

import (
	"os"

	configs "github.com/eventx/namecard-services/configs"
)

type Config struct {
	SpreadsheetID       string
	ServiceAccountEmail string
	PrivateKey          string // PEM, newlines restored from the env encoding
	UserTable           string
	SalesTable          string
}

func Load() Config {
	return Config{
		SpreadsheetID:       os.Getenv("GOOGLE_SHEET_ID"),
		ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		PrivateKey:          configs.UnescapeKey(os.Getenv("GOOGLE_PRIVATE_KEY")),
		UserTable:           "User_Cards",
		SalesTable:          "Internal_Sales",
	}
}
