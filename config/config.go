// Package config loads runtime settings from the environment.
package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Catalog CatalogConfig
	Company CompanyConfig
	Export  ExportConfig
}

type CatalogConfig struct {
	SheetURL      string
	StockSheetURL string
	FetchTimeout  time.Duration
}

// CompanyConfig is the identity block printed on every quotation.
type CompanyConfig struct {
	Name    string
	Address string
	Phone   string
	Email   string
	GSTIN   string
	State   string
}

type ExportConfig struct {
	Dir string
}

var (
	once     sync.Once
	instance *Config
)

// Load reads settings once, preferring environment variables (and a .env
// file if present) over the built-in defaults.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		viper.SetDefault("QD_CATALOG_SHEET_URL",
			"https://docs.google.com/spreadsheets/d/1Y5VQsIQ33UYPOe1-Ul6VV7vv79lbrHnu8aRoAgYLeho/export?format=csv")
		viper.SetDefault("QD_STOCK_SHEET_URL",
			"https://docs.google.com/spreadsheets/d/1Uef9a1MZHI9JshrkPJBeezI9HPdZ4ElI0vgknj-Bys0/export?format=csv")
		viper.SetDefault("QD_FETCH_TIMEOUT_SECONDS", 30)

		viper.SetDefault("QD_COMPANY_NAME", "ASTRIKE SPORTSWEAR PVT LTD")
		viper.SetDefault("QD_COMPANY_ADDRESS",
			"Ground Floor B-124 Shop No. 2 Pratap Garden, Uttam Nagar New Delhi")
		viper.SetDefault("QD_COMPANY_PHONE", "7838000995")
		viper.SetDefault("QD_COMPANY_EMAIL", "info@astrikesports.com")
		viper.SetDefault("QD_COMPANY_GSTIN", "07ABCCA4620J1ZV")
		viper.SetDefault("QD_COMPANY_STATE", "07-Delhi")

		viper.SetDefault("QD_EXPORT_DIR", "./exports")

		viper.AutomaticEnv()

		ensureDir(viper.GetString("QD_EXPORT_DIR"))

		instance = &Config{
			Catalog: CatalogConfig{
				SheetURL:      viper.GetString("QD_CATALOG_SHEET_URL"),
				StockSheetURL: viper.GetString("QD_STOCK_SHEET_URL"),
				FetchTimeout:  time.Duration(viper.GetInt("QD_FETCH_TIMEOUT_SECONDS")) * time.Second,
			},
			Company: CompanyConfig{
				Name:    viper.GetString("QD_COMPANY_NAME"),
				Address: viper.GetString("QD_COMPANY_ADDRESS"),
				Phone:   viper.GetString("QD_COMPANY_PHONE"),
				Email:   viper.GetString("QD_COMPANY_EMAIL"),
				GSTIN:   viper.GetString("QD_COMPANY_GSTIN"),
				State:   viper.GetString("QD_COMPANY_STATE"),
			},
			Export: ExportConfig{
				Dir: viper.GetString("QD_EXPORT_DIR"),
			},
		}
	})
	return instance
}

func ensureDir(dir string) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("config: could not create directory %s: %v", dir, err)
	}
}
