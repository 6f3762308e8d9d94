package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Store      Store   `yaml:"store"`
	Company    Company `yaml:"company"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN" env-default:"admin"`
	// Hex sha256 digest of the admin password, never the password itself.
	AdminPasswordSHA256 string `yaml:"admin_password_sha256" env:"ADMIN_PASSWORD_SHA256" env-required:"true"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env-default:"localhost:4001"`
	Timeout        time.Duration `yaml:"timeout"  env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"  env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"http://localhost:5173"`
}

// Store selects and parameterizes the table backend. The repository itself
// does not care which one is behind it.
type Store struct {
	Backend      string        `yaml:"backend" env-default:"excel"` // excel, csv or mysql
	Table        string        `yaml:"table" env-default:"Orders"`
	WorkbookPath string        `yaml:"workbook_path" env-default:"./data/orders.xlsx"`
	CSVDir       string        `yaml:"csv_dir" env-default:"./data"`
	DSN          string        `yaml:"dsn" env:"STORE_DSN"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"20s"`
}

// Company is the profile printed on receipts; editable at runtime, these are
// just the startup values.
type Company struct {
	Name    string `yaml:"name" env-default:"Print Service Pro SRL"`
	Address string `yaml:"address" env-default:"Str. Industriei Nr. 45, Cluj-Napoca"`
	CUI     string `yaml:"cui" env-default:"RO98765432"`
	RegCom  string `yaml:"reg_com" env-default:"J12/5678/2024"`
	Phone   string `yaml:"phone" env-default:"+40 364 123 456"`
	Email   string `yaml:"email" env-default:"service@printservicepro.ro"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config %s: %s", configPath, err)
	}

	return &cfg
}
