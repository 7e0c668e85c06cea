package config

import (
	"fmt"

	"github.com/jinzhu/configor"
)

type Config struct {
	AppConfig   AppConfig   `env:"APPCONFIG"`
	DBConfig    DBConfig    `env:"DBCONFIG"`
	ShareConfig ShareConfig `env:"SHARECONFIG"`
}

type AppConfig struct {
	APPName string `default:"profile-book"`
	Version string `default:"x.x.x" env:"VERSION"`
	Port    int    `default:"8080" env:"APP_PORT"`
}

type DBConfig struct {
	Host     string `default:"localhost" env:"DBHOST"`
	DataBase string `default:"profile" env:"DBNAME"`
	User     string `default:"postgres" env:"DBUSERNAME"`
	Password string `required:"true" env:"DBPASSWORD" default:"mysecretpassword"`
	Port     uint   `default:"5432" env:"DBPORT"`
	SSLMode  string `default:"disable" env:"DBSSL"`
}

type ShareConfig struct {
	// BaseURL is prepended to the hash fragment of share links, e.g.
	// https://profile-card.example.jp/#/share/<cardId>
	BaseURL string `default:"https://profile-card.local/" env:"SHARE_BASE_URL"`
}

// DSN returns the gorm/pgx connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.DataBase, c.Port, c.SSLMode)
}

// URL returns the postgres:// form used by golang-migrate.
func (c DBConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DataBase, c.SSLMode)
}

func LoadConfigOrPanic() Config {
	var config = Config{}
	configor.Load(&config, "config/config.dev.json")

	return config
}
