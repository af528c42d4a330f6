package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

type Config struct {
	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
	Port      int           `env:"PORT" envDefault:"8080"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv    string        `env:"APP_ENV" envDefault:"production"`

	// ProductName prefixes export filenames.
	ProductName string `env:"PRODUCT_NAME" envDefault:"zeus"`

	// Demo verification codes are fixed per deployment; a production variant
	// would generate and deliver per-session one-time codes with expiry.
	EmailVerificationCode string        `env:"EMAIL_VERIFICATION_CODE" envDefault:"123456"`
	PhoneVerificationCode string        `env:"PHONE_VERIFICATION_CODE" envDefault:"789012"`
	FaceScanDuration      time.Duration `env:"FACE_SCAN_DURATION" envDefault:"3s"`

	OpeningBalance decimal.Decimal `env:"OPENING_BALANCE" envDefault:"5420.50"`
	MinDeposit     decimal.Decimal `env:"MIN_DEPOSIT" envDefault:"1.00"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}
