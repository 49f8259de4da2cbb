package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// CreditPerView is the amount credited to a video owner for each admitted
// view, in currency units.
func CreditPerView() float64 {
	return floatConfig("CREDIT_PER_VIEW", 0.0008)
}

// MinWithdrawal is the smallest amount a user may request for payout.
func MinWithdrawal() float64 {
	return floatConfig("MIN_WITHDRAWAL", 10.0)
}

// RollupSchedule is the cron expression for the daily view rollup.
func RollupSchedule() string {
	if v := Config("ROLLUP_SCHEDULE"); v != "" {
		return v
	}
	return "0 7 * * *"
}

// RollupTimezone is the IANA timezone the rollup schedule is evaluated in.
func RollupTimezone() string {
	if v := Config("ROLLUP_TIMEZONE"); v != "" {
		return v
	}
	return "Asia/Jakarta"
}

func floatConfig(key string, fallback float64) float64 {
	v := Config(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return f
}
