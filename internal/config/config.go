package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBPort                string
	AppPort               string
	AppEnv                string
	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:                os.Getenv("DB_HOST"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBPort:                os.Getenv("DB_PORT"),
		AppPort:               os.Getenv("APP_PORT"),
		AppEnv:                os.Getenv("APP_ENV"),
		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	// Missing payment credentials disable the checkout path but must not
	// take the rest of the app down with them.
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Println("WARN: Razorpay key pair not set, payment operations disabled")
	}
	if cfg.RazorpayWebhookSecret == "" {
		log.Println("WARN: Razorpay webhook secret not set, webhook verification disabled")
	}

	return cfg
}
