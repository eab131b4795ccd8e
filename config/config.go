package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// CompletionPolicy decides what happens to reserved beds when a confirmed
// booking is completed.
type CompletionPolicy string

const (
	// ReleaseOnComplete frees the beds as soon as the booking completes.
	ReleaseOnComplete CompletionPolicy = "release-on-complete"
	// NoAutoRelease keeps the beds occupied until an explicit later action.
	NoAutoRelease CompletionPolicy = "no-auto-release"
)

type Config struct {
	ServiceName string
	Port        string

	MongoURI      string
	MongoDatabase string

	JaegerAddress string

	RedisHost string
	RedisPort string

	SecretKey string

	EmailFrom string
	SMTPHost  string
	SMTPPass  string
	SMTPPort  int
	SMTPUser  string

	GeocoderBaseURL string

	CompletionPolicy CompletionPolicy
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("no .env file found, relying on environment")
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}

	policy := CompletionPolicy(os.Getenv("COMPLETION_POLICY"))
	if policy != NoAutoRelease {
		policy = ReleaseOnComplete
	}

	database := os.Getenv("MONGO_DB_NAME")
	if database == "" {
		database = "ScholarsNest"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		ServiceName:      "housing-service",
		Port:             port,
		MongoURI:         os.Getenv("MONGO_DB_URI"),
		MongoDatabase:    database,
		JaegerAddress:    os.Getenv("JAEGER_ADDRESS"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        os.Getenv("REDIS_PORT"),
		SecretKey:        os.Getenv("SECRET_KEY"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		SMTPPort:         smtpPort,
		SMTPUser:         os.Getenv("SMTP_USER"),
		GeocoderBaseURL:  os.Getenv("GEOCODER_BASE_URL"),
		CompletionPolicy: policy,
	}
}
