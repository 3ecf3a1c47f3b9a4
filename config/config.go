package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug               bool   `envconfig:"debug"`
	Port                int    `envconfig:"port" default:"8080"`
	Env                 string `envconfig:"env"`
	BaseUrl             string `envconfig:"base_url"`
	PostgresHost        string `envconfig:"postgres_host"`
	PostgresUser        string `envconfig:"postgres_user"`
	PostgresDB          string `envconfig:"postgres_db"`
	PostgresPort        int    `envconfig:"postgres_port"`
	PostgresPassword    string `envconfig:"postgres_password"`
	JWTSecret           string `envconfig:"jwt_secret"`
	MailgunApiKey       string `envconfig:"mg_api_key"`
	MgDomain            string `envconfig:"mg_domain"`
	MgEmailFrom         string `envconfig:"email_from"`
	AwsRegion           string `envconfig:"aws_region"`
	AwsAccessKeyID      string `envconfig:"aws_access_key_id"`
	AwsSecretKey        string `envconfig:"aws_secret_access_key"`
	MediaBucket         string `envconfig:"media_bucket"`
	MediaBucketIsPublic bool   `envconfig:"media_bucket_is_public"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("terangamart", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
