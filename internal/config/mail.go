package config

import (
	"os"
	"strconv"
	"sync"
)

type MailConfig struct {
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	FromDomain  string
	DefaultFrom string
}

var (
	mailConfig *MailConfig
	mailOnce   sync.Once
)

func LoadMailConfig() *MailConfig {
	mailOnce.Do(func() {
		port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if err != nil || port == 0 {
			port = 587
		}
		domain := os.Getenv("MAIL_FROM_DOMAIN")
		if domain == "" {
			domain = "internoutreach.io"
		}
		mailConfig = &MailConfig{
			SMTPHost:    os.Getenv("SMTP_HOST"),
			SMTPPort:    port,
			SMTPUser:    os.Getenv("SMTP_USER"),
			SMTPPass:    os.Getenv("SMTP_PASSWORD"),
			FromDomain:  domain,
			DefaultFrom: os.Getenv("MAIL_DEFAULT_FROM"),
		}
	})
	return mailConfig
}
