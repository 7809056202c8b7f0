package mail_fx

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/fx"
	"tastepalette/internal/config"
	"tastepalette/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config) (services.IMailService, error) {
	brand := services.Branding{
		AppName:    cfg.AppName,
		AppBaseURL: cfg.AppBaseURL,
	}

	switch cfg.MailProvider {
	case "ses":
		client, err := services.NewSESClient(context.Background(), cfg.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		log.Printf("Sending mail through SES (%s)", cfg.AWSRegion)
		return services.NewSESMailService(client, cfg.MailFrom, brand), nil
	case "smtp", "":
		if cfg.SMTPPassword == "" {
			log.Println("SMTP_PASSWORD is not set; mail delivery will likely fail")
		}
		return services.NewSMTPMailService(services.SMTPConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SMTPUsername,
			Password:   cfg.SMTPPassword,
			From:       cfg.MailFrom,
			FromName:   cfg.MailFromName,
			UseSSL:     cfg.SMTPUseSSL,
			RequireTLS: !cfg.SMTPUseSSL,
			Branding:   brand,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported MAIL_PROVIDER %q", cfg.MailProvider)
	}
}
