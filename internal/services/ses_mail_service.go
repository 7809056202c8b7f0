package services

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESSender is the slice of the SES client the mailer uses.
type SESSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailService struct {
	client   SESSender
	source   string
	composer *mailComposer
}

func NewSESMailService(client SESSender, source string, brand Branding) IMailService {
	return &sesMailService{
		client:   client,
		source:   source,
		composer: newMailComposer(brand),
	}
}

// NewSESClient loads AWS credentials from the default chain.
func NewSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("AWS config load failed: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

func (s *sesMailService) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	msg, err := s.composer.verification(to, name, token)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *sesMailService) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	msg, err := s.composer.passwordReset(to, token)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *sesMailService) SendMarketingEmail(ctx context.Context, to, name string) error {
	msg, err := s.composer.marketing(to, name)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *sesMailService) send(ctx context.Context, msg EmailMessage) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(msg.HTMLBody),
					Charset: aws.String("UTF-8"),
				},
				Text: &types.Content{
					Data:    aws.String(msg.TextBody),
					Charset: aws.String("UTF-8"),
				},
			},
		},
		Source: aws.String(s.source),
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}
