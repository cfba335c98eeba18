package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"
)

const charsetUTF8 = "UTF-8"

// SESSender delivers through Amazon SES v2.
type SESSender struct {
	client  *sesv2.Client
	from    string
	replyTo string
}

// NewSESSender loads AWS configuration for cfg.AWSRegion. Static keys are used
// when both are set, otherwise the default credential chain applies.
func NewSESSender(ctx context.Context, cfg Config, hc *http.Client) (*SESSender, error) {
	if cfg.AWSRegion == "" {
		return nil, fmt.Errorf("%w: AWS_REGION is required", ErrInvalidConfig)
	}
	if err := validateFrom(cfg.From); err != nil {
		return nil, err
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	if hc != nil {
		loadOpts = append(loadOpts, awsconfig.WithHTTPClient(hc))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &SESSender{client: sesv2.NewFromConfig(awsCfg), from: cfg.From, replyTo: cfg.ReplyTo}, nil
}

func (s *SESSender) Provider() string { return ProviderSES }

func (s *SESSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(charsetUTF8)},
				},
			},
		},
	}
	if s.replyTo != "" {
		input.ReplyToAddresses = []string{s.replyTo}
	}
	if msg.Tag != "" {
		input.EmailTags = []types.MessageTag{{Name: aws.String("category"), Value: aws.String(msg.Tag)}}
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", &ProviderError{Provider: ProviderSES, Err: fmt.Errorf("ses error %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())}
		}
		return "", &ProviderError{Provider: ProviderSES, Err: err}
	}
	return aws.ToString(out.MessageId), nil
}
