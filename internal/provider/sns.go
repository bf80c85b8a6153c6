package provider

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"rentas-backend/internal/domain"
)

// SNSProvider publishes SMS through Amazon SNS. It carries no WhatsApp
// capability; the dispatch path must never route WhatsApp traffic here.
type SNSProvider struct {
	client   *sns.Client
	senderID string
}

func NewSNSProvider(ctx context.Context, region, senderID string) (*SNSProvider, error) {
	p := &SNSProvider{senderID: senderID}
	if region == "" {
		return p, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	p.client = sns.NewFromConfig(cfg)
	return p, nil
}

func (p *SNSProvider) Name() string {
	return "sns"
}

func (p *SNSProvider) IsConfigured() bool {
	return p.client != nil
}

func (p *SNSProvider) SupportsWhatsApp() bool {
	return false
}

func (p *SNSProvider) SendSMS(ctx context.Context, phone, message string) (string, error) {
	if !p.IsConfigured() {
		return "", domain.ErrProviderUnavailable
	}

	input := &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	}
	if p.senderID != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(p.senderID),
			},
		}
	}

	out, err := p.client.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	if out.MessageId == nil || *out.MessageId == "" {
		return "", fmt.Errorf("sns publish: response missing message id")
	}
	return *out.MessageId, nil
}

func (p *SNSProvider) SendWhatsApp(ctx context.Context, phone, message string) (string, error) {
	return "", domain.ErrUnsupportedChannel
}
