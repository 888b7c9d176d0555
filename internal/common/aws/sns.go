// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"sales-workers/internal/models"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the part of the SNS client the publisher needs.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// AIRequestPublisher sends AI clarification requests to an SNS topic.
type AIRequestPublisher struct {
	client   SNSAPI
	topicARN string
}

func NewAIRequestPublisher(ctx context.Context, region, topicARN string) (*AIRequestPublisher, error) {
	if topicARN == "" {
		return nil, fmt.Errorf("sns topic arn is required")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewAIRequestPublisherWithClient(sns.NewFromConfig(cfg), topicARN), nil
}

func NewAIRequestPublisherWithClient(client SNSAPI, topicARN string) *AIRequestPublisher {
	return &AIRequestPublisher{client: client, topicARN: topicARN}
}

// Publish sends the request as JSON with shopId and reason as message
// attributes so subscribers can filter.
func (p *AIRequestPublisher) Publish(ctx context.Context, request models.AIRequest) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode ai request: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(p.topicARN),
		Message:  awssdk.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"shopId": {DataType: awssdk.String("String"), StringValue: awssdk.String(request.ShopID)},
			"reason": {DataType: awssdk.String("String"), StringValue: awssdk.String(string(request.Reason))},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
