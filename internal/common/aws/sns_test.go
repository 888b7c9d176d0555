package aws

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"sales-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSNS struct {
	mock.Mock
}

func (m *MockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sns.PublishOutput), args.Error(1)
}

func TestAIRequestPublisher_Publish(t *testing.T) {
	client := new(MockSNS)
	publisher := NewAIRequestPublisherWithClient(client, "arn:aws:sns:eu-central-1:123:ai-requests")

	request := models.AIRequest{
		ShopID:       "shop-1",
		Reason:       models.ReasonManyUnknownTerms,
		UnknownTerms: []string{"flauschig", "kuschelig"},
		QueryForAi:   "flauschig kuschelig",
	}

	client.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		var decoded models.AIRequest
		if err := json.Unmarshal([]byte(*in.Message), &decoded); err != nil {
			return false
		}
		return *in.TopicArn == "arn:aws:sns:eu-central-1:123:ai-requests" &&
			decoded.ShopID == "shop-1" &&
			len(decoded.UnknownTerms) == 2 &&
			*in.MessageAttributes["reason"].StringValue == "many_unknown_terms" &&
			*in.MessageAttributes["shopId"].StringValue == "shop-1"
	})).Return(&sns.PublishOutput{}, nil)

	require.NoError(t, publisher.Publish(context.Background(), request))
	client.AssertExpectations(t)
}

func TestAIRequestPublisher_PublishError(t *testing.T) {
	client := new(MockSNS)
	client.On("Publish", mock.Anything, mock.Anything).Return(nil, stderrors.New("throttled"))

	err := NewAIRequestPublisherWithClient(client, "arn").Publish(context.Background(), models.AIRequest{ShopID: "shop-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestNewAIRequestPublisher_RequiresTopic(t *testing.T) {
	_, err := NewAIRequestPublisher(context.Background(), "eu-central-1", "")
	assert.Error(t, err)
}
