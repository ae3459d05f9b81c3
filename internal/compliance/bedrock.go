package compliance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// ConverseAPI is the part of the Bedrock runtime client the reviewer uses.
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockReviewer sends reviews through the Bedrock Converse API.
type BedrockReviewer struct {
	api       ConverseAPI
	modelID   string
	maxTokens int32
	timeout   time.Duration
}

func NewBedrockReviewer(api ConverseAPI, modelID string, maxTokens int, timeout time.Duration) *BedrockReviewer {
	return &BedrockReviewer{
		api:       api,
		modelID:   modelID,
		maxTokens: int32(maxTokens),
		timeout:   timeout,
	}
}

func (r *BedrockReviewer) Review(ctx context.Context, path, content string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.api.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(r.modelID),
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: systemPrompt},
		},
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: BuildPrompt(path, content)},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(r.maxTokens),
			Temperature: aws.Float32(0),
		},
	})
	if err != nil {
		return "", fmt.Errorf("bedrock converse failed: %w", err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	return cleanReply(b.String())
}
