package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

var ErrEmptyParameter = errors.New("ssm parameter has no value")

type Client struct {
	Config  aws.Config
	Bedrock *bedrockruntime.Client
	SSM     *ssm.Client
	S3      *s3.Client
	Region  string
}

func NewClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &Client{
		Config:  cfg,
		Bedrock: bedrockruntime.NewFromConfig(cfg),
		SSM:     ssm.NewFromConfig(cfg),
		S3:      s3.NewFromConfig(cfg),
		Region:  region,
	}, nil
}

// ParameterGetter is the slice of the SSM API used to resolve secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// GetSecureParameter fetches and decrypts a Parameter Store value.
func GetSecureParameter(ctx context.Context, api ParameterGetter, name string) (string, error) {
	out, err := api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get ssm parameter %s: %w", name, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("%s: %w", name, ErrEmptyParameter)
	}
	return aws.ToString(out.Parameter.Value), nil
}
