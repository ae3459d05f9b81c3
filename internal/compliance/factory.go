package compliance

import (
	"context"
	"fmt"
	"os"

	awsclient "github.com/K0NGR3SS/codesentry/internal/aws"
	"github.com/K0NGR3SS/codesentry/internal/config"
)

// Deps carries the external clients a provider may need. SSM is only used
// when an API key parameter is configured; Bedrock only for that provider.
type Deps struct {
	Getenv  func(string) string
	SSM     awsclient.ParameterGetter
	Bedrock ConverseAPI
}

// New builds the reviewer selected by cfg.Provider.
func New(ctx context.Context, cfg config.ComplianceConf, deps Deps) (Reviewer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		key, err := resolveAPIKey(ctx, cfg, deps)
		if err != nil {
			return nil, err
		}
		r, err := NewOpenAIReviewer(OpenAIOptions{
			APIKey:    key,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.ModelOrDefault(),
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.ProviderBedrock:
		if deps.Bedrock == nil {
			return nil, fmt.Errorf("bedrock provider requires an AWS client")
		}
		return NewBedrockReviewer(deps.Bedrock, cfg.ModelOrDefault(), cfg.MaxTokens, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

func resolveAPIKey(ctx context.Context, cfg config.ComplianceConf, deps Deps) (string, error) {
	if cfg.APIKeySSMParameter != "" {
		if deps.SSM == nil {
			return "", fmt.Errorf("api_key_ssm_parameter set but no SSM client available")
		}
		return awsclient.GetSecureParameter(ctx, deps.SSM, cfg.APIKeySSMParameter)
	}

	getenv := deps.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	envName := cfg.APIKeyEnv
	if envName == "" {
		envName = "OPENAI_API_KEY"
	}
	if key := getenv(envName); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: set %s or compliance.api_key_ssm_parameter", ErrMissingAPIKey, envName)
}
