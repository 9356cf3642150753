package config

import (
	"fmt"
	"strings"
)

// MissingCredentialsError names the environment variables that were empty.
type MissingCredentialsError struct {
	Names []string
}

func (e *MissingCredentialsError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("%s environment variable not set.", e.Names[0])
	}
	return fmt.Sprintf("%s not set.", strings.Join(e.Names, ", "))
}

type credential struct {
	env   string
	value string
}

func checkSet(creds ...credential) error {
	var missing []string
	for _, c := range creds {
		if strings.TrimSpace(c.value) == "" {
			missing = append(missing, c.env)
		}
	}
	if len(missing) > 0 {
		return &MissingCredentialsError{Names: missing}
	}
	return nil
}

// RequireOpenAI checks the chat completion credential.
func (c *Config) RequireOpenAI() error {
	return checkSet(credential{"OPENAI_API_KEY", c.OpenAI.APIKey})
}

// RequireMedium checks the integration token and account id.
func (c *Config) RequireMedium() error {
	return checkSet(
		credential{"MEDIUM_INTEGRATION_TOKEN", c.Medium.IntegrationToken},
		credential{"MEDIUM_USER_ID", c.Medium.UserID},
	)
}

// RequireX checks all four OAuth1 components.
func (c *Config) RequireX() error {
	return checkSet(
		credential{"TWITTER_API_KEY", c.X.APIKey},
		credential{"TWITTER_API_SECRET", c.X.APISecret},
		credential{"TWITTER_ACCESS_TOKEN", c.X.AccessToken},
		credential{"TWITTER_ACCESS_SECRET", c.X.AccessSecret},
	)
}

// MaskSecret hides all but the edges of a secret for log output.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
