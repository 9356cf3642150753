package publisher

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"

	"auto_content_publisher/config"
	"auto_content_publisher/document"
)

const (
	XName = "X"

	// MaxPostLength is the character budget of a single post.
	MaxPostLength = 280
)

type xPost struct {
	Text string `json:"text"`
}

// X creates posts through the X v2 API with OAuth1 user context signing.
type X struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewX builds an OAuth1 signing client. base, when non-nil, is the transport
// the signed requests go through.
func NewX(cfg config.XConfig, base *http.Client, logger *slog.Logger) (*X, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" || cfg.AccessToken == "" || cfg.AccessSecret == "" {
		return nil, errors.New("x config must include api key, api secret, access token and access secret")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultXBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()
	if base != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, base)
	}
	oauthCfg := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)

	return &X{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  oauthCfg.Client(ctx, token),
		logger:  logger,
	}, nil
}

func (x *X) Name() string { return XName }

// Post submits the first MaxPostLength characters of the body and returns the
// raw API response.
func (x *X) Post(ctx context.Context, doc document.Document) (string, error) {
	text := document.Truncate(doc.Body(), MaxPostLength)
	x.logger.Debug("creating x post", "chars", len([]rune(text)))

	data, err := postJSON(ctx, x.client, "x", x.baseURL+"/2/tweets", nil, xPost{Text: text})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
