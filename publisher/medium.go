package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"auto_content_publisher/config"
	"auto_content_publisher/document"
)

const (
	MediumName = "Medium"

	formatMarkdown = "markdown"
	formatHTML     = "html"

	// Posts are always created as drafts.
	publishStatusDraft = "draft"
)

type mediumPost struct {
	Title         string `json:"title"`
	ContentFormat string `json:"contentFormat"`
	Content       string `json:"content"`
	PublishStatus string `json:"publishStatus"`
}

type mediumPostResp struct {
	Data struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
}

// Medium creates draft posts through the Medium REST API.
type Medium struct {
	cfg    config.MediumConfig
	client *http.Client
	logger *slog.Logger
}

// NewMedium validates the credentials and returns a client. A nil client uses
// a default http.Client.
func NewMedium(cfg config.MediumConfig, client *http.Client, logger *slog.Logger) (*Medium, error) {
	if cfg.IntegrationToken == "" || cfg.UserID == "" {
		return nil, errors.New("medium config must include integration token and user id")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultMediumBaseURL
	}
	switch cfg.ContentFormat {
	case "":
		cfg.ContentFormat = formatMarkdown
	case formatMarkdown, formatHTML:
	default:
		return nil, fmt.Errorf("medium content format %q not supported", cfg.ContentFormat)
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Medium{cfg: cfg, client: client, logger: logger}, nil
}

func (m *Medium) Name() string { return MediumName }

// Post submits doc as a draft and returns the post URL.
func (m *Medium) Post(ctx context.Context, doc document.Document) (string, error) {
	post := mediumPost{
		Title:         document.Title(doc.Text),
		ContentFormat: m.cfg.ContentFormat,
		Content:       doc.Body(),
		PublishStatus: publishStatusDraft,
	}
	if m.cfg.ContentFormat == formatHTML {
		html, err := mdToHTML(post.Content)
		if err != nil {
			return "", fmt.Errorf("convert markdown: %w", err)
		}
		post.Content = html
	}

	endpoint := strings.TrimRight(m.cfg.BaseURL, "/") + "/users/" + url.PathEscape(m.cfg.UserID) + "/posts"
	m.logger.Debug("creating medium draft",
		"title", post.Title,
		"format", post.ContentFormat,
		"token", config.MaskSecret(m.cfg.IntegrationToken))

	data, err := postJSON(ctx, m.client, "medium", endpoint, map[string]string{
		"Authorization": "Bearer " + m.cfg.IntegrationToken,
	}, post)
	if err != nil {
		return "", err
	}

	var resp mediumPostResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("medium: decode response: %w", err)
	}
	m.logger.Info("medium draft created", "id", resp.Data.ID, "url", resp.Data.URL)
	return resp.Data.URL, nil
}
