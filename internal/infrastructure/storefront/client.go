package storefront

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"nft_tracker/internal/config"
	"nft_tracker/internal/domain"
	"nft_tracker/internal/domain/entity"
	"nft_tracker/pkg/errcodes"
	"nft_tracker/pkg/httpx"
	"nft_tracker/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const errorBodyMaxLen = 512

type itemsEnvelope struct {
	Data []entity.RawItem `json:"data"`
}

// Client reads the storefront SKU inventory.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient builds the client with an API key and logging transport chain.
func NewClient(cfg config.Storefront) (*Client, error) {
	transport := httpx.NewAPIKeyRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(cfg.LogFieldMaxLen),
		),
		httpx.HeaderNameAPIKey,
		cfg.APIKey,
	)

	return NewClientWithHTTP(cfg, &http.Client{Transport: transport, Timeout: cfg.Timeout})
}

func NewClientWithHTTP(cfg config.Storefront, httpClient *http.Client) (*Client, error) {
	endpoint, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	query := endpoint.Query()
	query.Set("perPage", strconv.Itoa(cfg.PageSize))
	endpoint.RawQuery = query.Encode()

	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint.String(),
	}, nil
}

// FetchItems performs one GET of the inventory page.
func (c *Client) FetchItems(ctx context.Context) ([]entity.RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.FetchFailed, "storefront request")
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyMaxLen)) //nolint:errcheck
		return nil, domain.WrapError(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			errcodes.UnexpectedStatus,
			"storefront response",
		)
	}

	var envelope itemsEnvelope

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, domain.WrapError(err, errcodes.InvalidFeed, "decode storefront response")
	}

	if envelope.Data == nil {
		return nil, domain.NewError(errcodes.InvalidFeed, "storefront response has no data array")
	}

	return envelope.Data, nil
}
