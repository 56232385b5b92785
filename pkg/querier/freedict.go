package querier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/bdunphy/dictl/pkg/dict"
)

const (
	defaultFreeDictHost = "api.dictionaryapi.dev"
	defaultProtocol     = "https"
	defaultTimeout      = 10 * time.Second
	freeDictEntryPath   = "/api/v2/entries/en/"

	retryPause = 500 * time.Millisecond
)

type FreeDictConfig struct {
	// ExtraHeader specifies what header will be added to each request
	ExtraHeader map[string]string
	// Timeout specifies maximum wait time for each request
	Timeout time.Duration
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
}

// FreeDict looks words up in the Free Dictionary API.
type FreeDict struct {
	client *http.Client
	config *FreeDictConfig
	logger *zap.Logger
}

func NewFreeDict(client *http.Client, logger *zap.Logger, config *FreeDictConfig) *FreeDict {
	if config == nil {
		config = &FreeDictConfig{}
	}
	if config.Host == "" {
		config.Host = defaultFreeDictHost
	}
	if config.Protocol == "" {
		config.Protocol = defaultProtocol
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FreeDict{
		client: client,
		config: config,
		logger: logger.Named("freedict"),
	}
}

func (q *FreeDict) Lookup(ctx context.Context, word string) ([]*dict.Entry, error) {
	request, err := q.newRequest(ctx, q.newEntryURL(word))
	if err != nil {
		return nil, fmt.Errorf("can not assemble request: %w", err)
	}
	response, err := q.doWithRetry(ctx, request, word)
	if err != nil {
		q.logger.Warn("request failed",
			zap.String("word", word),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", dict.ErrUnavailable, err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, &dict.NotFoundError{Word: word}
	case response.StatusCode != http.StatusOK:
		q.logger.Warn("unexpected response code",
			zap.String("word", word),
			zap.Int("code", response.StatusCode),
		)
		return nil, fmt.Errorf("%w: unexpected response code: %d",
			dict.ErrUnavailable, response.StatusCode)
	}

	var apiEntries []apiEntry
	if err := json.NewDecoder(response.Body).Decode(&apiEntries); err != nil {
		return nil, fmt.Errorf("%w: can not decode response: %v", dict.ErrUnavailable, err)
	}
	entries := mapAPIEntries(apiEntries)
	if len(entries) == 0 {
		return nil, &dict.NotFoundError{Word: word}
	}
	q.logger.Debug("lookup done",
		zap.String("word", word),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}

// doWithRetry performs the request with a single retry on 5xx or network
// error. The retry is skipped when the context is already done.
func (q *FreeDict) doWithRetry(ctx context.Context, request *http.Request, word string) (*http.Response, error) {
	response, err := q.client.Do(request)
	shouldRetry := err != nil || response.StatusCode >= http.StatusInternalServerError
	if !shouldRetry || ctx.Err() != nil {
		return response, err
	}
	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", response.StatusCode)
		response.Body.Close()
	}
	q.logger.Warn("retrying request",
		zap.String("word", word),
		zap.String("reason", reason),
	)
	select {
	case <-time.After(retryPause):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return q.client.Do(request.Clone(ctx))
}

func (q *FreeDict) newEntryURL(word string) string {
	entryURL := url.URL{
		Scheme: q.config.Protocol,
		Host:   q.config.Host,
		Path:   path.Join(freeDictEntryPath, word),
	}
	return entryURL.String()
}

func (q *FreeDict) newRequest(ctx context.Context, urlRequest string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlRequest, nil)
	if err != nil {
		return nil, fmt.Errorf("can not form request: %w", err)
	}
	for key, value := range q.config.ExtraHeader {
		req.Header.Add(key, value)
	}
	return req, nil
}

func (q *FreeDict) Close(ctx context.Context) error {
	q.client.CloseIdleConnections()
	return nil
}
