package querier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"

	"github.com/bdunphy/dictl/pkg/dict"
)

const (
	defaultCambridgeHost = "dictionary.cambridge.org"
	lemmaPath            = "/dictionary/english/"
	suggestionPath       = "/spellcheck/english/"
	searchPath           = "/search/english/direct/"
)

type CambridgeConfig struct {
	// ExtraHeader specifies what header will be added to each request
	ExtraHeader map[string]string
	// Timeout specifies maximum wait time for each request
	Timeout time.Duration
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
	// MaxWorkers specifies how many workers parse html content of a page.
	// Zero value means it will be equal to the number of logical CPUs.
	MaxWorkers int
}

// Cambridge looks words up by scraping the Cambridge dictionary. A search
// request answers with a redirect: into the definition path when the word
// exists, into the spellcheck path when only suggestions exist.
type Cambridge struct {
	client *http.Client
	config *CambridgeConfig
	pool   *workerpool.WorkerPool
	p      Parser
	logger *zap.Logger
}

func NewCambridge(client *http.Client, p Parser, logger *zap.Logger, config *CambridgeConfig) *Cambridge {
	if client == nil {
		client = getDefaultCambridgeClient(config)
	}
	if p == nil {
		p = &HTMLParser{}
	}
	if config == nil {
		config = &CambridgeConfig{}
	}
	if config.Host == "" {
		config.Host = defaultCambridgeHost
	}
	if config.Protocol == "" {
		config.Protocol = defaultProtocol
	}
	if config.MaxWorkers < 1 {
		config.MaxWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cambridge{
		client: client,
		config: config,
		pool:   workerpool.New(config.MaxWorkers),
		p:      p,
		logger: logger.Named("cambridge"),
	}
}

// getDefaultCambridgeClient returns a client that ignores redirects, search
// answers are read from the Location header.
func getDefaultCambridgeClient(config *CambridgeConfig) *http.Client {
	timeout := defaultTimeout
	if config != nil && config.Timeout != 0 {
		timeout = config.Timeout
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (q *Cambridge) Lookup(ctx context.Context, word string) ([]*dict.Entry, error) {
	redirect, err := q.search(ctx, word)
	if err != nil {
		q.logger.Warn("search failed", zap.String("word", word), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", dict.ErrUnavailable, err)
	}
	switch {
	case strings.HasPrefix(redirect.Path, lemmaPath):
		if strings.HasSuffix(redirect.Path, lemmaPath) {
			// Redirect to the bare dictionary root, nothing matched.
			return nil, &dict.NotFoundError{Word: word}
		}
		return q.getEntries(ctx, word, path.Base(redirect.Path))
	case strings.HasPrefix(redirect.Path, suggestionPath):
		suggestions, err := q.getSuggestions(ctx, redirect.String())
		if err != nil {
			q.logger.Warn("suggestions failed", zap.String("word", word), zap.Error(err))
			return nil, fmt.Errorf("%w: can not get suggestions: %v", dict.ErrUnavailable, err)
		}
		return nil, &dict.NotFoundError{Word: word, Suggestions: suggestions}
	default:
		return nil, fmt.Errorf("%w: unknown redirect: %s", dict.ErrUnavailable, redirect)
	}
}

func (q *Cambridge) getEntries(ctx context.Context, word, lemmaID string) ([]*dict.Entry, error) {
	response, err := q.get(ctx, q.newLemmaURL(lemmaID), http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get definition page: %v", dict.ErrUnavailable, err)
	}
	defer response.Body.Close()
	var entries []*dict.Entry
	// Use the pool here, parsing the page is a heavy cpu bound task.
	q.pool.SubmitWait(func() {
		entries, err = q.p.ParseEntries(response.Body)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: can not parse definition page: %v", dict.ErrUnavailable, err)
	}
	if len(entries) == 0 {
		return nil, &dict.NotFoundError{Word: word}
	}
	q.logger.Debug("lookup done",
		zap.String("word", word),
		zap.String("lemma_id", lemmaID),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}

func (q *Cambridge) search(ctx context.Context, word string) (*url.URL, error) {
	response, err := q.get(ctx, q.newSearchURL(word), http.StatusFound)
	if err != nil {
		return nil, fmt.Errorf("failed to perform search: %w", err)
	}
	defer response.Body.Close()
	redirect, err := response.Location()
	if err != nil {
		return nil, fmt.Errorf("can not parse redirect url: %w", err)
	}
	return redirect, nil
}

func (q *Cambridge) getSuggestions(ctx context.Context, urlSuggestions string) ([]string, error) {
	response, err := q.get(ctx, urlSuggestions, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("failed to perform get: %w", err)
	}
	defer response.Body.Close()
	var suggestions []string
	q.pool.SubmitWait(func() {
		suggestions, err = q.p.ParseSuggestions(response.Body)
	})
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (q *Cambridge) get(ctx context.Context, urlGet string, expectedStatus int) (*http.Response, error) {
	request, err := q.newRequest(ctx, urlGet)
	if err != nil {
		return nil, fmt.Errorf("can not assemble request: %w", err)
	}
	response, err := q.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	if response.StatusCode != expectedStatus {
		response.Body.Close()
		return nil, fmt.Errorf("unexpected response code: %d", response.StatusCode)
	}
	return response, err
}

func (q *Cambridge) newSearchURL(word string) string {
	searchURL := q.newURL()
	searchURL.Path = searchPath

	v := url.Values{}
	v.Set("q", word)
	v.Set("datasetsearch", "english")
	searchURL.RawQuery = v.Encode()

	return searchURL.String()
}

func (q *Cambridge) newLemmaURL(lemmaID string) string {
	lemmaURL := q.newURL()
	lemmaURL.Path = path.Join(lemmaPath, lemmaID)
	return lemmaURL.String()
}

func (q *Cambridge) newURL() *url.URL {
	return &url.URL{
		Scheme: q.config.Protocol,
		Host:   q.config.Host,
	}
}

func (q *Cambridge) newRequest(ctx context.Context, urlRequest string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlRequest, nil)
	if err != nil {
		return nil, fmt.Errorf("can not form request: %w", err)
	}
	for key, value := range q.config.ExtraHeader {
		req.Header.Add(key, value)
	}
	return req, nil
}

func (q *Cambridge) Close(ctx context.Context) error {
	q.client.CloseIdleConnections()
	q.pool.StopWait()
	return nil
}
