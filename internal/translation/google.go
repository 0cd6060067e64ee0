package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/subplot/internal/language"
	"horse.fit/subplot/internal/metadata"
)

// FallbackProviderName labels fallback successes in results and logs.
const FallbackProviderName = "google"

const (
	googleEndpoint = "https://translate.google.com.hk/translate_a/single"

	// The endpoint enforces an unstated per-second quota; every call waits
	// this long before returning.
	googleCooldown = 4 * time.Second

	throttleBaseline     = 60 * time.Second
	throttleGrowthMin    = 60
	throttleGrowthSpread = 31 // random increment is 60..90 seconds
)

// Backoff holds the fallback channel's adaptive throttling wait. The wait
// starts at a fixed baseline and only ever grows within a process run; it
// resets on restart. Safe for use from concurrent orchestrator workers.
type Backoff struct {
	mu   sync.Mutex
	wait time.Duration
}

func NewBackoff() *Backoff {
	return &Backoff{wait: throttleBaseline}
}

// Wait returns the current wait duration.
func (b *Backoff) Wait() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.wait
}

// Grow adds a random increment within the bounded range and returns the new
// wait duration.
func (b *Backoff) Grow() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wait += time.Duration(throttleGrowthMin+rand.Intn(throttleGrowthSpread)) * time.Second
	return b.wait
}

// GoogleClient talks to the unauthenticated public translation endpoint.
// Requests are routed through whatever proxy the supplied HTTP client
// carries. Throttling is handled internally with a blocking retry loop that
// only ends on a non-throttled response or context cancellation.
type GoogleClient struct {
	client   *http.Client
	backoff  *Backoff
	logger   zerolog.Logger
	cooldown time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewGoogleClient(client *http.Client, backoff *Backoff, logger zerolog.Logger) *GoogleClient {
	if client == nil {
		client = &http.Client{}
	}
	if backoff == nil {
		backoff = NewBackoff()
	}
	return &GoogleClient{
		client:   client,
		backoff:  backoff,
		logger:   logger,
		cooldown: googleCooldown,
		sleep:    sleepContext,
	}
}

// Translate issues one GET to the public endpoint, retrying for as long as
// the endpoint keeps throttling. Entity protection, if wanted, is the
// caller's job just as with compatible providers.
func (g *GoogleClient) Translate(ctx context.Context, text, targetLang string) (*Result, error) {
	if g == nil || g.client == nil {
		return nil, ErrProviderUnavailable
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("dt", "t")
	query.Set("dj", "1")
	query.Set("ie", "UTF-8")
	query.Set("sl", "auto")
	query.Set("tl", language.NormalizeTag(targetLang))
	query.Set("q", text)
	reqURL := googleEndpoint + "?" + query.Encode()

	status, body, err := g.get(ctx, reqURL)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	for status == http.StatusTooManyRequests {
		wait := g.backoff.Wait()
		g.logger.Warn().
			Dur("wait", wait).
			Msg("google translate request throttled, backing off")
		if err := g.sleep(ctx, wait); err != nil {
			return nil, err
		}
		status, body, err = g.get(ctx, reqURL)
		if err != nil {
			return nil, &TransportError{Err: err}
		}
		if status == http.StatusTooManyRequests {
			g.backoff.Grow()
		}
	}

	// Quota guard applies to every completed call, throttled or not.
	if err := g.sleep(ctx, g.cooldown); err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, &ProviderError{Status: status, Message: http.StatusText(status)}
	}

	var parsed googleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode google response: %w", err)
	}
	if len(parsed.Sentences) == 0 {
		return nil, &ProviderError{Status: parsed.ErrorCode, Message: googleErrorMessage(parsed)}
	}

	pairs := make([]metadata.SentencePair, 0, len(parsed.Sentences))
	var joined strings.Builder
	for _, sentence := range parsed.Sentences {
		pairs = append(pairs, metadata.SentencePair{
			Original:   sentence.Orig,
			Translated: sentence.Trans,
		})
		joined.WriteString(sentence.Trans)
	}

	return &Result{
		Text:      joined.String(),
		Provider:  FallbackProviderName,
		Sentences: pairs,
	}, nil
}

func (g *GoogleClient) get(ctx context.Context, reqURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

type googleResponse struct {
	Sentences []struct {
		Orig  string `json:"orig"`
		Trans string `json:"trans"`
	} `json:"sentences"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

func googleErrorMessage(parsed googleResponse) string {
	if msg := strings.TrimSpace(parsed.ErrorMsg); msg != "" {
		return msg
	}
	return "response has no sentences"
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
