// Package external holds the clients for services outside the process:
// the openFDA enforcement registry, the text-generation provider and the
// caches in front of them. Everything here can fail; callers are expected
// to degrade rather than propagate.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rxguard/rxguard-api/interfaces"
	"github.com/rxguard/rxguard-api/logging"
	"github.com/rxguard/rxguard-api/reference"
)

// DefaultRecallAPIBase is the openFDA drug enforcement endpoint.
const DefaultRecallAPIBase = "https://api.fda.gov/drug/enforcement.json"

const recallCacheTTL = 6 * time.Hour

// Compile-time check
var _ interfaces.RecallRegistry = (*RecallClient)(nil)

// enforcementResult is the subset of an openFDA enforcement record the
// API consumes.
type enforcementResult struct {
	Product         string `json:"product_description"`
	Classification  string `json:"classification"`
	ReasonForRecall string `json:"reason_for_recall"`
	Status          string `json:"status"`
	RecallInitDate  string `json:"recall_initiation_date"`
	RecallingFirm   string `json:"recalling_firm"`
}

type enforcementResponse struct {
	Results []enforcementResult `json:"results"`
}

// RecallClient queries the openFDA enforcement API. Requests are paced by
// a shared limiter (openFDA allows 240 req/min without a key; the default
// here stays far under that) and answered from cache when possible.
type RecallClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
}

// NewRecallClient builds a registry client. cache may be nil; a private
// in-memory cache is used then.
func NewRecallClient(baseURL string, timeout time.Duration, cache Cache) *RecallClient {
	if baseURL == "" {
		baseURL = DefaultRecallAPIBase
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &RecallClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 3),
		cache:      cache,
	}
}

// FindRecalls returns the current enforcement notices for a drug name.
// An empty slice means the registry answered and found nothing; an error
// means the registry could not answer.
func (c *RecallClient) FindRecalls(ctx context.Context, drug string) ([]reference.RecallNotice, error) {
	drug = strings.ToLower(strings.TrimSpace(drug))
	if drug == "" {
		return nil, nil
	}

	cacheKey := "recalls:" + drug
	if cached, ok, err := c.cache.Get(ctx, cacheKey); err != nil {
		logging.Warn("Recall cache read failed", "drug", drug, "error", err.Error())
	} else if ok {
		var notices []reference.RecallNotice
		if err := json.Unmarshal([]byte(cached), &notices); err == nil {
			return notices, nil
		}
		logging.Warn("Discarding corrupt recall cache entry", "drug", drug)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("recall registry rate wait: %w", err)
	}

	notices, err := c.query(ctx, drug)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(notices); err == nil {
		if err := c.cache.Set(ctx, cacheKey, string(payload), recallCacheTTL); err != nil {
			logging.Warn("Recall cache write failed", "drug", drug, "error", err.Error())
		}
	}
	return notices, nil
}

func (c *RecallClient) query(ctx context.Context, drug string) ([]reference.RecallNotice, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid recall API base: %w", err)
	}
	q := u.Query()
	q.Set("search", fmt.Sprintf(`openfda.generic_name:%q openfda.brand_name:%q`, drug, drug))
	q.Set("limit", "10")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "rxguard-api/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recall registry request: %w", err)
	}
	defer resp.Body.Close()

	// openFDA answers 404 for an empty result set.
	if resp.StatusCode == http.StatusNotFound {
		return []reference.RecallNotice{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("recall registry returned %s", resp.Status)
	}

	var parsed enforcementResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding recall registry response: %w", err)
	}

	notices := make([]reference.RecallNotice, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		notices = append(notices, reference.RecallNotice{
			Drug:          drug,
			Status:        classificationStatus(result.Classification),
			Reason:        result.ReasonForRecall,
			Authority:     "FDA",
			EffectiveDate: formatInitDate(result.RecallInitDate),
		})
	}
	return notices, nil
}

// classificationStatus maps openFDA recall classes onto the API's safety
// scale. Class I is a hard recall, Class II a partial one, and Class III
// or anything unrecognized stays under review.
func classificationStatus(classification string) reference.SafetyStatus {
	switch strings.TrimSpace(classification) {
	case "Class I":
		return reference.StatusRecalled
	case "Class II":
		return reference.StatusPartialRecall
	default:
		return reference.StatusUnderReview
	}
}

// formatInitDate converts openFDA's 20060102 dates to ISO form, passing
// through anything it cannot parse.
func formatInitDate(raw string) string {
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}
