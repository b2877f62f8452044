package nutritionix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"nutrition-tracker/internal/config"
	"nutrition-tracker/internal/nutrition"

	"go.uber.org/zap"
)

// Client looks up nutrients for a free-text food description.
type Client interface {
	Nutrients(ctx context.Context, query nutrition.FoodQuery) (*nutrition.Result, error)
}

// nutritionixClient is the concrete implementation backed by the natural/nutrients endpoint.
type nutritionixClient struct {
	httpClient *http.Client
	url        string
	appID      string
	apiKey     string
	console    io.Writer
	logger     *zap.Logger
}

// NewClient creates a new Nutritionix API client. Progress text is written to console.
func NewClient(cfg *config.Config, console io.Writer, logger *zap.Logger) Client {
	if console == nil {
		console = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &nutritionixClient{
		httpClient: &http.Client{Timeout: cfg.Nutritionix.Timeout},
		url:        cfg.Nutritionix.URL,
		appID:      cfg.Nutritionix.AppID,
		apiKey:     cfg.Nutritionix.APIKey,
		console:    console,
		logger:     logger.Named("nutritionix"),
	}
}

// Nutrients issues a single POST for query. It never retries.
func (c *nutritionixClient) Nutrients(ctx context.Context, query nutrition.FoodQuery) (*nutrition.Result, error) {
	fmt.Fprintf(c.console, "  > Querying Nutritionix API for '%s'...\n", query)

	body, err := json.Marshal(map[string]string{"query": query.String()})
	if err != nil {
		return nil, nutrition.NewFailure(nutrition.KindService, fmt.Errorf("failed to marshal request body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, nutrition.NewFailure(nutrition.KindService, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportFailure(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("nutrients response", zap.String("query", query.String()), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		fmt.Fprintf(c.console, "  > HTTP Error occurred: %s (Status Code: %d)\n", http.StatusText(resp.StatusCode), resp.StatusCode)

		kind := nutrition.KindService
		if resp.StatusCode == http.StatusUnauthorized {
			kind = nutrition.KindAuthentication
			fmt.Fprintln(c.console, "  > Please double-check your NUTRITIONIX_APP_ID and NUTRITIONIX_API_KEY.")
		}
		return nil, &nutrition.Failure{
			Kind:   kind,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("nutritionix api error: status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var nr nutrientsResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		fmt.Fprintf(c.console, "  > An unexpected error occurred during the API request: %v\n", err)
		return nil, nutrition.NewFailure(nutrition.KindService, fmt.Errorf("failed to decode response: %w", err))
	}

	if len(nr.Foods) == 0 {
		fmt.Fprintf(c.console, "  > No detailed nutritional data found for '%s'. Please check spelling or try a more specific item.\n", query)
		return nil, nutrition.NewFailure(nutrition.KindNoMatch, fmt.Errorf("no foods returned for %q", query.String()))
	}

	result := nr.toResult()
	c.logger.Debug("nutrients parsed", zap.String("query", query.String()), zap.Int("foods", len(result.Foods)))
	return result, nil
}

func (c *nutritionixClient) transportFailure(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		fmt.Fprintf(c.console, "  > Timeout Error occurred: %v (API took too long to respond)\n", err)
		return nutrition.NewFailure(nutrition.KindTimeout, err)
	}
	fmt.Fprintf(c.console, "  > Connection Error occurred: %v (Are you connected to the internet?)\n", err)
	return nutrition.NewFailure(nutrition.KindNetwork, err)
}
