package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yaroslav/vlantrunk/models"
)

// Client is the SDK client for the provider's REST API. It covers the
// account inventory reads and the network component trunk operations.
// A Client is safe for concurrent use.
type Client struct {
	// Endpoint is the REST API base URL without a trailing slash.
	Endpoint string

	// HTTPClient is the HTTP client used for requests.
	HTTPClient *http.Client

	// RetryAttempts is the number of times to retry failed reads.
	RetryAttempts int

	// RetryWaitMin is the minimum wait time between retries.
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum wait time between retries.
	RetryWaitMax time.Duration

	username string
	apiKey   string
	limiter  *rate.Limiter
	logger   *zap.Logger
	observer RequestObserver
}

// NewClient creates a new SDK client with the given configuration.
// It validates the configuration and applies defaults. No request is made.
func NewClient(config ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}

	return &Client{
		Endpoint:      config.Endpoint,
		HTTPClient:    config.HTTPClient,
		RetryAttempts: config.RetryAttempts,
		RetryWaitMin:  config.RetryWaitMin,
		RetryWaitMax:  config.RetryWaitMax,
		username:      config.Username,
		apiKey:        config.APIKey,
		limiter:       rate.NewLimiter(limit, config.Burst),
		logger:        config.Logger,
		observer:      config.Observer,
	}, nil
}

// buildURL joins the endpoint, the service path and an optional object mask.
func (c *Client) buildURL(path, mask string) string {
	u := c.Endpoint + path
	if mask != "" {
		u += "?" + url.Values{"objectMask": {mask}}.Encode()
	}
	return u
}

// parseJSONResponse parses a JSON response body into the provided destination.
func (c *Client) parseJSONResponse(resp *http.Response, dest interface{}) error {
	defer drainAndCloseBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if dest == nil {
		return nil
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

// parseErrorResponse decodes the provider's error envelope into an *APIError.
// A body that is not the envelope still yields an *APIError carrying the status.
func (c *Client) parseErrorResponse(resp *http.Response, operation string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Operation: operation}
	_ = c.parseJSONResponse(resp, apiErr)
	return apiErr
}

// doJSONRequest performs a request with an optional JSON body and parses the JSON response.
func (c *Client) doJSONRequest(ctx context.Context, r request, reqBody, respBody interface{}) error {
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		r.body = data
	}

	resp, err := c.doRequestWithRetry(ctx, r)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseErrorResponse(resp, r.operation)
	}

	return c.parseJSONResponse(resp, respBody)
}

// ListHardware returns every bare-metal server on the account together with
// its network components and their uplinks.
//
// Returns:
//   - []models.Hardware: Servers in the order the provider returns them
//   - error: Any error that occurred
func (c *Client) ListHardware(ctx context.Context) ([]models.Hardware, error) {
	var hardware []models.Hardware
	err := c.doJSONRequest(ctx, request{
		method:    http.MethodGet,
		operation: OpListHardware,
		url:       c.buildURL("/SoftLayer_Account/getHardware.json", HardwareMask),
		retryable: true,
	}, nil, &hardware)
	if err != nil {
		return nil, fmt.Errorf("failed to list hardware: %w", err)
	}
	return hardware, nil
}

// ListVLANs returns every VLAN on the account.
func (c *Client) ListVLANs(ctx context.Context) ([]models.VLAN, error) {
	var vlans []models.VLAN
	err := c.doJSONRequest(ctx, request{
		method:    http.MethodGet,
		operation: OpListVLANs,
		url:       c.buildURL("/SoftLayer_Account/getNetworkVlans.json", VLANMask),
		retryable: true,
	}, nil, &vlans)
	if err != nil {
		return nil, fmt.Errorf("failed to list vlans: %w", err)
	}
	return vlans, nil
}

// GetVLANTrunks returns the VLANs trunked onto a network component.
// componentID is normally the uplink (switch-side) component.
func (c *Client) GetVLANTrunks(ctx context.Context, componentID int) ([]models.VLANTrunk, error) {
	var trunks []models.VLANTrunk
	err := c.doJSONRequest(ctx, request{
		method:    http.MethodGet,
		operation: OpGetVLANTrunks,
		url:       c.buildURL(componentPath(componentID, "getNetworkVlanTrunks"), TrunkMask),
		retryable: true,
	}, nil, &trunks)
	if err != nil {
		return nil, fmt.Errorf("failed to get vlan trunks for component %d: %w", componentID, err)
	}
	return trunks, nil
}

// AddVLANTrunks trunks the given VLANs onto a network component.
// Only the VLAN IDs are sent. The call is not retried.
//
// Parameters:
//   - componentID: Network component to modify
//   - vlans: VLANs to add; adding a VLAN that is already trunked is a no-op
//
// Returns:
//   - []models.VLAN: The VLANs the provider reports as added
//   - error: Any error that occurred
func (c *Client) AddVLANTrunks(ctx context.Context, componentID int, vlans ...models.VLAN) ([]models.VLAN, error) {
	refs := make([]vlanRef, 0, len(vlans))
	for _, v := range vlans {
		refs = append(refs, vlanRef{ID: v.ID})
	}

	var added []models.VLAN
	err := c.doJSONRequest(ctx, request{
		method:    http.MethodPost,
		operation: OpAddVLANTrunks,
		url:       c.buildURL(componentPath(componentID, "addNetworkVlanTrunks"), ""),
	}, trunkParameters{Parameters: [][]vlanRef{refs}}, &added)
	if err != nil {
		return nil, fmt.Errorf("failed to add vlan trunks to component %d: %w", componentID, err)
	}
	return added, nil
}

// ClearVLANTrunks removes every VLAN trunk from a network component.
// The call is not retried.
func (c *Client) ClearVLANTrunks(ctx context.Context, componentID int) error {
	err := c.doJSONRequest(ctx, request{
		method:    http.MethodPost,
		operation: OpClearVLANTrunks,
		url:       c.buildURL(componentPath(componentID, "clearNetworkVlanTrunks"), ""),
	}, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to clear vlan trunks on component %d: %w", componentID, err)
	}
	return nil
}

func componentPath(componentID int, method string) string {
	return "/SoftLayer_Network_Component/" + strconv.Itoa(componentID) + "/" + method + ".json"
}
