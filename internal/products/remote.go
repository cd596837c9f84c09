package products

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nutrition-diary-api/internal/config"
)

// RemoteCatalog talks to a service implementing the products REST
// contract:
//
//	GET    /products        -> Product[]
//	GET    /products/{id}   -> Product | 404
//	POST   /products        -> Product
//	PUT    /products/{id}   -> Product | 404
//	DELETE /products/{id}   -> 204 | 404
//
// A 404 on get/update/delete maps to the "absent" result; any other
// failure (network, 5xx) is returned as an error.
type RemoteCatalog struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteCatalog creates a catalog client for the configured base URL.
func NewRemoteCatalog(cfg *config.Config) *RemoteCatalog {
	timeoutSeconds := cfg.APITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}

	return &RemoteCatalog{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (c *RemoteCatalog) List(ctx context.Context) ([]Product, error) {
	var result []Product
	found, err := c.do(ctx, http.MethodGet, "/products", nil, &result)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("products endpoint not found at %s", c.baseURL)
	}
	return result, nil
}

func (c *RemoteCatalog) GetByID(ctx context.Context, id string) (*Product, error) {
	var result Product
	found, err := c.do(ctx, http.MethodGet, "/products/"+id, nil, &result)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}

func (c *RemoteCatalog) Create(ctx context.Context, data CreateProductData) (Product, error) {
	var result Product
	found, err := c.do(ctx, http.MethodPost, "/products", data, &result)
	if err != nil {
		return Product{}, err
	}
	if !found {
		return Product{}, fmt.Errorf("products endpoint not found at %s", c.baseURL)
	}
	return result, nil
}

func (c *RemoteCatalog) Update(ctx context.Context, id string, data UpdateProductData) (*Product, error) {
	var result Product
	found, err := c.do(ctx, http.MethodPut, "/products/"+id, data, &result)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}

func (c *RemoteCatalog) Delete(ctx context.Context, id string) (bool, error) {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}

// do issues one request. The boolean result is false for a 404 response,
// true otherwise; non-2xx statuses other than 404 become errors.
func (c *RemoteCatalog) do(ctx context.Context, method, path string, payload, out any) (bool, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return false, err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return false, fmt.Errorf("products api: %s %s failed with status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("products api: decoding %s %s response: %w", method, path, err)
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}

	return true, nil
}
