// Package webapi talks to the CRM's OData Web API: record CRUD, list
// queries with paging, and the relationship-binding convention for
// lookup fields.
package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/nimbleqa/xrmkit/pkg/config"
	"github.com/nimbleqa/xrmkit/pkg/logging"
)

// Record is a Web API payload or response body: field names mapped to
// primitive values, plus zero or more @odata.bind keys for lookups.
type Record map[string]any

// Page is one page of a list query. NextLink is the continuation URL,
// empty on the last page.
type Page struct {
	Records  []Record
	NextLink string
}

// StatusError is a non-2xx Web API response with its OData error body.
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("web api status %d: %s (%s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("web api status %d", e.Status)
}

// Client issues authenticated Web API requests. Transient transport
// failures are retried by the HTTP layer; application-level failures
// surface as *StatusError and are never retried.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
	log     *logging.Logger
}

// NewClient builds a client from explicit settings. Fails eagerly when
// the API token is absent.
func NewClient(settings config.Settings) (*Client, error) {
	if err := settings.RequireAPIToken(); err != nil {
		return nil, err
	}

	hc := retryablehttp.NewClient()
	hc.RetryMax = 3
	hc.Logger = nil

	log, _ := logging.NewLogger("webapi")
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(settings.APIURL, "/"),
		token:   settings.APIToken,
		log:     log,
	}, nil
}

// do issues one request. path may be relative to the API root or an
// absolute continuation URL.
func (c *Client) do(ctx context.Context, method, path string, body Record, headers map[string]string) (*http.Response, []byte, error) {
	url := path
	if !strings.HasPrefix(path, "http") {
		url = c.baseURL + path
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, nil, &StatusError{
			Status:  resp.StatusCode,
			Code:    gjson.GetBytes(data, "error.code").String(),
			Message: gjson.GetBytes(data, "error.message").String(),
		}
	}

	return resp, data, nil
}

// Create inserts a record and returns its normalized identifier, taken
// from the OData-EntityId response header.
func (c *Client) Create(ctx context.Context, entitySet string, rec Record) (string, error) {
	resp, _, err := c.do(ctx, http.MethodPost, "/"+entitySet, rec, nil)
	if err != nil {
		return "", fmt.Errorf("creating %s record: %w", entitySet, err)
	}

	entityID := resp.Header.Get("OData-EntityId")
	start := strings.LastIndex(entityID, "(")
	end := strings.LastIndex(entityID, ")")
	if start < 0 || end <= start {
		return "", fmt.Errorf("creating %s record: malformed OData-EntityId header %q", entitySet, entityID)
	}

	id := NormalizeID(entityID[start+1 : end])
	c.log.Infof("created %s(%s)", entitySet, id)
	return id, nil
}

// Retrieve reads one record. query is an OData query string such as
// "$select=name&$expand=primarycontactid($select=contactid)"; it may be
// empty.
func (c *Client) Retrieve(ctx context.Context, entitySet, id, query string) (Record, error) {
	path := fmt.Sprintf("/%s(%s)", entitySet, NormalizeID(id))
	if query != "" {
		path += "?" + strings.TrimPrefix(query, "?")
	}

	_, data, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieving %s(%s): %w", entitySet, id, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding %s(%s): %w", entitySet, id, err)
	}
	return rec, nil
}

// Update patches an existing record. If-Match prevents the PATCH from
// upserting when the record is already gone.
func (c *Client) Update(ctx context.Context, entitySet, id string, rec Record) error {
	path := fmt.Sprintf("/%s(%s)", entitySet, NormalizeID(id))
	headers := map[string]string{"If-Match": "*"}

	if _, _, err := c.do(ctx, http.MethodPatch, path, rec, headers); err != nil {
		return fmt.Errorf("updating %s(%s): %w", entitySet, id, err)
	}
	return nil
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, entitySet, id string) error {
	path := fmt.Sprintf("/%s(%s)", entitySet, NormalizeID(id))
	if _, _, err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting %s(%s): %w", entitySet, id, err)
	}

	c.log.Infof("deleted %s(%s)", entitySet, id)
	return nil
}

// RetrieveMultiple runs a list query. maxPageSize > 0 adds the OData
// page-size hint; the returned Page carries the continuation link when
// more results exist.
func (c *Client) RetrieveMultiple(ctx context.Context, entitySet, query string, maxPageSize int) (Page, error) {
	path := "/" + entitySet
	if query != "" {
		path += "?" + strings.TrimPrefix(query, "?")
	}
	return c.list(ctx, path, maxPageSize)
}

// NextPage follows a continuation link from a previous page.
func (c *Client) NextPage(ctx context.Context, nextLink string, maxPageSize int) (Page, error) {
	if nextLink == "" {
		return Page{}, fmt.Errorf("empty continuation link")
	}
	return c.list(ctx, nextLink, maxPageSize)
}

func (c *Client) list(ctx context.Context, path string, maxPageSize int) (Page, error) {
	var headers map[string]string
	if maxPageSize > 0 {
		headers = map[string]string{"Prefer": fmt.Sprintf("odata.maxpagesize=%d", maxPageSize)}
	}

	_, data, err := c.do(ctx, http.MethodGet, path, nil, headers)
	if err != nil {
		return Page{}, fmt.Errorf("listing %s: %w", path, err)
	}

	var page Page
	for _, item := range gjson.GetBytes(data, "value").Array() {
		var rec Record
		if err := json.Unmarshal([]byte(item.Raw), &rec); err != nil {
			return Page{}, fmt.Errorf("decoding list item: %w", err)
		}
		page.Records = append(page.Records, rec)
	}
	page.NextLink = gjson.GetBytes(data, `\@odata\.nextLink`).String()

	return page, nil
}

// Bind sets the relationship-binding key for a lookup field: the value
// is a relative path to the target record.
func Bind(rec Record, field, entitySet, id string) {
	rec[field+"@odata.bind"] = fmt.Sprintf("/%s(%s)", entitySet, NormalizeID(id))
}
