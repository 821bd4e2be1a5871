package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2025-09-03"

	// DefaultEmoji is the page icon used when the caller does not pick one.
	DefaultEmoji = "📄"
)

// Client talks to the Notion API. It converts Markdown to block payloads and
// owns authentication, transport, and response decoding; the conversion core
// stays network-free.
type Client struct {
	cfg     Config
	baseURL string
	client  *http.Client
	verbose bool
	logger  *log.Logger
}

// New creates a Client. A nil http.Client gets a 60s-timeout default.
func New(cfg Config, client *http.Client, verbose bool, logger *log.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("config must include api_key")
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		cfg:     cfg,
		baseURL: baseURL,
		client:  client,
		verbose: verbose,
		logger:  logger,
	}, nil
}

func (c *Client) infof(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	c.logger.Printf("[INFO] "+format, args...)
}

// PageParams describes a page to create.
type PageParams struct {
	Title    string
	Emoji    string
	ParentID string
	Markdown string
}

// Page identifies a created page.
type Page struct {
	ID  string
	URL string
}

// PageSummary is one entry of a page listing.
type PageSummary struct {
	ID    string
	Title string
}

type pageProperties struct {
	Title struct {
		Title []richText `json:"title"`
	} `json:"title"`
}

type createPagePayload struct {
	Properties pageProperties   `json:"properties"`
	Children   []map[string]any `json:"children"`
}

// CreatePage converts the Markdown content and creates a new page carrying it.
// When ParentID is empty the config default is used, falling back to the
// first page the integration can see.
func (c *Client) CreatePage(ctx context.Context, params PageParams) (Page, error) {
	if params.Title == "" {
		return Page{}, errors.New("page title is required")
	}

	parentID := params.ParentID
	if parentID == "" {
		parentID = c.cfg.ParentID
	}
	if parentID == "" {
		id, err := c.defaultParentID(ctx)
		if err != nil {
			return Page{}, err
		}
		parentID = id
	}

	emoji := params.Emoji
	if emoji == "" {
		emoji = DefaultEmoji
	}

	payload := createPagePayload{Children: blockPayloads(params.Markdown)}
	payload.Properties.Title.Title = []richText{{
		Type: "text",
		Text: textPayload{Content: params.Title},
	}}
	body, err := json.Marshal(payload)
	if err != nil {
		return Page{}, err
	}
	// Conditional fields sit outside the fixed payload shape.
	if body, err = sjson.SetBytes(body, "parent.page_id", parentID); err != nil {
		return Page{}, err
	}
	if body, err = sjson.SetBytes(body, "icon.emoji", emoji); err != nil {
		return Page{}, err
	}

	c.infof("creating page title=%q parent=%s blocks=%d", params.Title, parentID, len(payload.Children))
	resp, err := c.do(ctx, http.MethodPost, "/pages", body)
	if err != nil {
		return Page{}, err
	}

	id := gjson.GetBytes(resp, "id").String()
	url := gjson.GetBytes(resp, "url").String()
	if url == "" && id != "" {
		url = "https://www.notion.so/" + strings.ReplaceAll(id, "-", "")
	}
	return Page{ID: id, URL: url}, nil
}

// AppendBlocks converts the Markdown content and appends it to an existing
// page. It reports how many blocks were sent.
func (c *Client) AppendBlocks(ctx context.Context, pageID, content string) (int, error) {
	if pageID == "" {
		return 0, errors.New("page id is required")
	}

	children := blockPayloads(content)
	body, err := json.Marshal(map[string]any{"children": children})
	if err != nil {
		return 0, err
	}

	c.infof("appending %d blocks to page %s", len(children), pageID)
	if _, err := c.do(ctx, http.MethodPatch, "/blocks/"+pageID+"/children", body); err != nil {
		return 0, err
	}
	return len(children), nil
}

// ListPages returns pages visible to the integration via the search endpoint.
func (c *Client) ListPages(ctx context.Context, parentID string) ([]PageSummary, error) {
	body := []byte(`{"filter":{"property":"object","value":"page"},"page_size":50}`)
	if parentID != "" {
		var err error
		if body, err = sjson.SetBytes(body, "parent.page_id", parentID); err != nil {
			return nil, err
		}
	}

	resp, err := c.do(ctx, http.MethodPost, "/search", body)
	if err != nil {
		return nil, err
	}

	var pages []PageSummary
	for _, result := range gjson.GetBytes(resp, "results").Array() {
		title := result.Get("properties.title.title.0.text.content").String()
		if title == "" {
			title = "Untitled"
		}
		pages = append(pages, PageSummary{
			ID:    result.Get("id").String(),
			Title: title,
		})
	}
	return pages, nil
}

// defaultParentID finds a page to nest under when none was given.
func (c *Client) defaultParentID(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/search",
		[]byte(`{"filter":{"property":"object","value":"page"},"page_size":1}`))
	if err != nil {
		return "", err
	}
	id := gjson.GetBytes(resp, "results.0.id").String()
	if id == "" {
		return "", errors.New("no parent page found; pass --parent-id or share a page with the integration")
	}
	c.infof("using default parent page %s", id)
	return id, nil
}

// do issues one JSON request and returns the response body, turning non-2xx
// statuses into errors carrying the API's message field.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := gjson.GetBytes(data, "message").String()
		if msg == "" {
			msg = truncate(string(data), 200)
		}
		return nil, fmt.Errorf("notion api error %d: %s", resp.StatusCode, msg)
	}
	return data, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
