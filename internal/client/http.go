package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/inbox"
	tea "github.com/charmbracelet/bubbletea"
)

// HTTPClient makes REST calls to a folio server.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g. "http://127.0.0.1:8080").
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Portfolio fetches /api/portfolio.
func (c *HTTPClient) Portfolio() (*content.Portfolio, error) {
	var p content.Portfolio
	if err := c.get("/api/portfolio", &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// SendContact posts a contact message and returns the stored message ID.
// Invalid messages are rejected before any request is made.
func (c *HTTPClient) SendContact(m inbox.Message) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.post("/api/contact", m, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// SendContactCmd wraps SendContact as a Bubble Tea command.
func (c *HTTPClient) SendContactCmd(m inbox.Message) tea.Cmd {
	return func() tea.Msg {
		id, err := c.SendContact(m)
		return ContactSentMsg{ID: id, Err: err}
	}
}

func (c *HTTPClient) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setAuth(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) post(path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %d %s", path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *HTTPClient) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set(TokenHeader, c.token)
	}
}
