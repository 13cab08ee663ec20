package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vibhu2208/hrms-backend-sub007/utils"
)

var ErrNoToken = errors.New("login response carried no token")

const excerptLimit = 300

// Client talks to a running HRMS server the way the web app does.
type Client struct {
	baseURL  string
	http     *http.Client
	token    string
	tenantID string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithTenant sets the tenant sent on login and in the X-Tenant-ID header.
func (c *Client) WithTenant(tenantID string) *Client {
	c.tenantID = tenantID
	return c
}

func (c *Client) Token() string {
	return c.token
}

type Result struct {
	Method   string        `json:"method"`
	Path     string        `json:"path"`
	Status   int           `json:"status"`
	Duration time.Duration `json:"duration"`
	Excerpt  string        `json:"excerpt"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	Data        struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	} `json:"data"`
	Message string `json:"message"`
}

func (r loginResponse) token() string {
	for _, t := range []string{r.Token, r.AccessToken, r.Data.Token, r.Data.AccessToken} {
		if t != "" {
			return t
		}
	}
	return ""
}

// Login posts the credentials and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (Result, error) {
	payload := map[string]string{"email": email, "password": password}
	if c.tenantID != "" {
		payload["tenantId"] = c.tenantID
	}
	res, body, err := c.send(ctx, http.MethodPost, "/api/auth/login", payload)
	if err != nil {
		return res, err
	}
	if res.Status != http.StatusOK {
		return res, fmt.Errorf("login returned %d: %s", res.Status, res.Excerpt)
	}
	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return res, fmt.Errorf("decode login response: %w", err)
	}
	if c.token = lr.token(); c.token == "" {
		return res, ErrNoToken
	}
	return res, nil
}

// Do issues an authorized request. Non-2xx statuses are not errors; the
// caller compares Result.Status with what it expects.
func (c *Client) Do(ctx context.Context, method, path string, body any) (Result, error) {
	res, _, err := c.send(ctx, method, path, body)
	return res, err
}

// SendOffer only accepts an ObjectID hex so the argument cannot change the
// endpoint.
func (c *Client) SendOffer(ctx context.Context, onboardingID string) (Result, error) {
	id, err := utils.Oid(onboardingID)
	if err != nil {
		return Result{Method: http.MethodPost}, err
	}
	return c.Do(ctx, http.MethodPost, "/api/onboarding/"+id.Hex()+"/send-offer", map[string]any{})
}

func (c *Client) send(ctx context.Context, method, path string, body any) (Result, []byte, error) {
	res := Result{Method: method, Path: path}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return res, nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return res, nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.tenantID != "" {
		req.Header.Set("X-Tenant-ID", c.tenantID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return res, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	res.Duration = time.Since(start)
	res.Status = resp.StatusCode
	if err != nil {
		return res, nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	res.Excerpt = excerpt(data)
	return res, data, nil
}

func excerpt(b []byte) string {
	s := strings.Join(strings.Fields(string(b)), " ")
	if len(s) <= excerptLimit {
		return s
	}
	cut := excerptLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
