package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultImgBBEndpoint = "https://api.imgbb.com/1/upload"

// ImgBBClient uploads images to ImgBB.
type ImgBBClient struct {
	HTTP     *http.Client
	Endpoint string
	APIKey   string
}

func NewImgBBClient(apiKey string) (*ImgBBClient, error) {
	if apiKey == "" {
		return nil, errors.New("imgbb: API key is required")
	}
	return &ImgBBClient{
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Endpoint: defaultImgBBEndpoint,
		APIKey:   apiKey,
	}, nil
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
}

func (c *ImgBBClient) UploadImage(ctx context.Context, img *DataURI) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", errors.New("imgbb: empty image")
	}

	form := url.Values{}
	form.Set("image", base64.StdEncoding.EncodeToString(img.Data))

	endpoint := c.Endpoint + "?" + url.Values{"key": {c.APIKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var out imgbbResponse
	if err := c.doJSON(req, &out); err != nil {
		return "", fmt.Errorf("imgbb upload: %w", err)
	}
	if out.Data.URL == "" {
		return "", errors.New("imgbb upload: response has no url")
	}
	return out.Data.URL, nil
}

func (c *ImgBBClient) doJSON(req *http.Request, dest any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
