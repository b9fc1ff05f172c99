package signals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dropwatch-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Client fetches the checks' public pages. No session cookies here,
// every source is anonymous.
type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 20)
	telemetry.InstrumentResty(client, "services/signals/http")

	return &Client{http: client}
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", res.StatusCode(), url)
	}
	return res.Body(), nil
}

func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(body))
}

func (c *Client) Json(ctx context.Context, url string, out any) error {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
