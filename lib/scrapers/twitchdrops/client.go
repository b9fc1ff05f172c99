package twitchdrops

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"dropwatch-backend/lib/htmlutil"
	"dropwatch-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://www.twitch.tv"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
	State   SessionState
}

// NewClient builds an http client carrying the recorded twitch session
// cookies. The campaigns page only renders campaign rows for a
// logged-in session, so the cookie jar is not optional.
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	jar.SetCookies(baseUrl, opts.State.HttpCookies())
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/twitchdrops/http")

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

func (c *Client) fetchDocument(ctx context.Context, path string, query url.Values) (*goquery.Document, error) {
	req := c.Http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	res, err := req.Get(path)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", res.StatusCode(), path)
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// CampaignsPage fetches the drops campaigns page and wraps it as a
// Page. The result is a static document: scrolling is a no-op and the
// scroll height never grows, so ScrollToEnd settles immediately.
func (c *Client) CampaignsPage(ctx context.Context) (Page, error) {
	ctx, span := tracer.Start(ctx, "client:CampaignsPage")
	defer span.End()

	doc, err := c.fetchDocument(ctx, "/drops/campaigns", nil)
	if err != nil {
		return nil, err
	}
	return NewDocumentPage(doc, c.BaseUrl), nil
}

// CategoryPage fetches a game category's directory page, most-viewed
// streams first.
func (c *Client) CategoryPage(ctx context.Context, slug string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:CategoryPage")
	defer span.End()

	query := url.Values{}
	query.Set("sort", "VIEWER_COUNT")
	return c.fetchDocument(ctx, "/directory/category/"+url.PathEscape(slug), query)
}

// DocumentPage adapts a statically rendered document to the Page
// boundary so the extractor can run over saved or pre-rendered HTML the
// same way it runs over a live session.
type DocumentPage struct {
	doc    *goquery.Document
	base   *url.URL
	height int
}

func NewDocumentPage(doc *goquery.Document, base *url.URL) *DocumentPage {
	return &DocumentPage{
		doc:    doc,
		base:   base,
		height: len(doc.Find("body *").Nodes),
	}
}

func (p *DocumentPage) ScrollHeight(ctx context.Context) (int, error) {
	return p.height, nil
}

func (p *DocumentPage) Scroll(ctx context.Context, dy int) error {
	return nil
}

func (p *DocumentPage) Rows(ctx context.Context) ([]Row, error) {
	root := p.doc.Find("div[class*='drops-root__content']").First()
	if len(root.Nodes) == 0 {
		root = p.doc.Find("body").First()
	}

	var rows []Row
	root.ChildrenFiltered("div").Each(func(_ int, sel *goquery.Selection) {
		rows = append(rows, documentRow{sel: sel, base: p.base})
	})
	return rows, nil
}

type documentRow struct {
	sel  *goquery.Selection
	base *url.URL
}

// a static document has no collapsed panels left to open
func (r documentRow) Expand(ctx context.Context) error {
	return nil
}

func (r documentRow) Text(ctx context.Context) (string, error) {
	if len(r.sel.Nodes) == 0 {
		return "", nil
	}
	return htmlutil.GetBlockText(r.sel.Nodes[0]), nil
}

func (r documentRow) Links(ctx context.Context) ([]string, error) {
	anchors := htmlutil.GetAnchors(ctx, r.sel.Find("a[href]"), r.base)
	links := make([]string, len(anchors))
	for i, a := range anchors {
		links[i] = a.Href
	}
	return links, nil
}
