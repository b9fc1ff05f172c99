package signals

import (
	"context"
	"regexp"
	"strings"

	"dropwatch-backend/lib/htmlutil"
	"dropwatch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Item is one early-warning hit worth telling the watcher about.
type Item struct {
	Source  string
	Title   string
	Url     string
	Details string
}

// Fetcher retrieves auxiliary public pages. These checks run without a
// twitch session; signals.Client is the live implementation.
type Fetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
	Json(ctx context.Context, url string, out any) error
}

// Checker inspects one source for drop signals. Checkers are soft: a
// failing one is skipped for the pass, the rest still run.
type Checker interface {
	Source() string
	Check(ctx context.Context, fetch Fetcher) ([]Item, error)
}

// PageCheck fetches one page and emits a single item when its visible
// text matches the keyword pattern, carrying a few matched-context
// snippets as details.
type PageCheck struct {
	Name        string
	Url         string
	Title       string
	Keyword     *regexp.Regexp
	Context     *regexp.Regexp
	MaxSnippets int
}

func (c PageCheck) Source() string {
	return c.Name
}

func (c PageCheck) Check(ctx context.Context, fetch Fetcher) ([]Item, error) {
	doc, err := fetch.Document(ctx, c.Url)
	if err != nil {
		return nil, err
	}

	text := pageText(doc)
	if !c.Keyword.MatchString(text) {
		return nil, nil
	}

	var snippets []string
	for _, groups := range c.Context.FindAllStringSubmatch(text, c.MaxSnippets) {
		snippets = append(snippets, strings.TrimSpace(groups[0]))
	}

	return []Item{{
		Source:  c.Name,
		Title:   c.Title,
		Url:     c.Url,
		Details: strings.Join(snippets, " … "),
	}}, nil
}

func pageText(doc *goquery.Document) string {
	if len(doc.Nodes) == 0 {
		return ""
	}
	return textutil.CollapseSpaces(htmlutil.GetBlockText(doc.Nodes[0]))
}

// RedditCheck searches a subreddit's listing json for posts whose title
// matches the pattern, one item per post.
type RedditCheck struct {
	Name         string
	Url          string
	TitlePattern *regexp.Regexp
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Permalink string `json:"permalink"`
				Author    string `json:"author"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c RedditCheck) Source() string {
	return c.Name
}

func (c RedditCheck) Check(ctx context.Context, fetch Fetcher) ([]Item, error) {
	var listing redditListing
	err := fetch.Json(ctx, c.Url, &listing)
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Title == "" || !c.TitlePattern.MatchString(post.Title) {
			continue
		}
		author := post.Author
		if author == "" {
			author = "unknown"
		}
		items = append(items, Item{
			Source:  c.Name,
			Title:   post.Title,
			Url:     "https://www.reddit.com" + post.Permalink,
			Details: "Author: u/" + author,
		})
	}
	return items, nil
}

// DefaultChecks covers the sources worth scanning for early signals of
// a rainbow six drops campaign before it shows up on the campaigns
// page itself.
func DefaultChecks() []Checker {
	return []Checker{
		PageCheck{
			Name:        "Ubisoft Drops",
			Url:         "https://www.ubisoft.com/twitchdrops",
			Title:       "R6 mentioned on Ubisoft Twitch Drops",
			Keyword:     regexp.MustCompile(`(?i)(Rainbow\s*Six|R6(\b|:)|Siege)`),
			Context:     regexp.MustCompile(`(?i)(.{0,80}(Rainbow\s*Six|R6|Siege).{0,140})`),
			MaxSnippets: 1,
		},
		PageCheck{
			Name:        "Twitch Campaigns",
			Url:         "https://www.twitch.tv/drops/campaigns",
			Title:       "R6 mentioned on Twitch Drops Campaigns",
			Keyword:     regexp.MustCompile(`(?i)(Rainbow\s*Six|Tom\s*Clancy.*Rainbow\s*Six\s*Siege|R6)`),
			Context:     regexp.MustCompile(`(?i)(.{0,80}(Rainbow\s*Six|Siege).{0,160})`),
			MaxSnippets: 2,
		},
		RedditCheck{
			Name:         "r/Rainbow6",
			Url:          "https://www.reddit.com/r/Rainbow6/search.json?q=drops&restrict_sr=1&sort=new&t=month",
			TitlePattern: regexp.MustCompile(`(?i)\bdrops?\b`),
		},
	}
}
