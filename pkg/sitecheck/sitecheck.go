// Package sitecheck probes the domains referenced by votesite entries.
// Reports feed the manual review that flips a preset's verified flag;
// nothing here mutates the catalog.
package sitecheck

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxBodyBytes caps how much of a probed page is read for parsing.
const maxBodyBytes = 1 << 20

type Checker struct {
	client *http.Client
}

func NewChecker(timeout time.Duration) *Checker {
	return &Checker{
		client: &http.Client{Timeout: timeout},
	}
}

// Report is the outcome of probing one domain.
type Report struct {
	Domain      string
	URL         string // the URL that answered
	StatusCode  int
	Title       string
	Description string
	Error       string // non-empty when no scheme produced a response
}

// Check probes a domain over https first, falling back to http. A
// non-2xx status still counts as an answer; only transport failures on
// both schemes produce an error report.
func (c *Checker) Check(domain string) Report {
	var lastErr error
	for _, scheme := range []string{"https", "http"} {
		url := scheme + "://" + domain + "/"
		resp, err := c.client.Get(url)
		if err != nil {
			lastErr = err
			continue
		}

		report := Report{
			Domain:     domain,
			URL:        url,
			StatusCode: resp.StatusCode,
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		resp.Body.Close()
		if err != nil {
			return report
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
		if err != nil {
			return report
		}
		report.Title = strings.TrimSpace(doc.Find("title").First().Text())
		if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
			report.Description = strings.TrimSpace(desc)
		}
		return report
	}

	return Report{
		Domain: domain,
		Error:  fmt.Sprintf("unreachable: %v", lastErr),
	}
}
