package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/weversonbarbieri/accountant-pdf-extract/iox"
	"github.com/weversonbarbieri/accountant-pdf-extract/metrics"
)

// listClass marks the checkbox of each server-side file on the index page.
const listClass = "file-checkbox"

// ListFiles returns the server-side JSON files in page order.
//
// The backend has no listing endpoint; the index page renders one
// <input class="file-checkbox" data-filename="..."> per file, which is
// what a page reload shows.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	const op = metrics.EndpointList

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(c.config.ListPath), nil)
	if err != nil {
		return nil, c.transportError(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncTransportError()
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Op: op, Err: &StatusError{Code: resp.StatusCode, Status: resp.Status}}
	}

	names, err := parseFileList(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.metrics.IncTransportError()
		return nil, &TransportError{Op: op, Err: err}
	}
	return names, nil
}

// parseFileList extracts data-filename from every file checkbox.
func parseFileList(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	var names []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "input" &&
			slices.Contains(strings.Fields(attr(n, "class")), listClass) {
			if name := attr(n, "data-filename"); name != "" {
				names = append(names, name)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return names, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
