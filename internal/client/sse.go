package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

// FollowCollection opens a live snapshot stream for one (collection,
// scope) pair. Each value on the channel is the full current document
// list; the first arrives immediately, later ones after each remote
// change. The channel closes when the stream ends; call cancel to
// close it early.
func (c *Client) FollowCollection(ctx context.Context, collection types.Collection, scope types.Scope) (<-chan []store.Document, func(), error) {
	if err := c.ensureToken(); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	streamURL := fmt.Sprintf("%s%s?scope=%s&follow=1", c.baseURL, collectionPath(collection), url.QueryEscape(string(scope)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "text/event-stream")

	// The shared client has a request timeout; streams need their own
	// client without one.
	httpClient := &http.Client{}
	resp, err := httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		cancel()
		return nil, nil, decodeAPIError(resp)
	}

	ch := make(chan []store.Document, 16)
	go func() {
		defer close(ch)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		var dataLines []string

		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				if len(dataLines) == 0 {
					continue
				}
				payload := strings.Join(dataLines, "\n")
				dataLines = dataLines[:0]
				var snapshot SnapshotResponse
				if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
					continue
				}
				items := snapshot.Items
				if items == nil {
					items = []store.Document{}
				}
				select {
				case ch <- items:
				case <-ctx.Done():
					return
				}
				continue
			}
			if strings.HasPrefix(line, "data:") {
				dataLines = append(dataLines, strings.TrimSpace(line[len("data:"):]))
			}
		}
	}()

	return ch, cancel, nil
}
