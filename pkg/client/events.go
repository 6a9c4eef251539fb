package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/events"
)

// SubscribeEvents opens the daemon event stream, limited to the given event
// names if any. The returned channel is closed when ctx is cancelled or the
// daemon closes the stream.
func (c *Client) SubscribeEvents(ctx context.Context, names ...string) (<-chan events.Event, error) {
	path := "/events"
	if len(names) > 0 {
		q := url.Values{"name": names}
		path += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to events: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("failed to subscribe to events: got %d", resp.StatusCode)
	}

	ch := make(chan events.Event, 16)
	go func() {
		defer close(ch)
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logrus.Debugf("failed to close event stream: %v", err)
			}
		}()

		var (
			id   uint64
			name string
			data strings.Builder
		)
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			line := sc.Text()
			switch {
			case line == "":
				if name == "" && data.Len() == 0 {
					continue
				}
				ev := events.Event{ID: id, Name: name, Data: json.RawMessage(data.String())}
				id, name = 0, ""
				data.Reset()
				select {
				case ch <- ev:
				case <-ctx.Done():
					return
				}
			case strings.HasPrefix(line, ":"):
				// comment, used for keepalives
			case strings.HasPrefix(line, "id:"):
				n, err := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(line, "id:")), 10, 64)
				if err != nil {
					logrus.Debugf("ignoring bad event id %q", line)
					continue
				}
				id = n
			case strings.HasPrefix(line, "event:"):
				name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				if data.Len() > 0 {
					data.WriteByte('\n')
				}
				data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
			}
		}
		if err := sc.Err(); err != nil && ctx.Err() == nil {
			logrus.Warnf("event stream ended: %v", err)
		}
	}()

	return ch, nil
}
