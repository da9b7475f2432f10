//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/scroll"
)

// post sends a JSON body and decodes the JSON response into out. It is safe
// to call from goroutines.
func post(ctx context.Context, client *http.Client, url, body string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: status %d: %s", url, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// TestConcurrentVisitors_SessionsAreIsolated scrolls many visitors to
// different sections at once and checks each keeps its own active section
// and theme.
func TestConcurrentVisitors_SessionsAreIsolated(t *testing.T) {
	s := newStack(t, testConfig())
	sections := domain.Sections()

	const visitors = 20

	clients := make([]*http.Client, visitors)
	for i := range clients {
		clients[i] = newVisitor(t)
	}

	g, ctx := errgroup.WithContext(context.Background())

	for i, client := range clients {
		g.Go(func() error {
			want := sections[i%len(sections)].ID
			scrollY := float64(i%len(sections)) * 800

			for range 10 {
				var frame scroll.Frame
				if err := post(ctx, client, s.server.URL+"/api/v1/scroll", measurement(scrollY), &frame); err != nil {
					return err
				}

				if frame.Active != want {
					return fmt.Errorf("visitor %d: active %s, want %s", i, frame.Active, want)
				}
			}

			if i%2 == 1 {
				return post(ctx, client, s.server.URL+"/api/v1/theme/toggle", "", nil)
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())

	assert.Equal(t, visitors, s.sessions.Len())

	for i, client := range clients {
		status, body := send(t, client, http.MethodGet, s.server.URL+"/api/v1/theme", "", "")
		require.Equal(t, http.StatusOK, status)

		want := domain.ThemeLight
		if i%2 == 1 {
			want = domain.ThemeDark
		}
		assert.Contains(t, body, `"theme":"`+want.String()+`"`, "visitor %d", i)
	}
}

// TestConcurrentVisitors_SameSession hammers one session from many
// goroutines. No theme toggle may be lost.
func TestConcurrentVisitors_SameSession(t *testing.T) {
	s := newStack(t, testConfig())
	client := newVisitor(t)

	status, _ := send(t, client, http.MethodGet, s.server.URL+"/", "", "")
	require.Equal(t, http.StatusOK, status)

	var toggles atomic.Int32

	g, ctx := errgroup.WithContext(context.Background())
	for i := range 16 {
		g.Go(func() error {
			if i%4 == 0 {
				toggles.Add(1)
				return post(ctx, client, s.server.URL+"/api/v1/theme/toggle", "", nil)
			}

			return post(ctx, client, s.server.URL+"/api/v1/scroll", measurement(float64(i%3)*800), nil)
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, 1, s.sessions.Len())

	// An even number of toggles lands back on light.
	require.Equal(t, int32(4), toggles.Load())
	status, body := send(t, client, http.MethodGet, s.server.URL+"/api/v1/theme", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"theme":"light"`)
}

// TestConcurrentVisitors_Metrics checks the session gauge and frame counter
// after a burst of traffic.
func TestConcurrentVisitors_Metrics(t *testing.T) {
	s := newStack(t, testConfig())

	g, ctx := errgroup.WithContext(context.Background())
	for range 5 {
		client := newVisitor(t)
		g.Go(func() error {
			return post(ctx, client, s.server.URL+"/api/v1/scroll", measurement(0), nil)
		})
	}
	require.NoError(t, g.Wait())

	status, body := send(t, newVisitor(t), http.MethodGet, s.server.URL+"/-/metrics", "", "")
	require.Equal(t, http.StatusOK, status)

	assert.Contains(t, body, "portfolio_active_sessions 5")
	assert.Contains(t, body, `portfolio_scroll_frames_total{transport="http"} 5`)
}
