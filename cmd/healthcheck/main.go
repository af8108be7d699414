// Command healthcheck probes the running server's health endpoint and exits
// non-zero when it is unreachable or reports the service as down.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

const (
	defaultAddr  = "127.0.0.1:8080"
	probeTimeout = 2 * time.Second
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	url := fmt.Sprintf("http://%s/api/v1/health", normalizeAddr(os.Getenv("REPOBROWSER_LISTEN_ADDR")))
	if err := probe(ctx, &http.Client{Timeout: probeTimeout}, url); err != nil {
		fmt.Fprintln(os.Stderr, "healthcheck:", err)
		os.Exit(1)
	}
}

// probe fetches url and fails unless the body reports "ok" or "degraded".
func probe(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode health response (HTTP %d): %w", resp.StatusCode, err)
	}

	switch body.Status {
	case "ok", "degraded":
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected HTTP %d", resp.StatusCode)
		}
		return nil
	case "":
		return errors.New("health response has no status")
	default:
		return fmt.Errorf("service is %s", body.Status)
	}
}

// normalizeAddr ensures the healthcheck connects to loopback rather than the
// bind-all address. Docker containers bind 0.0.0.0 but the healthcheck runs
// inside the same container, so loopback is reachable and more correct.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
