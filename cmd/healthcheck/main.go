package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(check())
}

func check() int {
	addr := resolveAddr()

	client := &http.Client{Timeout: 2 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://%s/health", addr), nil)
	if err != nil {
		return 1
	}

	resp, err := client.Do(req)
	if err != nil {
		return 1
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}

	return 0
}

// resolveAddr reads the listen address the same way the server does: values
// already in the environment win, then a .env file in the working directory.
func resolveAddr() string {
	_ = godotenv.Load()
	return normalizeAddr(os.Getenv("PASSCHECK_LISTEN_ADDR"), os.Getenv("PORT"))
}

// normalizeAddr ensures the healthcheck connects to loopback rather than the
// bind-all address, and applies the PORT override the server honours.
func normalizeAddr(raw, port string) string {
	const fallback = "127.0.0.1:5500"
	if raw == "" {
		raw = fallback
	}

	host, listenPort, err := net.SplitHostPort(raw)
	if err != nil {
		host, listenPort, _ = net.SplitHostPort(fallback)
	}
	if port != "" {
		listenPort = port
	}

	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, listenPort)
}
