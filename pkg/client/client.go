package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Client is a struct for communicating with the unitconv daemon
type Client struct {
	socketPath string
	baseURL    string
	httpClient *http.Client
}

// NewClient is a constructor for creating a new Client talking over a unix
// socket.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		baseURL:    "http://unix",
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					var d net.Dialer
					conn, err := d.DialContext(ctx, "unix", socketPath)
					if err != nil {
						return nil, classifyDialError(err)
					}
					return conn, nil
				},
			},
		},
	}
}

// NewHTTPClient returns a Client talking to a daemon over TCP, e.g.
// "http://127.0.0.1:8077".
func NewHTTPClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					var d net.Dialer
					conn, err := d.DialContext(ctx, network, addr)
					if err != nil {
						return nil, classifyDialError(err)
					}
					return conn, nil
				},
			},
		},
	}
}

func classifyDialError(err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED) {
		return ErrDaemonNotRunning
	}
	if errors.Is(err, fs.ErrPermission) {
		return ErrPermissionDenied
	}
	logrus.Errorf("failed to connect to daemon: %v", err)
	return err
}

// Send is a method for sending a request to the daemon
func (c *Client) Send(method string, path string, data string) (string, error) {
	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"data":   data,
		"unix":   c.socketPath,
	}).Debug("sending request")

	var body io.Reader
	if data != "" {
		body = strings.NewReader(data)
	}

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return "", fmt.Errorf("unknown method: %s", method)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if data != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	respBody := string(b)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, respBody)
	case http.StatusBadRequest:
		return "", fmt.Errorf("%w: %s", ErrBadRequest, respBody)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("got %d: %s", resp.StatusCode, respBody)
	}

	return respBody, nil
}

// Get is a method for sending a GET request to the daemon
func (c *Client) Get(path string) (string, error) {
	return c.Send(http.MethodGet, path, "")
}

// Put is a method for sending a PUT request to the daemon
func (c *Client) Put(path string, data string) (string, error) {
	return c.Send(http.MethodPut, path, data)
}

// Post is a method for sending a POST request to the daemon
func (c *Client) Post(path string, data string) (string, error) {
	return c.Send(http.MethodPost, path, data)
}

// Delete is a method for sending a DELETE request to the daemon
func (c *Client) Delete(path string) (string, error) {
	return c.Send(http.MethodDelete, path, "")
}
