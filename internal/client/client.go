// Package client is the facade over the HTTP building blocks: transport
// stack, tuned http.Client, and proxy selection.
package client

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sytallax/pizzaparser/internal/client/httpc"
	"github.com/sytallax/pizzaparser/internal/client/proxy"
	"github.com/sytallax/pizzaparser/internal/client/transport"
)

type Transport = transport.Transport

type Options struct {
	HTTPClient *http.Client
	Retries    int
	Workers    int

	BaseDelay time.Duration
	MaxDelay  time.Duration

	Logger *slog.Logger
}

func Build(opts Options) (Transport, error) {
	return transport.Build(transport.Options{
		HTTPClient:  opts.HTTPClient,
		Retries:     opts.Retries,
		Concurrency: opts.Workers,
		BaseDelay:   opts.BaseDelay,
		MaxDelay:    opts.MaxDelay,
		Logger:      opts.Logger,
	})
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return httpc.New(timeout)
}

func NewHTTPClientWithProxy(timeout time.Duration, proxyFunc func(*http.Request) (*url.URL, error)) *http.Client {
	return httpc.NewWithProxy(timeout, proxyFunc)
}

func ProxyFuncFromProvider(p proxy.Provider, failOpen bool, log *slog.Logger) func(*http.Request) (*url.URL, error) {
	return proxy.FromProvider(p, failOpen, log)
}
