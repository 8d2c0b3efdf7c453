// Package proxy supplies outbound proxies to the HTTP transport. Two
// modes: disabled, or round-robin over a configured list.
package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
)

type Provider interface {
	Next(ctx context.Context) (string, error)
}

type Mode string

const (
	ModeDisabled Mode = "disabled"
	ModeList     Mode = "list"
)

type Config struct {
	Mode     string
	List     []string
	FailOpen bool
}

func FromConfig(cfg Config, log *slog.Logger) (Provider, bool, error) {
	if log == nil {
		log = slog.Default()
	}
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = string(ModeDisabled)
	}

	switch Mode(mode) {
	case ModeDisabled:
		return nil, cfg.FailOpen, nil

	case ModeList:
		p, err := NewListProvider(cfg.List)
		if err != nil {
			return nil, cfg.FailOpen, err
		}
		log.Info("proxy enabled", "mode", "list", "count", len(cfg.List), "fail_open", cfg.FailOpen)
		return p, cfg.FailOpen, nil

	default:
		return nil, cfg.FailOpen, fmt.Errorf("unknown proxy.mode=%q (expected disabled|list)", cfg.Mode)
	}
}

// FromProvider adapts a Provider into the proxy func net/http.Transport
// expects. With failOpen set, provider failures fall back to a direct
// connection instead of failing the request.
func FromProvider(p Provider, failOpen bool, log *slog.Logger) func(*http.Request) (*url.URL, error) {
	if p == nil {
		return nil
	}
	if log == nil {
		log = slog.Default()
	}

	return func(req *http.Request) (*url.URL, error) {
		ctx := req.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		raw, err := p.Next(ctx)
		if err != nil {
			log.Warn("proxy provider error", "err", err)
			if failOpen {
				return nil, nil
			}
			return nil, err
		}

		raw = strings.TrimSpace(raw)
		if raw == "" {
			if failOpen {
				return nil, nil
			}
			return nil, fmt.Errorf("empty proxy string")
		}

		if !strings.Contains(raw, "://") {
			raw = "http://" + raw
		}

		u, err := url.Parse(raw)
		if err != nil {
			log.Warn("proxy parse failed", "proxy", raw, "err", err)
			if failOpen {
				return nil, nil
			}
			return nil, err
		}

		log.Debug("proxy selected", "host", u.Host)
		return u, nil
	}
}

type listProvider struct {
	items []string
	idx   atomic.Uint64
}

func NewListProvider(list []string) (Provider, error) {
	clean := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		clean = append(clean, s)
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("proxy list is empty")
	}
	return &listProvider{items: clean}, nil
}

func (p *listProvider) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	i := p.idx.Add(1) - 1
	return p.items[int(i%uint64(len(p.items)))], nil
}
