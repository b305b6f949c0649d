package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// CloudStatus is the three-way reachability outcome rendered as a badge.
type CloudStatus string

const (
	CloudStatusChecking  CloudStatus = "checking"
	CloudStatusOK        CloudStatus = "ok"
	CloudStatusNeedsInit CloudStatus = "needsInit"
	CloudStatusOffline   CloudStatus = "offline"
)

// CloudProbe checks once at startup whether the optional cloud backend is
// reachable. It feeds a status indicator and nothing else: no data moves,
// no retries, failures never block any workflow.
type CloudProbe struct {
	client *resty.Client
	logger *zap.Logger

	mu     sync.RWMutex
	status CloudStatus
	reason string
}

func NewCloudProbe(baseURL, anonKey string, logger *zap.Logger) *CloudProbe {
	p := &CloudProbe{logger: logger, status: CloudStatusChecking}
	if baseURL == "" || anonKey == "" {
		return p
	}
	p.client = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("apikey", anonKey).
		SetHeader("Authorization", "Bearer "+anonKey).
		SetHeader("Accept", "application/json")
	return p
}

// Check probes the healthcheck resource. A missing resource means the
// backend is reachable but was never initialized; anything else that fails
// degrades to offline.
func (p *CloudProbe) Check(ctx context.Context) {
	if p.client == nil {
		p.set(CloudStatusOffline, "cloud URL or key not configured")
		return
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("select", "id").
		SetQueryParam("limit", "1").
		Get("/rest/v1/healthcheck")
	if err != nil {
		p.set(CloudStatusOffline, err.Error())
		return
	}
	body := strings.ToLower(string(resp.Body()))
	switch {
	case resp.IsSuccess():
		p.set(CloudStatusOK, "")
	case resp.StatusCode() == 404 || strings.Contains(body, "does not exist"):
		p.set(CloudStatusNeedsInit, "")
	default:
		p.set(CloudStatusOffline, fmt.Sprintf("unexpected status %d", resp.StatusCode()))
	}
}

func (p *CloudProbe) set(status CloudStatus, reason string) {
	p.mu.Lock()
	p.status = status
	p.reason = reason
	p.mu.Unlock()
	p.logger.Info("cloud reachability checked",
		zap.String("status", string(status)), zap.String("reason", reason))
}

// Status returns the last probe outcome and, for offline, the reason.
func (p *CloudProbe) Status() (CloudStatus, string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status, p.reason
}
