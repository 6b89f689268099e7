// Package probe runs best-effort liveness checks against homelab services.
//
// A probe only answers "did something respond on this port/path". Any HTTP
// response, whatever its status, and any JSON-RPC reply, including a JSON-RPC
// error, counts as reachable. Only transport failures (refused, timeout, DNS,
// handshake) count as not running. Probes never return errors to the caller.
package probe

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 3 * time.Second

// Result is the outcome of one probe.
type Result struct {
	Service    string              `json:"service"`
	Stack      string              `json:"stack"`
	Method     catalog.ProbeMethod `json:"method"`
	URL        string              `json:"url"`
	Reachable  bool                `json:"reachable"`
	StatusCode int                 `json:"status_code,omitempty"`
	Latency    time.Duration       `json:"-"`
	LatencyMs  int64               `json:"latency_ms"`
	Detail     string              `json:"detail,omitempty"`
}

// State renders the two-state classification.
func (r Result) State() string {
	if r.Reachable {
		return "running"
	}
	return "not running"
}

// Prober issues probes against a single host.
type Prober struct {
	Host    string
	Timeout time.Duration

	httpClient *http.Client
	tlsClient  *http.Client
}

// New creates a prober. An empty host means 127.0.0.1; a zero timeout means DefaultTimeout.
func New(host string, timeout time.Duration) *Prober {
	if host == "" {
		host = "127.0.0.1"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		Host:    host,
		Timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
		},
		tlsClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
				// Homelab proxies terminate TLS with self-signed or internal-CA certs.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// URL builds the probe URL for svc.
func (p *Prober) URL(svc catalog.Service) string {
	scheme := "http"
	if svc.Method == catalog.MethodTLS {
		scheme = "https"
	}
	path := svc.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return scheme + "://" + net.JoinHostPort(p.Host, strconv.Itoa(svc.Port)) + path
}

// Probe checks one service. It never returns an error: failures are folded
// into a not-running Result.
func (p *Prober) Probe(ctx context.Context, svc catalog.Service) Result {
	res := Result{
		Service: svc.Name,
		Stack:   svc.Stack,
		Method:  svc.Method,
		URL:     p.URL(svc),
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()
	switch svc.Method {
	case catalog.MethodJSONRPC:
		p.probeJSONRPC(ctx, svc, &res)
	case catalog.MethodTLS:
		p.probeHTTP(ctx, p.tlsClient, &res)
	default:
		p.probeHTTP(ctx, p.httpClient, &res)
	}
	res.Latency = time.Since(start)
	res.LatencyMs = res.Latency.Milliseconds()
	return res
}

// Sweep probes every service in order, one at a time. A failing probe never
// prevents the remaining ones from running.
func (p *Prober) Sweep(ctx context.Context, services []catalog.Service) []Result {
	results := make([]Result, 0, len(services))
	for _, svc := range services {
		results = append(results, p.Probe(ctx, svc))
	}
	return results
}

func (p *Prober) probeHTTP(ctx context.Context, client *http.Client, res *Result) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
	if err != nil {
		res.Detail = err.Error()
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		res.Detail = failureReason(err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	res.Reachable = true
	res.StatusCode = resp.StatusCode
	res.Detail = resp.Status
}

func (p *Prober) probeJSONRPC(ctx context.Context, svc catalog.Service, res *Result) {
	client, err := rpc.DialOptions(ctx, res.URL, rpc.WithHTTPClient(p.httpClient))
	if err != nil {
		res.Detail = err.Error()
		return
	}
	defer client.Close()

	method := svc.ProbeRPCMethod()
	var raw json.RawMessage
	err = client.CallContext(ctx, &raw, method)
	if err == nil {
		res.Reachable = true
		res.StatusCode = http.StatusOK
		res.Detail = describeRPCResult(method, raw)
		return
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		res.Reachable = true
		res.StatusCode = httpErr.StatusCode
		res.Detail = httpErr.Status
		return
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		res.Reachable = true
		res.StatusCode = http.StatusOK
		res.Detail = fmt.Sprintf("rpc error %d: %s", rpcErr.ErrorCode(), rpcErr.Error())
		return
	}
	if isTransportError(err) {
		res.Detail = failureReason(err)
		return
	}
	// The server answered with something that isn't JSON-RPC.
	res.Reachable = true
	res.Detail = "non-JSON-RPC reply: " + err.Error()
}

func describeRPCResult(method string, raw json.RawMessage) string {
	var height hexutil.Uint64
	if err := json.Unmarshal(raw, &height); err == nil {
		return fmt.Sprintf("block %d", uint64(height))
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err == nil {
		return fmt.Sprintf("height %d", n)
	}
	return method + " ok"
}

func isTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func failureReason(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	default:
		return err.Error()
	}
}

// Summary counts reachable services in a sweep.
type Summary struct {
	Healthy int `json:"healthy"`
	Total   int `json:"total"`
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Reachable {
			s.Healthy++
		}
	}
	return s
}

// String renders "N/M services healthy".
func (s Summary) String() string {
	return fmt.Sprintf("%d/%d services healthy", s.Healthy, s.Total)
}
