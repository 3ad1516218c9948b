package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"ContentFront/internal/modules/content/domain/entity"
	"ContentFront/pkg/xerr"
	"ContentFront/pkg/zlog"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// 上游响应体读取上限
const maxBodyBytes = 1 << 20

// DefaultRecord 上游响应结构不合法时返回的内容
var DefaultRecord = entity.ContentRecord{Title: "Default Title", Text: "Default Text"}

// ContentClient 调用上游内容服务，实现 repository.ContentFetcher
type ContentClient struct {
	address string
	client  *retryablehttp.Client
}

// NewContentClient address 为空时构造不报错，每次 GetContent 返回 ConfigurationError
func NewContentClient(address string, timeout time.Duration) *ContentClient {
	return &ContentClient{
		address: address,
		client:  newHTTPClient(timeout),
	}
}

// newHTTPClient 单次尝试、不重试，失败时原样返回底层错误
func newHTTPClient(timeout time.Duration) *retryablehttp.Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout

	client := retryablehttp.NewClient()
	client.HTTPClient = hc
	client.RetryMax = 0
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		return false, nil
	}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = leveledLogger{}
	return client
}

func (c *ContentClient) GetContent(ctx context.Context, session entity.SessionInfo) (entity.ContentRecord, error) {
	if c.address == "" {
		return entity.ContentRecord{}, xerr.NewConfigurationError("API_ADDRESS", "upstream address is not set")
	}
	if session == nil {
		session = entity.SessionInfo{}
	}

	body, err := json.Marshal(session)
	if err != nil {
		return entity.ContentRecord{}, fmt.Errorf("encode session: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.address, body)
	if err != nil {
		return entity.ContentRecord{}, xerr.NewConfigurationError("API_ADDRESS", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.ContentRecord{}, &xerr.TransportError{Kind: classify(err), URL: c.address, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return entity.ContentRecord{}, &xerr.TransportError{
			Kind:       xerr.TransportStatus,
			URL:        c.address,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return entity.ContentRecord{}, &xerr.TransportError{Kind: classify(err), URL: c.address, Err: err}
	}

	record, err := decodeRecord(payload)
	if err != nil {
		zlog.Warn("invalid upstream content response, using default content",
			zap.String("url", c.address),
			zap.Error(err),
		)
		return DefaultRecord, nil
	}
	return record, nil
}

// decodeRecord 要求响应为 JSON 对象，且 title、text 均为字符串
func decodeRecord(payload []byte) (entity.ContentRecord, error) {
	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return entity.ContentRecord{}, &xerr.MalformedResponseError{Reason: "body is not valid JSON: " + err.Error()}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return entity.ContentRecord{}, &xerr.MalformedResponseError{Reason: "expected a JSON object, got " + jsonKind(raw)}
	}

	title, err := stringField(obj, "title")
	if err != nil {
		return entity.ContentRecord{}, err
	}
	text, err := stringField(obj, "text")
	if err != nil {
		return entity.ContentRecord{}, err
	}
	return entity.ContentRecord{Title: title, Text: text}, nil
}

func stringField(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", &xerr.MalformedResponseError{Reason: "missing required field " + key}
	}
	s, ok := v.(string)
	if !ok {
		return "", &xerr.MalformedResponseError{Reason: fmt.Sprintf("field %s is %s, not a string", key, jsonKind(v))}
	}
	return s, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// classify 超时优先判断：拨号超时按超时处理，而不是连接失败
func classify(err error) xerr.TransportKind {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return xerr.TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return xerr.TransportConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return xerr.TransportConnection
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return xerr.TransportConnection
	}
	return xerr.TransportOther
}

// leveledLogger 把 retryablehttp 的日志接到 zlog
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	zlog.L().Sugar().Warnw("upstream "+msg, keysAndValues...)
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	zlog.L().Sugar().Infow("upstream "+msg, keysAndValues...)
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	zlog.L().Sugar().Debugw("upstream "+msg, keysAndValues...)
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	zlog.L().Sugar().Warnw("upstream "+msg, keysAndValues...)
}
