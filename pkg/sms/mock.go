package sms

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"OnShift/pkg/logger"
)

// MockClient logs instead of sending. Default outside production; it
// also backs the worker-process tests.
type MockClient struct {
	mu   sync.Mutex
	sent []SendResponse
	seq  int64
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) SendSingle(ctx context.Context, phone, signName, templateCode, templateParam string) (*SendResponse, error) {
	id := atomic.AddInt64(&c.seq, 1)
	resp := &SendResponse{
		MessageID: fmt.Sprintf("mock-%d", id),
		Code:      "OK",
		Provider:  "mock",
		Template:  templateCode,
	}

	c.mu.Lock()
	c.sent = append(c.sent, *resp)
	c.mu.Unlock()

	logger.Logger.Info("Mock SMS sent",
		zap.String("template", templateCode),
		zap.String("template_param", templateParam),
	)
	return resp, nil
}

// Sent returns a copy of everything sent so far.
func (c *MockClient) Sent() []SendResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]SendResponse{}, c.sent...)
}
