package sms

import (
	"context"
	"fmt"
	"sync"

	"OnShift/config"
)

// SendResponse is the provider's per-message result.
type SendResponse struct {
	MessageID string // provider message ID (BizId for aliyun)
	Code      string // provider status code
	Message   string // error message, if any
	RequestID string
	Provider  string
	Template  string
}

// Client sends templated SMS through one provider.
type Client interface {
	SendSingle(ctx context.Context, phone, signName, templateCode, templateParam string) (*SendResponse, error)
}

var (
	client     Client
	clientOnce sync.Once
	clientErr  error
)

// Init builds the provider named by SMS_PROVIDER.
func Init() error {
	clientOnce.Do(func() {
		switch config.Cfg.SMSProvider {
		case "aliyun":
			client, clientErr = NewAliyunClient()
		case "mock":
			client = NewMockClient()
		default:
			clientErr = fmt.Errorf("unknown SMS provider: %s", config.Cfg.SMSProvider)
		}
	})
	return clientErr
}

func GetClient() Client {
	if client == nil {
		panic("SMS client not init")
	}
	return client
}
