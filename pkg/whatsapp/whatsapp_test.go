package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticConfig struct {
	cfg Config
}

func (s staticConfig) WhatsAppConfig(ctx context.Context) (Config, error) {
	return s.cfg, nil
}

func TestSendTextCustomGateway(t *testing.T) {
	var gotPath string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(staticConfig{Config{
		Service: "custom",
		APIKey:  "k123",
		APIURL:  srv.URL + "/send?to={number}&msg={message}",
	}})

	err := client.SendText(context.Background(), "+91 98765-43210", "daily report")
	require.NoError(t, err)

	assert.Equal(t, "/send?to=919876543210&msg=daily+report", gotPath)
	assert.Equal(t, "Bearer k123", gotAuth)
}

func TestSendTextGatewayErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(staticConfig{Config{Service: "custom", APIURL: srv.URL}})

	err := client.SendText(context.Background(), "919876543210", "hi")
	assert.Error(t, err)
}

func TestSendTextUnknownService(t *testing.T) {
	client := NewClient(staticConfig{Config{Service: "telegram"}})

	err := client.SendText(context.Background(), "919876543210", "hi")
	assert.Error(t, err)
}

func TestSendTextCustomRequiresURL(t *testing.T) {
	client := NewClient(staticConfig{Config{Service: "custom"}})

	err := client.SendText(context.Background(), "919876543210", "hi")
	assert.Error(t, err)
}

func TestShareLink(t *testing.T) {
	link := ShareLink("+91 98765-43210", "Sales Report: ₹708")

	assert.Contains(t, link, "https://wa.me/919876543210?text=")
	assert.NotContains(t, link, " ")
}
