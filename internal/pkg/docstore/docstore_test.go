package docstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentcourt/ftpr/internal/pkg/env"
)

func withEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	prev := env.Env
	env.Env = vars
	t.Cleanup(func() { env.Env = prev })
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "cases/abc/final-notice-abc.pdf", ObjectKey("abc", "final-notice"))
}

func TestLoadConfigDisabledByDefault(t *testing.T) {
	withEnv(t, map[string]string{})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "us-east-1", cfg.Region)
}

func TestLoadConfigRequiresCredentialsWhenEnabled(t *testing.T) {
	withEnv(t, map[string]string{"S3_ARCHIVE_ENABLED": "true", "S3_ACCESS_KEY_ID": "key"})

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "S3_SECRET_ACCESS_KEY")
}

func TestSetupDisabledClearsStore(t *testing.T) {
	withEnv(t, map[string]string{})
	SetStore(&Client{})

	require.NoError(t, Setup(context.Background()))
	assert.Nil(t, Get())
}

// fakeS3 accepts HeadBucket and PutObject requests in path style.
func fakeS3(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var puts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			puts = append(puts, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &puts
}

func TestClientPutAndPresign(t *testing.T) {
	withEnv(t, map[string]string{"APP_ENV": "prod"})
	srv, puts := fakeS3(t)

	client, err := NewClient(context.Background(), &Config{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		BucketName:      "ftpr-docs",
		EndpointURL:     srv.URL,
		Enabled:         true,
	})
	require.NoError(t, err)

	key := ObjectKey("case-1", "firmbook")
	require.NoError(t, client.Put(context.Background(), key, []byte("%PDF-1.3"), "application/pdf"))
	require.Len(t, *puts, 1)
	assert.Equal(t, "/ftpr-docs/"+key, (*puts)[0])

	link, err := client.PresignGet(context.Background(), key, 15*time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u.Path, key))
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestNewClientRejectsDisabledConfig(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{})
	assert.Error(t, err)
}
