package hcaptcha

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("response") == "good" && r.PostForm.Get("secret") == "sec" {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	prev := Endpoint
	Endpoint = srv.URL
	defer func() { Endpoint = prev }()
	t.Setenv("HCAPTCHA_SECRET", "sec")

	assert.True(t, Enabled())

	ok, err := Verify("good")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("bad")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "invalid-input-response")

	_, err = Verify("")
	assert.Error(t, err)
}

func TestDisabledWithoutSecret(t *testing.T) {
	t.Setenv("HCAPTCHA_SECRET", "")
	assert.False(t, Enabled())
}
