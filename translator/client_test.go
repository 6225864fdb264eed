package translator

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-cms/models"
)

func TestTranslateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, "3.0", r.URL.Query().Get("api-version"))
		assert.Equal(t, "en", r.URL.Query().Get("from"))
		assert.Equal(t, "es", r.URL.Query().Get("to"))
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "westeurope", r.Header.Get("Ocp-Apim-Subscription-Region"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"translations":[{"text":"hola mundo","to":"es"}]}]`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "westeurope", 5*time.Second)
	got, err := client.Translate("hello world", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "hola mundo", got)
}

func TestTranslateEmptyText(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", "key", "", time.Second)
	got, err := client.Translate("", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestTranslateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "key", "", time.Second)
	_, err := client.Translate("hello", "en", "es")
	assert.Error(t, err)
	assert.True(t, models.IsTransientDependency(err))
	assert.Contains(t, err.Error(), "429")
}

func TestTranslateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "key", "", time.Second)
	_, err := client.Translate("hello", "en", "es")
	assert.True(t, models.IsTransientDependency(err))
}

func TestTranslateEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "key", "", time.Second)
	_, err := client.Translate("hello", "en", "es")
	assert.True(t, models.IsTransientDependency(err))
}

func TestTranslateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "key", "", 50*time.Millisecond)
	_, err := client.Translate("hello", "en", "es")
	assert.Error(t, err)
	assert.True(t, models.IsTransientDependency(err))
}

func TestTranslateUnreachable(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", "key", "", time.Second)
	_, err := client.Translate("hello", "en", "es")
	assert.Error(t, err)
	assert.True(t, models.IsTransientDependency(err))
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Translate("hello", "en", "es")
	assert.True(t, models.IsTransientDependency(err))
}
