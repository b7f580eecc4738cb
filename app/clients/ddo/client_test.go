package ddo

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const exampleResponse = `<html><body>
<span class="ar"><span class="head"><span class="k">hus</span></span></span>
</body></html>`

type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestQuery(t *testing.T) {
	validURL := "https://ws.dsl.dk/ddo/query?q=hus"
	word := "hus"
	t.Run("success", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validURL, req.URL.String())
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString(exampleResponse)),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := Client{baseURL: DefaultBaseURL, client: httpClient, context: context.TODO()}
		document, err := client.Query(word)
		assert.NoError(t, err)
		assert.Equal(t, exampleResponse, document)
	})
	t.Run("request error", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validURL, req.URL.String())
				return &http.Response{}, http.ErrServerClosed
			}),
		}
		client := Client{baseURL: DefaultBaseURL, client: httpClient, context: context.TODO()}
		document, err := client.Query(word)
		assert.ErrorIs(t, err, http.ErrServerClosed)
		assert.Empty(t, document)
	})
	t.Run("error status", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validURL, req.URL.String())
				return &http.Response{
					StatusCode: 503,
					Status:     "503 Service Unavailable",
					Body:       io.NopCloser(bytes.NewBufferString("unavailable")),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := Client{baseURL: DefaultBaseURL, client: httpClient, context: context.TODO()}
		document, err := client.Query(word)
		assert.Error(t, err)
		assert.Empty(t, document)
	})
	t.Run("custom base URL", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "http://localhost:9999/query?q=hus", req.URL.String())
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString("")),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := Client{baseURL: "http://localhost:9999", client: httpClient, context: context.TODO()}
		_, err := client.Query(word)
		assert.NoError(t, err)
	})
}

func TestNewClient(t *testing.T) {
	client := NewClient(context.TODO(), "")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	client = NewClient(context.TODO(), "http://localhost:9999")
	assert.Equal(t, "http://localhost:9999", client.baseURL)
}
