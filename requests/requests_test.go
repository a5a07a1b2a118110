package requests

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1"},
		{"forwarded first hop", map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1"}, "203.0.113.7"},
		{"junk forwarded falls back to real ip", map[string]string{"X-Forwarded-For": "nope", "X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"junk everywhere", map[string]string{"X-Forwarded-For": "a", "X-Real-IP": "b"}, "192.0.2.1"},
		{"mapped v4", map[string]string{"X-Real-IP": "::ffff:198.51.100.9"}, "198.51.100.9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, ClientIP(r))
		})
	}
}

func TestFullURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://flotech.local/api/reports?x=1", nil)
	assert.Equal(t, "http://flotech.local/api/reports?x=1", FullURL(r))

	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://flotech.local/api/reports?x=1", FullURL(r))

	r.Header.Del("X-Forwarded-Proto")
	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://flotech.local/api/reports?x=1", FullURL(r))
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Budi"}`))
	require.NoError(t, DecodeJSON(w, r, &v))
	assert.Equal(t, "Budi", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("  \n"))
	assert.ErrorIs(t, DecodeJSON(w, r, &v), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodGet, "/", strings.NewReader(`{"name":"x"}`))
	assert.ErrorIs(t, DecodeJSON(w, r, &v), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, DecodeJSON(w, r, &v))
}

func TestPathInt64(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.SetPathValue("id", "12")
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)

	for _, raw := range []string{"0", "-3", "abc", ""} {
		r.SetPathValue("id", raw)
		_, err = PathInt64(r, "id")
		assert.Error(t, err, raw)
	}
}

func TestQueryFlag(t *testing.T) {
	for target, want := range map[string]bool{
		"/?preview=1":     true,
		"/?preview=TRUE":  true,
		"/?preview=yes":   true,
		"/?preview=0":     false,
		"/":               false,
		"/?preview=maybe": false,
	} {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		assert.Equal(t, want, QueryFlag(r, "preview"), target)
	}
}
