package httpserver_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"movietrack/pkg/config"

	"github.com/stretchr/testify/require"
)

const (
	testUsername = "pedro"
	testPassword = "basic"
)

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Username = testUsername
	cfg.Auth.Password = testPassword
	return cfg
}

func withBasicAuth(req *http.Request) *http.Request {
	token := base64.StdEncoding.EncodeToString([]byte(testUsername + ":" + testPassword))
	req.Header.Set("Authorization", "Basic "+token)
	return req
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "response should be an API envelope: %s", rec.Body.String())
	return resp
}

func decodeAPIResult(t testing.TB, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), "failed to decode result")
}
