package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/LdDl/rsa-signer/httpapi/codes"
	"github.com/LdDl/rsa-signer/keystore"
	"github.com/LdDl/rsa-signer/signature"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, keystore.Config) {
	dir := t.TempDir()
	cfg := keystore.Config{
		PrivateKeyPath: filepath.Join(dir, "certificates", "private_key.pem"),
		PublicKeyPath:  filepath.Join(dir, "certificates", "public_key.pem"),
	}
	key, err := keystore.GenerateKeyPair(keystore.MinKeyBits)
	require.NoError(t, err, "Failed to generate key pair")
	require.NoError(t, keystore.WriteKeyPair(cfg, key, false), "Failed to write key pair")

	srv := httptest.NewServer(NewHandler(signature.NewService(keystore.New(cfg))).Routes())
	t.Cleanup(srv.Close)
	return srv, cfg
}

func postJSON(t *testing.T, url string, body string) (int, []byte, http.Header) {
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data, resp.Header
}

func signVia(t *testing.T, srv *httptest.Server, message string) SignResponse {
	body, err := json.Marshal(map[string]string{"data": message})
	require.NoError(t, err)
	status, data, _ := postJSON(t, srv.URL+"/sign", string(body))
	require.Equal(t, http.StatusOK, status, "sign failed: %s", data)
	var resp SignResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func verifyVia(t *testing.T, srv *httptest.Server, message, sig string) (int, []byte) {
	body, err := json.Marshal(map[string]string{"data": message, "signature": sig})
	require.NoError(t, err)
	status, data, _ := postJSON(t, srv.URL+"/verify", string(body))
	return status, data
}

func assertGenericError(t *testing.T, status int, data []byte) {
	t.Helper()
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"message":"An internal error occured"}`, string(data))
}

// go test -timeout 30s -run ^TestSignVerifyHTTP$ github.com/LdDl/rsa-signer/httpapi
func TestSignVerifyHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	signed := signVia(t, srv, "hello world")
	assert.Equal(t, "hello world", signed.Data)
	assert.NotEmpty(t, signed.Signature)

	status, data := verifyVia(t, srv, "hello world", signed.Signature)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"verify":true}`, string(data))

	status, data = verifyVia(t, srv, "hello worldx", signed.Signature)
	require.Equal(t, http.StatusOK, status, "Tampered message is a negative result, not an error")
	assert.JSONEq(t, `{"verify":false}`, string(data))
}

// go test -timeout 30s -run ^TestSignInvalidBodies$ github.com/LdDl/rsa-signer/httpapi
func TestSignInvalidBodies(t *testing.T) {
	srv, _ := newTestServer(t)

	bodies := []string{
		`{"data":""}`,
		`{"data":"   "}`,
		`{"data":null}`,
		`{"data":42}`,
		`{"data":["a"]}`,
		`{}`,
		`not json`,
		``,
	}
	for _, body := range bodies {
		status, data, _ := postJSON(t, srv.URL+"/sign", body)
		assertGenericError(t, status, data)
	}
}

// go test -timeout 30s -run ^TestVerifyInvalidBodies$ github.com/LdDl/rsa-signer/httpapi
func TestVerifyInvalidBodies(t *testing.T) {
	srv, _ := newTestServer(t)

	bodies := []string{
		`{"signature":"AAAA"}`,
		`{"data":"hello"}`,
		`{"data":1,"signature":"AAAA"}`,
		`{"data":"hello","signature":false}`,
		`{"data":"hello","signature":"%%%"}`,
	}
	for _, body := range bodies {
		status, data, _ := postJSON(t, srv.URL+"/verify", body)
		assertGenericError(t, status, data)
	}
}

// go test -timeout 30s -run ^TestVerifyWrongLengthHTTP$ github.com/LdDl/rsa-signer/httpapi
func TestVerifyWrongLengthHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	signed := signVia(t, srv, "hello")
	truncated := signed.Signature[:len(signed.Signature)-8]

	for _, sig := range []string{"", "AAAA", truncated} {
		status, data := verifyVia(t, srv, "hello", sig)
		require.Equal(t, http.StatusOK, status, "signature %q: %s", sig, data)
		assert.JSONEq(t, `{"verify":false}`, string(data))
	}
}

// go test -timeout 30s -run ^TestHealth$ github.com/LdDl/rsa-signer/httpapi
func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var body codes.Success200
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

// go test -timeout 30s -run ^TestMissingKeyFiles$ github.com/LdDl/rsa-signer/httpapi
func TestMissingKeyFiles(t *testing.T) {
	dir := t.TempDir()
	svc := signature.NewService(keystore.New(keystore.Config{
		PrivateKeyPath: filepath.Join(dir, "missing.pem"),
		PublicKeyPath:  filepath.Join(dir, "missing.pub"),
	}))
	srv := httptest.NewServer(NewHandler(svc).Routes())
	defer srv.Close()

	for i := 0; i < 3; i++ {
		status, data, _ := postJSON(t, srv.URL+"/sign", `{"data":"hello"}`)
		assertGenericError(t, status, data)

		status, data, _ = postJSON(t, srv.URL+"/verify", `{"data":"hello","signature":"AAAA"}`)
		assertGenericError(t, status, data)
	}

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "Server should keep serving after key failures")
}

// go test -timeout 30s -run ^TestMethodNotAllowed$ github.com/LdDl/rsa-signer/httpapi
func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/sign", "/verify"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.JSONEq(t, `{"message":"method not allowed"}`, string(data))
	}
}

// go test -timeout 30s -run ^TestRequestID$ github.com/LdDl/rsa-signer/httpapi
func TestRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	_, _, header := postJSON(t, srv.URL+"/sign", `{"data":"hello"}`)
	_, err := uuid.Parse(header.Get(RequestIDHeader))
	assert.NoError(t, err, "Server should assign a UUID request ID")

	id := uuid.New().String()
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader), "Valid client ID should be kept")

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(RequestIDHeader), "Invalid client ID should be replaced")
}

// go test -timeout 30s -run ^TestIndexPage$ github.com/LdDl/rsa-signer/httpapi
func TestIndexPage(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(data), "<title>RSA Signer</title>")

	resp, err = http.Get(srv.URL + "/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// go test -timeout 30s -run ^TestDocs$ github.com/LdDl/rsa-signer/httpapi
func TestDocs(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/docs/swagger.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc), "swagger.json must be valid JSON")
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/sign")
	assert.Contains(t, paths, "/verify")
}

// go test -timeout 30s -run ^TestRecoverMiddleware$ github.com/LdDl/rsa-signer/httpapi
func TestRecoverMiddleware(t *testing.T) {
	h := withRequestID(withRecover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sign", bytes.NewReader(nil)))

	assertGenericError(t, rec.Code, rec.Body.Bytes())
}

// go test -timeout 60s -run ^TestConcurrentHTTP$ github.com/LdDl/rsa-signer/httpapi
func TestConcurrentHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	const workers = 12
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := fmt.Sprintf("payload-%d", i)

			body, _ := json.Marshal(map[string]string{"data": msg})
			resp, err := http.Post(srv.URL+"/sign", "application/json", bytes.NewReader(body))
			if err != nil {
				errs <- err
				return
			}
			var signed SignResponse
			err = json.NewDecoder(resp.Body).Decode(&signed)
			resp.Body.Close()
			if err != nil {
				errs <- err
				return
			}
			if signed.Data != msg {
				errs <- fmt.Errorf("worker %d got data %q", i, signed.Data)
				return
			}

			body, _ = json.Marshal(map[string]string{"data": msg, "signature": signed.Signature})
			resp, err = http.Post(srv.URL+"/verify", "application/json", bytes.NewReader(body))
			if err != nil {
				errs <- err
				return
			}
			var verified VerifyResponse
			err = json.NewDecoder(resp.Body).Decode(&verified)
			resp.Body.Close()
			if err != nil {
				errs <- err
				return
			}
			if !verified.Verify {
				errs <- fmt.Errorf("worker %d signature did not verify", i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
