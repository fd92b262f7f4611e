package routes

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/BIC_Dev/pokedex-interactions/configs"
	"gitlab.com/BIC_Dev/pokedex-interactions/controllers"
	"gitlab.com/BIC_Dev/pokedex-interactions/interactions"
	"gitlab.com/BIC_Dev/pokedex-interactions/services/pokeapi"
	"gitlab.com/BIC_Dev/pokedex-interactions/viewmodels"
)

const pikachuJSON = `{"name":"pikachu","height":4,"weight":60,
	"sprites":{"front_default":"https://img.example/25.png"},
	"types":[{"slot":1,"type":{"name":"electric","url":""}}]}`

type testEnv struct {
	server   *httptest.Server
	priv     ed25519.PrivateKey
	upstream int
}

func newTestEnv(t *testing.T, pokeHandler http.HandlerFunc) *testEnv {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	env := &testEnv{priv: priv}

	poke := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.upstream++
		pokeHandler(w, r)
	}))
	t.Cleanup(poke.Close)

	config := &configs.Config{}
	config.PokeAPI.PlaceholderImage = configs.DefaultPlaceholderImage

	controller := &controllers.Controller{
		Config: config,
		Interactions: &interactions.Interactions{
			Config:  config,
			Pokedex: &pokeapi.PokeAPI{Client: poke.Client(), BaseURL: poke.URL},
		},
	}

	handler := GetHandler(context.Background(), GetRouter(context.Background()), Router{
		Controller: controller,
		PublicKey:  pub,
	})

	env.server = httptest.NewServer(handler)
	t.Cleanup(env.server.Close)

	return env
}

func (e *testEnv) post(t *testing.T, body string, sig string, timestamp string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, e.server.URL+"/", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("X-Signature-Ed25519", sig)
	req.Header.Set("X-Signature-Timestamp", timestamp)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res.StatusCode, out
}

func (e *testEnv) sign(timestamp, body string) string {
	return hex.EncodeToString(ed25519.Sign(e.priv, []byte(timestamp+body)))
}

func TestInteraction_Ping(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("ping must not reach the data provider")
	})

	body := `{"type":1}`
	status, out := env.post(t, body, env.sign("1700000000", body), "1700000000")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"type":1}`, string(out))
	assert.Equal(t, 0, env.upstream)
}

func TestInteraction_PingTolerantOfOtherFields(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("ping must not reach the data provider")
	})

	body := `{"type":1,"version":"1","data":{"options":[{"name":"pokemon","value":25}]}}`
	status, out := env.post(t, body, env.sign("1", body), "1")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"type":1}`, string(out))
}

func TestInteraction_BodyTooLarge(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("oversized request must not reach the data provider")
	})

	body := `{"type":1,"pad":"` + strings.Repeat("a", int(maxSignedBody)) + `"}`
	status, out := env.post(t, body, env.sign("1", body), "1")

	assert.Equal(t, http.StatusRequestEntityTooLarge, status)

	var errRes viewmodels.ErrorResponse
	require.NoError(t, json.Unmarshal(out, &errRes))
	assert.Equal(t, http.StatusRequestEntityTooLarge, errRes.Status)
}

func TestInteraction_Command(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pokemon/pikachu", r.URL.Path)
		w.Write([]byte(pikachuJSON))
	})

	body := `{"type":2,"data":{"id":"x","name":"pokedex","options":[{"name":"pokemon","value":"pikachu"}]}}`
	status, out := env.post(t, body, env.sign("1700000000", body), "1700000000")
	require.Equal(t, http.StatusOK, status, string(out))

	var res struct {
		Type int `json:"type"`
		Data struct {
			TTS     bool   `json:"tts"`
			Content string `json:"content"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out, &res))
	assert.Equal(t, 4, res.Type)
	assert.False(t, res.Data.TTS)
	assert.Contains(t, res.Data.Content, "pikachu")
	assert.Contains(t, res.Data.Content, "![pikachu](https://img.example/25.png)")
}

func TestInteraction_InvalidSignature(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("unauthenticated request must not reach the data provider")
	})

	body := `{"type":1}`
	otherBody := `{"type":2}`

	tests := []struct {
		name      string
		body      string
		sig       string
		timestamp string
	}{
		{name: "signed other body", body: body, sig: env.sign("1", otherBody), timestamp: "1"},
		{name: "signed other timestamp", body: body, sig: env.sign("2", body), timestamp: "1"},
		{name: "missing headers", body: body, sig: "", timestamp: ""},
		{name: "non hex", body: body, sig: strings.Repeat("zz", 64), timestamp: "1"},
		{name: "odd length", body: body, sig: env.sign("1", body)[1:], timestamp: "1"},
		{name: "garbage body", body: "not json at all", sig: strings.Repeat("00", 64), timestamp: "1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, out := env.post(t, tc.body, tc.sig, tc.timestamp)
			assert.Equal(t, http.StatusUnauthorized, status)

			var errRes viewmodels.ErrorResponse
			require.NoError(t, json.Unmarshal(out, &errRes))
			assert.NotEmpty(t, errRes.Error)
		})
	}
}

func TestInteraction_ClientErrors(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("incomplete command must not reach the data provider")
	})

	for _, body := range []string{
		`{"type":`,
		`{"type":2}`,
		`{"type":2,"data":{"id":"x","name":"pokedex","options":[]}}`,
		`{"type":2,"data":{"id":"x","name":"pokedex","options":[{"name":"pokemon"}]}}`,
	} {
		status, out := env.post(t, body, env.sign("1", body), "1")
		assert.Equal(t, http.StatusBadRequest, status, body)

		var errRes viewmodels.ErrorResponse
		require.NoError(t, json.Unmarshal(out, &errRes))
		assert.NotEmpty(t, errRes.Message)
	}
}

func TestInteraction_UpstreamError(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	})

	body := `{"type":2,"data":{"id":"x","name":"pokedex","options":[{"name":"pokemon","value":"missingno"}]}}`
	status, out := env.post(t, body, env.sign("1", body), "1")
	assert.Equal(t, http.StatusInternalServerError, status)

	var errRes viewmodels.ErrorResponse
	require.NoError(t, json.Unmarshal(out, &errRes))
	assert.Contains(t, errRes.Message, "404")
	assert.Contains(t, errRes.Message, "Not Found")
}

func TestStatus_SkipsSignature(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {})

	res, err := http.Get(env.server.URL + "/status")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var status viewmodels.GetStatusResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	assert.Equal(t, "Service is available", status.Message)
}

func TestLoggingMiddleware_RecoversPanic(t *testing.T) {
	handler := LoggingMiddleware("")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var errRes viewmodels.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errRes))
	assert.Equal(t, "boom", errRes.Error)
}

func TestResponseWriter_RecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := wrapResponseWriter(rec)

	assert.Equal(t, http.StatusOK, rw.Status())

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)
	n, err := rw.Write([]byte("abc"))
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusTeapot, rw.Status())
	assert.Equal(t, 3, rw.Size())
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
