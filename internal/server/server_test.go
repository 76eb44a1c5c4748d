// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancoquestoes/qextract/internal/cache"
	"github.com/bancoquestoes/qextract/internal/extraction"
	"github.com/bancoquestoes/qextract/internal/extraction/extractors"
)

const testToken = "segredo"

const structuredDoc = `QUESTÃO 1
BANCA: CESGRANRIO
ANO: 2018
TEMA: Juros Compostos / Rentabilidade
Enunciado: Qual o montante de um capital de R$1000 a 10% a.a. em 2 anos?
Alternativas:
(A) R$1000
(B) R$1100
(C) R$1210
(D) R$1200
(E) R$1300
GABARITO: C
---`

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	p := extractors.NewPipeline(extraction.Config{Logger: discardLogger})
	opts = append([]Option{WithLogger(discardLogger)}, opts...)
	srv := httptest.NewServer(New(p, NewTokenAuthenticator([]string{testToken}), opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/questions/extract", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func body(t *testing.T, text, fileName string) string {
	t.Helper()
	b, err := json.Marshal(map[string]string{"text": text, "fileName": fileName})
	require.NoError(t, err)
	return string(b)
}

func TestExtract_Success(t *testing.T) {
	srv := newTestServer(t)

	resp, out := post(t, srv, testToken, body(t, structuredDoc, "simulado.txt"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, true, out["success"])

	questions, ok := out["questions"].([]any)
	require.True(t, ok)
	require.Len(t, questions, 1)
	q := questions[0].(map[string]any)
	assert.Equal(t, "C", q["resposta_correta"])
	assert.Equal(t, "CESGRANRIO", q["banca"])
	assert.Equal(t, float64(2018), q["ano_referencia"])
	assert.Equal(t, "Juros Compostos", q["tema"])
	assert.Equal(t, "Rentabilidade", q["subtema"])
	assert.Equal(t, "R$1210", q["alternativa_c"])
	assert.Equal(t, "alto", q["nivel_confianca"])

	stats := out["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(1), stats["gabarito_identified"])
	assert.Contains(t, stats, "avg_quality")
}

func TestExtract_Errors(t *testing.T) {
	srv := newTestServer(t)
	text50 := "1. Quanto é dois mais dois hoje?\n(A) 1\n(B) 2\n(C) 4"

	tests := []struct {
		name       string
		token      string
		body       string
		wantStatus int
		wantError  string
		wantHint   bool
	}{
		{
			name:       "missing credentials",
			body:       body(t, structuredDoc, ""),
			wantStatus: http.StatusUnauthorized,
			wantError:  "Não autorizado",
		},
		{
			name:       "wrong token",
			token:      "outro",
			body:       body(t, structuredDoc, ""),
			wantStatus: http.StatusUnauthorized,
			wantError:  "Não autorizado",
		},
		{
			name:       "malformed body",
			token:      testToken,
			body:       `{"text": `,
			wantStatus: http.StatusBadRequest,
			wantError:  msgInvalidBody,
		},
		{
			name:       "text of wrong type",
			token:      testToken,
			body:       `{"text": 42}`,
			wantStatus: http.StatusBadRequest,
			wantError:  msgInvalidBody,
		},
		{
			name:       "missing text",
			token:      testToken,
			body:       `{"fileName": "prova.txt"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  msgMissingText,
		},
		{
			name:       "text below minimum length",
			token:      testToken,
			body:       body(t, strings.Replace(text50, "hoje", "hoj", 1), ""),
			wantStatus: http.StatusBadRequest,
			wantError:  msgTextTooShort,
		},
		{
			name:       "no valid questions",
			token:      testToken,
			body:       body(t, strings.Repeat("Documento sem questões de múltipla escolha. ", 3), ""),
			wantStatus: http.StatusBadRequest,
			wantError:  msgNoQuestions,
			wantHint:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := post(t, srv, tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, false, out["success"])
			assert.Equal(t, tt.wantError, out["error"])
			if tt.wantHint {
				assert.Equal(t, hintNoQuestions, out["hint"])
			} else {
				assert.NotContains(t, out, "hint")
			}
		})
	}

	t.Run("fifty characters are accepted", func(t *testing.T) {
		resp, out := post(t, srv, testToken, body(t, text50, ""))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, out["success"])
	})
}

func TestExtract_TextTooLong(t *testing.T) {
	p := extractors.NewPipeline(extraction.Config{MaxTextLength: 100, Logger: discardLogger})
	srv := httptest.NewServer(New(p, HeaderAuthenticator{}, WithLogger(discardLogger)).Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/questions/extract",
		strings.NewReader(body(t, strings.Repeat("a", 101), "")))
	require.NoError(t, err)
	req.Header.Set(IdentityHeader, "usuario-1")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, msgTextTooLong, out.Error)
}

func TestExtract_Cache(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewResultCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	srv := newTestServer(t, WithCache(rc))

	_, first := post(t, srv, testToken, body(t, structuredDoc, "a.txt"))
	require.True(t, mr.Exists(cache.Key(extraction.RawDocument{Text: structuredDoc, FileName: "a.txt"})))

	_, second := post(t, srv, testToken, body(t, structuredDoc, "a.txt"))
	firstID := first["questions"].([]any)[0].(map[string]any)["id"]
	secondID := second["questions"].([]any)[0].(map[string]any)["id"]
	assert.Equal(t, firstID, secondID, "second response must come from the cache")
}

func TestRecoverer(t *testing.T) {
	s := &Server{logger: discardLogger}
	h := s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Contains(t, rec.Body.String(), msgInternal)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticators(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	_, err := HeaderAuthenticator{}.Authenticate(r)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	r.Header.Set(IdentityHeader, " usuario-7 ")
	id, err := HeaderAuthenticator{}.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, "usuario-7", id)

	a := NewTokenAuthenticator([]string{"", "um", " dois "})
	r.Header.Set("Authorization", "Bearer dois")
	id, err = a.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, "token-1", id)

	r.Header.Set("Authorization", "Basic dois")
	_, err = a.Authenticate(r)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
