package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLeadSource []models.Lead

func (s stubLeadSource) VisibleLeads(ctx context.Context, actor *models.User) ([]models.Lead, error) {
	return s, nil
}

func testService(t *testing.T, handler http.HandlerFunc) AssistantService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&config.Config{AIAPIKey: "test-key", AIBaseURL: server.URL})
	leads := stubLeadSource{{
		ID: "l1", Company: "TechStore Argentina", Value: 980000,
		Status: "NEGOTIATION", ServiceType: models.ServiceEcommerce, IsSameDay: true,
	}}
	return NewAssistantService(client, leads, zap.NewNop())
}

func respond(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatal(err)
	}
}

func TestGenerate(t *testing.T) {
	actor := &models.User{ID: "u1", RoleID: models.RoleAdmin}

	t.Run("returns text and grounded sources", func(t *testing.T) {
		svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
			assert.Contains(t, r.URL.Path, "gemini-3-flash-preview")
			respond(t, w, `{
				"candidates": [{
					"content": {"parts": [{"text": "Convertí el lead con una demo."}]},
					"groundingMetadata": {"groundingChunks": [
						{"web": {"uri": "https://example.com/cro", "title": "Guía CRO"}}
					]}
				}]
			}`)
		})

		answer := svc.Generate(context.Background(), actor, "¿Cómo cierro TechStore?", ModeSearch)
		assert.Equal(t, "Convertí el lead con una demo.", answer.Text)
		require.Len(t, answer.Sources, 1)
		assert.Equal(t, "Guía CRO", answer.Sources[0].Title)
	})

	t.Run("reasoning mode upgrades the model", func(t *testing.T) {
		svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "gemini-3-pro-preview")
			respond(t, w, `{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`)
		})

		answer := svc.Generate(context.Background(), actor, "analiza rentabilidad", ModeReasoning)
		assert.Equal(t, "ok", answer.Text)
	})

	t.Run("provider failure degrades to the fallback answer", func(t *testing.T) {
		svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		answer := svc.Generate(context.Background(), actor, "hola", ModeFast)
		assert.Equal(t, "Error al conectar con la inteligencia artificial.", answer.Text)
		assert.Empty(t, answer.Sources)
	})

	t.Run("missing key degrades the same way", func(t *testing.T) {
		client := NewClient(&config.Config{AIBaseURL: "http://localhost:0"})
		svc := NewAssistantService(client, stubLeadSource{}, zap.NewNop())

		answer := svc.Generate(context.Background(), actor, "hola", ModeFast)
		assert.Equal(t, "Error al conectar con la inteligencia artificial.", answer.Text)
	})
}

func TestAnalyzeLead(t *testing.T) {
	lead := &models.Lead{ID: "l1", Company: "TechStore Argentina", Value: 980000}

	t.Run("parses the structured verdict", func(t *testing.T) {
		svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, `{"candidates": [{"content": {"parts": [{"text":
				"{\"nextSteps\": \"Agendar demo\", \"winProbability\": 72, \"contactTone\": \"ejecutivo\"}"
			}]}}]}`)
		})

		analysis := svc.AnalyzeLead(context.Background(), lead)
		require.NotNil(t, analysis)
		assert.Equal(t, "Agendar demo", analysis.NextSteps)
		assert.Equal(t, 72, analysis.WinProbability)
		assert.Equal(t, "ejecutivo", analysis.ContactTone)
	})

	t.Run("unparseable answers yield nil", func(t *testing.T) {
		svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, `{"candidates": [{"content": {"parts": [{"text": "no soy json"}]}}]}`)
		})

		assert.Nil(t, svc.AnalyzeLead(context.Background(), lead))
	})
}

func TestSuggestReply(t *testing.T) {
	t.Run("returns the drafted reply", func(t *testing.T) {
		svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, `{"candidates": [{"content": {"parts": [{"text": "  Te preparo la demo hoy mismo.  "}]}}]}`)
		})

		reply, ok := svc.SuggestReply(context.Background(), "lead: precio?", "Empresa: TechStore")
		require.True(t, ok)
		assert.Equal(t, "Te preparo la demo hoy mismo.", reply)
	})

	t.Run("failures report no suggestion", func(t *testing.T) {
		svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, ok := svc.SuggestReply(context.Background(), "chat", "ctx")
		assert.False(t, ok)
	})
}
