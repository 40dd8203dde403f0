package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"charity-pay.backend/internal/interfaces/http/handlers"
)

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, routeDeps{
		onboardingHandler: &handlers.OnboardingHandler{},
		webhookHandler:    &handlers.WebhookHandler{},
		signatureHeader:   "X-Webhook-Signature",
	})

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/organizations/:id/onboarding/registration"},
		{"POST", "/api/v1/organizations/:id/onboarding/documents"},
		{"POST", "/api/v1/organizations/:id/onboarding/submit"},
		{"GET", "/api/v1/organizations/:id/onboarding/status"},
		{"POST", "/api/v1/webhooks/gateway"},
	}

	routes := r.Routes()
	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterHealthRoute_RespondsWithoutBackends(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	for _, want := range []string{`"status":"ok"`, `"database":false`, `"redis":false`} {
		if !strings.Contains(w.Body.String(), want) {
			t.Fatalf("expected %s in body, body=%s", want, w.Body.String())
		}
	}
}
