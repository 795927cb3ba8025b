package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func lookupAgainst(t *testing.T, providerBody string) map[string]any {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(providerBody))
	}))
	t.Cleanup(srv.Close)

	hdl := &GeolocationHandler{client: srv.Client(), baseURL: srv.URL}
	app := fiber.New()
	app.Get("/api/geolocation", hdl.Lookup)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/geolocation", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestLookupForwardsRealCoordinates(t *testing.T) {
	out := lookupAgainst(t, `{"status":"success","city":"Paris","country":"France","lat":48.85,"lon":2.35}`)

	if out["label"] != "Paris, France" {
		t.Errorf("label = %v", out["label"])
	}
	if out["latitude"] != 48.85 || out["longitude"] != 2.35 {
		t.Errorf("coordinates = %v, %v", out["latitude"], out["longitude"])
	}
}

func TestLookupNullsZeroedCoordinates(t *testing.T) {
	// Some providers report success with (0,0) when they cannot place the
	// address; that must surface as no position, like a hard failure.
	out := lookupAgainst(t, `{"status":"success","city":"","country":"","lat":0,"lon":0}`)

	if out["latitude"] != nil || out["longitude"] != nil {
		t.Errorf("zeroed provider coordinates must come back null, got %v, %v", out["latitude"], out["longitude"])
	}
}

func TestLookupNullsFailureBody(t *testing.T) {
	out := lookupAgainst(t, `{"status":"fail","message":"private range"}`)

	if out["latitude"] != nil || out["longitude"] != nil {
		t.Errorf("provider failure must come back null, got %v, %v", out["latitude"], out["longitude"])
	}
}
