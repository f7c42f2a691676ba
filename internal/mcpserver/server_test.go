package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/toolchat/toolchat/internal/memory"
	"github.com/toolchat/toolchat/internal/tools"
	"github.com/toolchat/toolchat/internal/weather"
)

type fixedWeather struct{}

func (fixedWeather) Current(_ context.Context, city, _ string) (weather.Report, error) {
	if city == "" {
		return weather.Report{}, &weather.CityNotFoundError{City: city}
	}
	return weather.Report{City: city, Country: "Japan", Temperature: "20.0°C", Conditions: "Clear sky"}, nil
}

func newTestServer(t *testing.T) (*server.MCPServer, *memory.Store) {
	t.Helper()
	store := memory.Open(filepath.Join(t.TempDir(), "memory.json"))
	reg, err := tools.NewDefaultRegistry(fixedWeather{}, store)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return New(Deps{Registry: reg, Store: store, Version: "test"}), store
}

func makeCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) (*mcp.CallToolResult, map[string]any) {
	t.Helper()
	st := s.GetTool(name)
	if st == nil {
		t.Fatalf("tool %q not registered", name)
	}
	res, err := st.Handler(context.Background(), makeCallToolRequest(name, args))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(tc.Text), &payload); err != nil {
		t.Fatalf("tool text is not JSON: %v (%s)", err, tc.Text)
	}
	return res, payload
}

func TestNew_RegistersEveryTool(t *testing.T) {
	s, _ := newTestServer(t)

	listed := s.ListTools()
	if len(listed) != len(tools.Advertised()) {
		t.Fatalf("expected %d tools, got %d", len(tools.Advertised()), len(listed))
	}
	weatherTool := s.GetTool("get_weather").Tool
	if !reflect.DeepEqual(weatherTool.InputSchema.Required, []string{"city"}) {
		t.Errorf("unexpected required list %v", weatherTool.InputSchema.Required)
	}
	if _, ok := weatherTool.InputSchema.Properties["country"]; !ok {
		t.Error("country property missing")
	}
	if weatherTool.Description != "Get current weather information for a city" {
		t.Errorf("unexpected description %q", weatherTool.Description)
	}
}

func TestHandler_Weather(t *testing.T) {
	s, _ := newTestServer(t)

	res, payload := callTool(t, s, "get_weather", map[string]any{"city": "Tokyo"})
	if res.IsError {
		t.Error("unexpected error flag")
	}
	if payload["city"] != "Tokyo" || payload["temperature"] != "20.0°C" {
		t.Errorf("unexpected payload %v", payload)
	}
}

func TestHandler_ErrorPayloadSetsIsError(t *testing.T) {
	s, _ := newTestServer(t)

	res, payload := callTool(t, s, "get_weather", map[string]any{})
	if !res.IsError {
		t.Error("expected error flag")
	}
	if payload["error"] != "City '' not found" {
		t.Errorf("unexpected payload %v", payload)
	}
}

func TestHandler_MemoryTools(t *testing.T) {
	s, store := newTestServer(t)

	_, stored := callTool(t, s, "store_preference", map[string]any{"category": "travel", "preference": "museums"})
	if stored["status"] != "stored" {
		t.Errorf("unexpected payload %v", stored)
	}
	if got := store.Preferences()["travel"]; len(got) != 1 {
		t.Errorf("preference not persisted: %v", got)
	}

	_, prefs := callTool(t, s, "get_preferences", map[string]any{"category": "travel"})
	if list, _ := prefs["travel"].([]any); len(list) != 1 || list[0] != "museums" {
		t.Errorf("unexpected preferences %v", prefs)
	}
}

func TestResources(t *testing.T) {
	_, store := newTestServer(t)
	store.StorePreference("food", "ramen")

	handler := jsonResource(func() any { return store.Preferences() })
	var req mcp.ReadResourceRequest
	req.Params.URI = uriPreferences

	contents, err := handler(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected text resource, got %T", contents[0])
	}
	if text.Text != `{"food":["ramen"]}` || text.URI != uriPreferences {
		t.Errorf("unexpected resource %+v", text)
	}
}
