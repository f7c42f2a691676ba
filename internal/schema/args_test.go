package schema

import (
	"reflect"
	"testing"
)

func TestArgsFromJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want ToolArgs
	}{
		{"strings", `{"city":"Tokyo","country":"Japan"}`, ToolArgs{"city": "Tokyo", "country": "Japan"}},
		{"number and bool", `{"count":3,"exact":true}`, ToolArgs{"count": "3", "exact": "true"}},
		{"null dropped", `{"city":"Paris","country":null}`, ToolArgs{"city": "Paris"}},
		{"nested", `{"tags":["a","b"]}`, ToolArgs{"tags": `["a","b"]`}},
		{"empty", ``, ToolArgs{}},
		{"truncated", `{"city":"Oslo"}}`, ToolArgs{"city": "Oslo"}},
		{"garbage", `not json`, ToolArgs{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ArgsFromJSON(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestToolArgs_Lookup(t *testing.T) {
	args := ToolArgs{"city": "Tokyo", "country": ""}

	if got := args.String("missing"); got != "" {
		t.Errorf("missing key should be empty, got %q", got)
	}
	if _, ok := args.Optional("country"); ok {
		t.Error("empty value should count as absent")
	}
	if v, ok := args.Optional("city"); !ok || v != "Tokyo" {
		t.Errorf("got %q, %v", v, ok)
	}
}

func TestLLMResponse_Reply(t *testing.T) {
	text := "hello"
	if r, ok := (LLMResponse{Content: &text}).Reply().(TextReply); !ok || r.Text != "hello" {
		t.Errorf("expected TextReply, got %#v", r)
	}
	if r, ok := (LLMResponse{}).Reply().(TextReply); !ok || r.Text != "" {
		t.Errorf("expected empty TextReply, got %#v", r)
	}

	resp := LLMResponse{
		Content: &text,
		ToolCalls: []ToolCallRequest{
			{Id: "call_1", Name: "get_weather", Arguments: `{"city":"Tokyo"}`},
			{Id: "call_2", Name: "get_preferences", Arguments: `{}`},
		},
	}
	intent, ok := resp.Reply().(ToolCallIntent)
	if !ok {
		t.Fatalf("expected ToolCallIntent, got %T", resp.Reply())
	}
	if intent.ID != "call_1" || intent.Name != "get_weather" {
		t.Errorf("expected first call, got %+v", intent)
	}
	if got := intent.Args(); got["city"] != "Tokyo" {
		t.Errorf("unexpected args %v", got)
	}
}

func TestToolCall_ToWireMap(t *testing.T) {
	m := ToolCall{ID: "c1", Name: "get_preferences"}.ToWireMap()
	fn := m["function"].(map[string]any)
	if fn["arguments"] != "{}" {
		t.Errorf("empty arguments should serialise as {}, got %v", fn["arguments"])
	}
	if m["type"] != "function" || m["id"] != "c1" {
		t.Errorf("unexpected wire map %v", m)
	}
}

func TestMessages_CloneIsIndependent(t *testing.T) {
	m := NewMessages()
	m.AddUser("hi")
	c := m.Clone()
	m.AddAssistantText("hello")

	if c.Len() != 1 || m.Len() != 2 {
		t.Errorf("clone shares storage: clone=%d orig=%d", c.Len(), m.Len())
	}
	last, ok := m.Last()
	if !ok || last.Text() != "hello" || last.IsToolCallIntent() {
		t.Errorf("unexpected last entry %+v", last)
	}
}
