package llmutils

import "testing"

func TestTruncate(t *testing.T) {
	if got := Truncate("héllo", 10); got != "héllo" {
		t.Errorf("short string changed: %q", got)
	}
	if got := Truncate("héllo wörld", 5); got != "héllo..." {
		t.Errorf("got %q", got)
	}
}

func TestToolHint(t *testing.T) {
	got := ToolHint("get_weather", map[string]string{"country": "Japan", "city": "Tokyo"})
	if want := `get_weather(city="Tokyo", country="Japan")`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got := ToolHint("get_preferences", nil); got != "get_preferences()" {
		t.Errorf("got %s", got)
	}
}

func TestStringOrDefault(t *testing.T) {
	if StringOrDefault("", "x") != "x" || StringOrDefault("y", "x") != "y" {
		t.Error("unexpected result")
	}
}
