package tools

import (
	"context"
	"fmt"
	"io"

	"github.com/toolchat/toolchat/internal/schema"
)

// SelfCheckReport holds the payloads produced by SelfCheck.
type SelfCheckReport struct {
	Weather     schema.ToolResult
	Preferences schema.ToolResult
}

// WeatherFailed reports whether the weather lookup returned an error payload.
func (r SelfCheckReport) WeatherFailed() bool {
	_, failed := r.Weather.Err()
	return failed
}

// SelfCheck exercises the registry without the model: a Tokyo weather
// lookup, two travel preferences and a read-back. Each result is written to w.
func SelfCheck(ctx context.Context, r *Registry, w io.Writer) SelfCheckReport {
	fmt.Fprintln(w, "\nTesting Weather tool:")
	wx := r.Dispatch(ctx, string(ToolGetWeather), schema.ToolArgs{"city": "Tokyo"})
	fmt.Fprintf(w, "Tokyo weather: %s\n", FormatResult(wx))

	fmt.Fprintln(w, "\nTesting Memory tools:")
	r.Dispatch(ctx, string(ToolStorePreference), schema.ToolArgs{"category": "travel", "preference": "museums"})
	r.Dispatch(ctx, string(ToolStorePreference), schema.ToolArgs{"category": "travel", "preference": "local food"})
	prefs := r.Dispatch(ctx, string(ToolGetPreferences), schema.ToolArgs{"category": "travel"})
	fmt.Fprintf(w, "Travel preferences: %s\n", FormatResult(prefs))

	fmt.Fprintln(w, "\nTools working!")
	return SelfCheckReport{Weather: wx, Preferences: prefs}
}

// FormatResult renders a payload as compact JSON for display and for the
// transcript.
func FormatResult(res schema.ToolResult) string {
	b, err := marshalResult(res)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(b)
}
