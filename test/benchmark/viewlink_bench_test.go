package benchmark

import (
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/jsamuelsen/viewlink"
	"github.com/jsamuelsen/viewlink/internal/app"
	"github.com/jsamuelsen/viewlink/internal/domain"
)

var settings = map[string]any{
	"view-link": map[string]any{
		"hosts": map[string]any{
			"local": "http://localhost:8080",
			"qa":    "https://app.janisqa.in",
		},
	},
}

// newLinker creates a linker with a discarded logger so benchmarks measure link building only.
func newLinker(b *testing.B) *viewlink.Linker {
	b.Helper()

	linker, err := viewlink.New(
		viewlink.WithSettingsMap(settings),
		viewlink.WithFixedStage("qa"),
		viewlink.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		b.Fatal(err)
	}

	// Warm the host cache.
	if _, err := linker.GetBrowse("oms", "order", nil); err != nil {
		b.Fatal(err)
	}

	return linker
}

// BenchmarkGetBrowse measures a browse link against a cached host.
func BenchmarkGetBrowse(b *testing.B) {
	linker := newLinker(b)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := linker.GetBrowse("oms", "order", nil); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGetEditWithParams measures an edit link with an ordered query string.
func BenchmarkGetEditWithParams(b *testing.B) {
	linker := newLinker(b)
	params := viewlink.Params{}.Add("tab", "items").Add("sort", "date")

	b.ReportAllocs()

	for b.Loop() {
		if _, err := linker.GetEdit("oms", "order", "5f2a", params); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGetMapParams measures a generic link whose params need sorting.
func BenchmarkGetMapParams(b *testing.B) {
	linker := newLinker(b)
	entries := []string{"oms", "order", "dashboard"}
	params := map[string]any{"status": "pending", "page": 2, "active": true}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := linker.Get(entries, params); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGetError measures the error path of an invalid input.
func BenchmarkGetError(b *testing.B) {
	linker := newLinker(b)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := linker.Get([]string{}, nil); err == nil {
			b.Fatal("expected error")
		}
	}
}

// BenchmarkComposeURL measures URL composition alone.
func BenchmarkComposeURL(b *testing.B) {
	params := domain.Params{}.Add("status", "pending").Add("q", "a b&c")

	b.ReportAllocs()

	for b.Loop() {
		if _, err := app.ComposeURL("https://app.janisqa.in", []string{"oms", "order", "browse"}, params); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkAppendQuery measures query encoding on a parsed URL.
func BenchmarkAppendQuery(b *testing.B) {
	params := domain.Params{}.Add("status", "pending").Add("page", 2)

	b.ReportAllocs()

	for b.Loop() {
		u := &url.URL{Scheme: "https", Host: "app.janisqa.in", Path: "/oms/order/browse"}
		app.AppendQuery(u, params)
	}
}
