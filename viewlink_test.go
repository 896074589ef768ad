package viewlink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localSettings() map[string]any {
	return map[string]any{
		"view-link": map[string]any{
			"hosts": map[string]any{
				"local": "http://localhost:8080",
				"qa":    "https://app.janisqa.in",
			},
		},
	}
}

func newLocalLinker(t *testing.T, opts ...Option) *Linker {
	t.Helper()

	l, err := New(append([]Option{WithSettingsMap(localSettings()), WithFixedStage("local")}, opts...)...)
	require.NoError(t, err)

	return l
}

func requireCode(t *testing.T, err error, code Code) {
	t.Helper()

	var vlErr *Error
	require.ErrorAs(t, err, &vlErr)
	assert.Equal(t, code, vlErr.Code)
}

func TestLinker_Operations(t *testing.T) {
	l := newLocalLinker(t)

	link, err := l.GetBrowse("svc", "ent", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/svc/ent/browse", link)

	link, err = l.GetEdit("svc", "ent", "id42", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/svc/ent/edit/id42", link)

	link, err = l.Get([]string{"svc", "ent", "dashboard"}, map[string]any{"foo": "bar"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/svc/ent/dashboard?foo=bar", link)

	link, err = l.Link(context.Background(), LinkRequest{Kind: KindBrowse, Service: "svc", Entity: "ent", Params: Params{}.Add("a", 1).Add("a", 2)})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/svc/ent/browse?a=1&a=2", link)
}

func TestLinker_ErrorCodes(t *testing.T) {
	l := newLocalLinker(t)

	_, err := l.GetBrowse("svc", "ent", []string{"foo"})
	requireCode(t, err, CodeInvalidParams)
	assert.True(t, errors.Is(err, CodeInvalidParams))

	code, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_PARAMS", code.String())
}

func TestLinker_SettingsKeyAndStageVariable(t *testing.T) {
	t.Setenv("VIEWLINK_TEST_STAGE", "qa")

	l, err := New(
		WithSettingsMap(map[string]any{"links": localSettings()["view-link"]}),
		WithSettingsKey("links"),
		WithStageVariable("VIEWLINK_TEST_STAGE"),
	)
	require.NoError(t, err)

	host, err := l.Host(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://app.janisqa.in", host)

	stage, ok := l.Stage()
	assert.True(t, ok)
	assert.Equal(t, "qa", stage)
}

func TestLinker_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view-link:\n  hosts:\n    prod: https://app.janis.in\n"), 0o600))

	l, err := New(WithSettingsFile(path), WithFixedStage("prod"))
	require.NoError(t, err)

	link, err := l.GetEdit("oms", "order", "42", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://app.janis.in/oms/order/edit/42", link)

	cfg, err := l.Configuration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"prod": "https://app.janis.in"}, cfg.Hosts)
}

func TestLinker_WithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	l := newLocalLinker(t, WithMetrics(reg))

	_, err := l.GetBrowse("svc", "ent", nil)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "viewlink_links_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLinker_WithMetrics_Conflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "viewlink",
		Name:      "links_total",
		Help:      "Conflicting collector.",
	})))

	_, err := New(WithMetrics(reg))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating metrics")
}

func TestLinker_CheckHosts(t *testing.T) {
	l := newLocalLinker(t)

	report, err := l.CheckHosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"local", "qa"}, report.Names())
}

func TestLinker_Reset(t *testing.T) {
	calls := 0
	settings := SettingsProvider(settingsFunc(func(string) any {
		calls++
		return localSettings()["view-link"]
	}))

	l, err := New(WithSettings(settings), WithFixedStage("local"))
	require.NoError(t, err)

	_, err = l.GetBrowse("svc", "ent", nil)
	require.NoError(t, err)
	_, err = l.GetBrowse("svc", "ent", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	l.Reset()

	_, err = l.GetBrowse("svc", "ent", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

type settingsFunc func(string) any

func (f settingsFunc) Get(key string) any { return f(key) }

func TestDefaultLinker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultSettingsFile),
		[]byte(`{"view-link": {"hosts": {"beta": "https://app.janisdev.in"}}}`), 0o600))

	t.Chdir(dir)
	t.Setenv(DefaultStageVariable, "beta")

	ResetDefault()
	t.Cleanup(ResetDefault)

	link, err := GetBrowse("oms", "order", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://app.janisdev.in/oms/order/browse", link)

	link, err = GetEdit("oms", "order", "7", map[string]any{"tab": "lines"})
	require.NoError(t, err)
	assert.Equal(t, "https://app.janisdev.in/oms/order/edit/7?tab=lines", link)

	link, err = Get([]string{"oms", "dashboard"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://app.janisdev.in/oms/dashboard", link)

	assert.Same(t, Default(), Default())
}

func TestDefaultLinker_NoStage(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(DefaultStageVariable, "")
	require.NoError(t, os.Unsetenv(DefaultStageVariable))

	ResetDefault()
	t.Cleanup(ResetDefault)

	_, err := GetBrowse("oms", "order", nil)
	requireCode(t, err, CodeNoStageName)
}

func TestSetDefault(t *testing.T) {
	l := newLocalLinker(t)

	SetDefault(l)
	t.Cleanup(ResetDefault)

	assert.Same(t, l, Default())
}

func ExampleLinker_GetBrowse() {
	l, _ := New(
		WithSettingsMap(map[string]any{
			"view-link": map[string]any{"hosts": map[string]any{"local": "http://localhost:8080"}},
		}),
		WithFixedStage("local"),
	)

	link, _ := l.GetBrowse("oms", "order", map[string]any{"status": "pending"})
	fmt.Println(link)
	// Output: http://localhost:8080/oms/order/browse?status=pending
}

func ExampleLinker_Get() {
	l, _ := New(
		WithSettingsMap(map[string]any{
			"view-link": map[string]any{"hosts": map[string]any{"local": "http://localhost:8080"}},
		}),
		WithFixedStage("local"),
	)

	_, err := l.Get([]string{}, nil)

	code, _ := CodeOf(err)
	fmt.Println(code, err)
	// Output: INVALID_ENTRIES Invalid entries: Should contain at least one entry.
}
