//go:build browser

package web

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	_ "modernc.org/sqlite"

	"fitclub/internal/adapters/gymapi"
	"fitclub/internal/adapters/http/middleware"
	"fitclub/internal/adapters/http/perf"
	"fitclub/internal/adapters/storage"
	"fitclub/internal/adapters/storage/localstore"
	"fitclub/internal/config"
)

// browserApp is the web client on a real port, backed by SQLite local storage.
type browserApp struct {
	BaseURL string
	Browser playwright.Browser
}

func newBrowserApp(t *testing.T) *browserApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	api := httptest.NewServer((&fakeBackend{}).handler())
	t.Cleanup(api.Close)

	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Default()
	cfg.RateLimitPerSecond = 1000
	collector := perf.NewCollector(1000)
	keys, err := cfg.DeriveKeys()
	if err != nil {
		t.Fatalf("derive keys: %v", err)
	}
	srv := httptest.NewServer(NewMux(Deps{
		Config:    cfg,
		Keys:      keys,
		API:       gymapi.NewClient(api.URL, 2*time.Second, collector),
		Sessions:  middleware.NewSessionStore(localstore.NewSQLiteStore(storage.NewTimedDB(db, collector, cfg.SlowQueryMs))),
		Collector: collector,
	}))
	t.Cleanup(srv.Close)

	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("playwright unavailable: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		t.Skipf("chromium unavailable: %v", err)
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
	})
	return &browserApp{BaseURL: srv.URL, Browser: browser}
}

func (a *browserApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

func text(t *testing.T, page playwright.Page, selector string) string {
	t.Helper()
	s, err := page.Locator(selector).TextContent()
	if err != nil {
		t.Fatalf("read %s: %v", selector, err)
	}
	return strings.TrimSpace(s)
}

func fill(t *testing.T, page playwright.Page, selector, value string) {
	t.Helper()
	if err := page.Locator(selector).Fill(value); err != nil {
		t.Fatalf("fill %s: %v", selector, err)
	}
}

func click(t *testing.T, page playwright.Page, selector string) {
	t.Helper()
	if err := page.Locator(selector).Click(); err != nil {
		t.Fatalf("click %s: %v", selector, err)
	}
}

// TestBrowser_AdminFlow logs in, creates a room and a class, then logs out.
func TestBrowser_AdminFlow(t *testing.T) {
	app := newBrowserApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/ui/login/admin"); err != nil {
		t.Fatalf("goto login: %v", err)
	}
	click(t, page, "#login-form button[type=submit]")
	if got := text(t, page, "#login-error"); got != "Please fill in all fields." {
		t.Errorf("login-error = %q", got)
	}

	fill(t, page, "#login-email", "admin@club.test")
	fill(t, page, "#login-password", "secret")
	click(t, page, "#login-form button[type=submit]")
	if err := page.WaitForURL(app.BaseURL+"/ui/dashboard/admin", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not reach the admin dashboard: %v", err)
	}
	if got := text(t, page, "#nav-role"); got != "[admin]" {
		t.Errorf("nav-role = %q", got)
	}
	if got := text(t, page, "#admin-classes-list"); got != "No classes." {
		t.Errorf("classes list = %q", got)
	}

	fill(t, page, "#admin-room-name", "Studio A")
	fill(t, page, "#admin-room-capacity", "20")
	click(t, page, "#admin-room-form button[type=submit]")
	if got := text(t, page, "#admin-room-result"); got != "Room created." {
		t.Errorf("room result = %q", got)
	}

	fill(t, page, "#admin-class-name", "Spin")
	fill(t, page, "#admin-class-start", "2026-10-21T18:00")
	fill(t, page, "#admin-class-capacity", "15")
	fill(t, page, "#admin-class-trainer-id", "3")
	fill(t, page, "#admin-class-room-id", "1")
	click(t, page, "#admin-class-form button[type=submit]")
	if got := text(t, page, "#admin-class-result"); got != "Class created." {
		t.Errorf("class result = %q", got)
	}
	if got := text(t, page, "#admin-classes-list"); !strings.Contains(got, "[1] Spin") {
		t.Errorf("classes list = %q", got)
	}

	click(t, page, "#nav-logout button")
	if err := page.WaitForURL(app.BaseURL + "/ui/"); err != nil {
		t.Fatalf("logout did not return home: %v", err)
	}
	if _, err := page.Goto(app.BaseURL + "/ui/dashboard/admin"); err != nil {
		t.Fatalf("goto dashboard: %v", err)
	}
	if !strings.HasSuffix(page.URL(), "/ui/login/admin") {
		t.Errorf("after logout url = %q, want login page", page.URL())
	}
}
