package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// --- Mock implementations ---

type stubSearcher struct {
	mu    sync.Mutex
	pages map[int][]model.Repository
	calls []int
}

func (s *stubSearcher) SearchRecentlyCreated(_ context.Context, _ string, page int) ([]model.Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, page)
	return s.pages[page], nil
}

type stubSelectionStore struct {
	mu    sync.Mutex
	added []model.Selection
}

func (s *stubSelectionStore) Add(_ context.Context, sel model.Selection) (model.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel.ID = int64(len(s.added) + 1)
	s.added = append(s.added, sel)
	return sel, nil
}

func (s *stubSelectionStore) ListRecent(_ context.Context, limit int) ([]model.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Selection, 0, len(s.added))
	for i := len(s.added) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.added[i])
	}
	return out, nil
}

func (s *stubSelectionStore) CountByRepository(_ context.Context, _ string) (int, error) {
	return 0, nil
}

// --- Test helpers ---

const (
	testCSRF    = "test-csrf-token"
	testSession = "test-session-id"
)

type testEnv struct {
	mux      *http.ServeMux
	registry *application.BrowserRegistry
	searcher *stubSearcher
	store    *stubSelectionStore
}

func newTestEnv(t *testing.T, pages map[int][]model.Repository) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	searcher := &stubSearcher{pages: pages}
	store := &stubSelectionStore{}
	selections := application.NewSelectionService(store, logger)
	registry := application.NewBrowserRegistry(
		application.NewSearcherProvider(searcher),
		selections.OnSelect,
		model.WindowOneMonth,
		time.Hour,
		logger,
	)

	mux := http.NewServeMux()
	RegisterRoutes(mux, NewHandler(registry, selections, time.Hour, logger))

	return &testEnv{mux: mux, registry: registry, searcher: searcher, store: store}
}

func (e *testEnv) get(path string, withSession bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withSession {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSession})
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRF})
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSession})
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRF})
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func csrfForm(kv ...string) url.Values {
	v := url.Values{"csrf_token": {testCSRF}}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}

func (e *testEnv) state(t *testing.T) model.BrowserState {
	t.Helper()
	b, ok := e.registry.Lookup(testSession)
	require.True(t, ok, "session should be mounted")
	return b.Snapshot()
}

func sampleRepos() map[int][]model.Repository {
	return map[int][]model.Repository{
		1: {
			{
				ID: 1, FullName: "octo/rocket", Description: "Fast `things`",
				StargazersCount: 12345, OpenIssuesCount: 7,
				Owner: model.Owner{Login: "octo", AvatarURL: "https://avatars.example/octo.png"},
			},
			{ID: 2, FullName: "jane/tiny", StargazersCount: 15, Owner: model.Owner{Login: "jane"}},
		},
		2: {
			{ID: 3, FullName: "p2/next", StargazersCount: 10, Owner: model.Owner{Login: "p2"}},
		},
	}
}

// --- Tests ---

func TestBrowser_FirstVisitMountsAndRenders(t *testing.T) {
	env := newTestEnv(t, sampleRepos())

	rec := env.get("/", false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	var names []string
	for _, c := range rec.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, sessionCookieName)
	assert.Contains(t, names, csrfCookieName)

	body := rec.Body.String()
	assert.Contains(t, body, "Most Starred Repos")
	assert.Contains(t, body, "octo/rocket")
	assert.Contains(t, body, "<p>Fast `things`</p>")
	assert.NotContains(t, body, "<code>")
	assert.Contains(t, body, "Stars: 12,345")
	assert.Contains(t, body, "Issues: 7")
	assert.Contains(t, body, `src="https://avatars.example/octo.png"`)
	assert.Contains(t, body, `<option value="1 month" selected>`)
	assert.Contains(t, body, `class="pagination"`)
	assert.Contains(t, body, `<button type="submit" disabled>Previous</button>`)
	assert.Equal(t, []int{1}, env.searcher.calls)
}

func TestBrowser_NoResultsHidesPagination(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get("/", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="pagination"`)
}

func TestBrowser_ReturningVisitDoesNotRefetch(t *testing.T) {
	env := newTestEnv(t, sampleRepos())

	env.get("/", true)
	env.get("/", true)

	assert.Equal(t, []int{1}, env.searcher.calls)
}

func TestBrowser_EscapesRepositoryText(t *testing.T) {
	env := newTestEnv(t, map[int][]model.Repository{
		1: {{ID: 1, FullName: `evil/<b>repo</b>`, Description: `<script>alert(1)</script>`, Owner: model.Owner{Login: `"x"`}}},
	})

	body := env.get("/", true).Body.String()

	assert.NotContains(t, body, "<script>alert")
	assert.NotContains(t, body, "<b>repo</b>")
	assert.Contains(t, body, "evil/&lt;b&gt;repo&lt;/b&gt;")
}

func TestNextPage_AppendsNextPage(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)

	rec := env.post("/app/page/next", csrfForm())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	state := env.state(t)
	assert.Equal(t, 2, state.Page)
	assert.Len(t, state.Repos, 3)
	assert.Equal(t, []int{1, 2}, env.searcher.calls)

	body := env.get("/", true).Body.String()
	assert.Contains(t, body, "p2/next")
	assert.Contains(t, body, `<button type="submit">Previous</button>`)
}

func TestPrevPage_OnFirstPageIsNoop(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)

	rec := env.post("/app/page/prev", csrfForm())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, env.state(t).Page)
	assert.Equal(t, []int{1}, env.searcher.calls)
}

func TestSelectWindow_ClearsAndResets(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)
	env.post("/app/page/next", csrfForm())

	rec := env.post("/app/window", csrfForm("window", "1 week"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	state := env.state(t)
	assert.Equal(t, model.WindowOneWeek, state.Window)
	assert.Equal(t, 1, state.Page)
	assert.Len(t, state.Repos, 2)
}

func TestSelectWindow_Invalid(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)

	rec := env.post("/app/window", csrfForm("window", "1 decade"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.WindowOneMonth, env.state(t).Window)
}

func TestSelect_InvokesCallback(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)

	rec := env.post("/app/select", csrfForm("full_name", "octo/rocket"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, env.store.added, 1)
	assert.Equal(t, "octo/rocket", env.store.added[0].FullName)

	body := env.get("/", true).Body.String()
	assert.Contains(t, body, "Recently selected")
	assert.Contains(t, body, `<span class="name">octo/rocket</span>`)
}

func TestSelect_RejectsUnlistedRepository(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)

	rec := env.post("/app/select", csrfForm("full_name", "someone/else"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.store.added)
}

func TestSelect_InvalidName(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)

	for _, name := range []string{"", "noslash", "/repo", "owner/", "a/b/c"} {
		rec := env.post("/app/select", csrfForm("full_name", name))
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
	assert.Empty(t, env.store.added)
}

func TestPost_RequiresCSRF(t *testing.T) {
	env := newTestEnv(t, sampleRepos())

	for _, path := range []string{"/app/window", "/app/page/next", "/app/page/prev", "/app/select", "/app/reset"} {
		rec := env.post(path, url.Values{"csrf_token": {"wrong"}})
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
	assert.Empty(t, env.searcher.calls)
}

func TestPost_WithoutSessionRedirects(t *testing.T) {
	env := newTestEnv(t, sampleRepos())

	req := httptest.NewRequest(http.MethodPost, "/app/page/next", strings.NewReader(csrfForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRF})
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, env.registry.Len())
}

func TestReset_UnmountsSession(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)
	require.Equal(t, 1, env.registry.Len())

	rec := env.post("/app/reset", csrfForm())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, env.registry.Len())

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie should be expired")
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestBrowser_ReturningVisitRefreshesSessionCookie(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)

	rec := env.get("/", true)

	c := sessionCookie(rec)
	require.NotNil(t, c, "returning visit should re-issue the session cookie")
	assert.Equal(t, testSession, c.Value)
	assert.Equal(t, int(time.Hour.Seconds()), c.MaxAge)
	assert.True(t, c.HttpOnly)
}

func TestPost_RefreshesSessionCookie(t *testing.T) {
	env := newTestEnv(t, sampleRepos())
	env.get("/", true)

	rec := env.post("/app/page/next", csrfForm())

	require.Equal(t, http.StatusSeeOther, rec.Code)
	c := sessionCookie(rec)
	require.NotNil(t, c, "event posts should re-issue the session cookie")
	assert.Equal(t, testSession, c.Value)
	assert.Equal(t, int(time.Hour.Seconds()), c.MaxAge)
}

func TestBrowser_DescriptionLinksStayOutsideButton(t *testing.T) {
	env := newTestEnv(t, map[int][]model.Repository{
		1: {{ID: 9, FullName: "octo/linked", Description: "Python __init__ helpers, see https://example.com"}},
	})

	body := env.get("/", true).Body.String()

	assert.Contains(t, body, `<button type="submit" class="repo-name"><h3>octo/linked</h3></button></form><div class="description">`)
	assert.Contains(t, body, `Python __init__ helpers, see <a href="https://example.com" rel="nofollow">https://example.com</a>`)

	buttonStart := strings.Index(body, `class="repo-name"`)
	buttonEnd := strings.Index(body[buttonStart:], "</button>")
	require.Positive(t, buttonEnd)
	assert.NotContains(t, body[buttonStart:buttonStart+buttonEnd], "<a ")
}

func TestStatic_ServesStylesheet(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get("/static/style.css", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".repo-list")
}
