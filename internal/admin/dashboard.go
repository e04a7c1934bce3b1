package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/folioadmin/folioadmin-go/internal/confirm"
	"github.com/folioadmin/folioadmin-go/internal/debounce"
	"github.com/folioadmin/folioadmin-go/internal/model"
	"github.com/folioadmin/folioadmin-go/internal/session"
)

// DefaultSearchDelay is the quiet window before a search query is applied.
const DefaultSearchDelay = 300 * time.Millisecond

// ErrProjectNotFound is returned when an id is not in the cached list.
var ErrProjectNotFound = errors.New("project not found")

// Dashboard caches the project collection, derives the searched view from it
// and dispatches update and delete requests. The displayed list is always the
// cached list filtered by the last applied query.
type Dashboard struct {
	Deps
	confirmer *confirm.Confirmer
	debouncer *debounce.Debouncer
	onView    func([]model.Project)

	mu    sync.Mutex
	all   []model.Project
	shown []model.Project
	query string
}

// DashboardOption configures a Dashboard.
type DashboardOption func(*Dashboard)

// WithSearchDelay overrides DefaultSearchDelay.
func WithSearchDelay(d time.Duration) DashboardOption {
	return func(db *Dashboard) { db.debouncer = debounce.New(d) }
}

// WithViewListener registers fn to receive the displayed list whenever it changes.
func WithViewListener(fn func([]model.Project)) DashboardOption {
	return func(db *Dashboard) { db.onView = fn }
}

// NewDashboard creates a Dashboard. Deletes are held until confirmer resolves.
func NewDashboard(deps Deps, confirmer *confirm.Confirmer, opts ...DashboardOption) *Dashboard {
	d := &Dashboard{
		Deps:      deps,
		confirmer: confirmer,
		debouncer: debounce.New(DefaultSearchDelay),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mount gates on the session and then fetches the project collection once.
// A failed fetch leaves the list empty and is returned without notifying.
func (d *Dashboard) Mount(ctx context.Context) (session.Session, error) {
	s, err := d.Gate(ctx)
	if err != nil {
		return session.Session{}, err
	}

	projects, err := d.API.ListProjects(ctx)
	if err != nil {
		d.Log.Error().Err(err).Msg("failed to fetch projects")
		d.replaceAll(nil)
		return s, fmt.Errorf("fetch projects: %w", err)
	}

	d.Log.Debug().Int("count", len(projects)).Msg("projects loaded")
	d.replaceAll(projects)
	return s, nil
}

// Projects returns a copy of the displayed list.
func (d *Dashboard) Projects() []model.Project {
	d.mu.Lock()
	defer d.mu.Unlock()
	return clone(d.shown)
}

// All returns a copy of the cached, unfiltered list.
func (d *Dashboard) All() []model.Project {
	d.mu.Lock()
	defer d.mu.Unlock()
	return clone(d.all)
}

// Query returns the last applied search query.
func (d *Dashboard) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

// Find looks up a cached project by id.
func (d *Dashboard) Find(id int64) (model.Project, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := indexOf(d.all, id)
	if i < 0 {
		return model.Project{}, false
	}
	return d.all[i], true
}

// Search schedules query to be applied once input has been quiet for the
// search delay. Each call restarts the window. A blank query cancels any
// pending search and shows the full list immediately.
func (d *Dashboard) Search(query string) {
	if strings.TrimSpace(query) == "" {
		d.debouncer.Cancel()
		d.applyQuery("")
		return
	}
	d.debouncer.Trigger(func() { d.applyQuery(query) })
}

// SearchNow applies query without waiting.
func (d *Dashboard) SearchNow(query string) {
	d.debouncer.Cancel()
	if strings.TrimSpace(query) == "" {
		query = ""
	}
	d.applyQuery(query)
}

// SearchPending reports whether a search is waiting for its window to elapse.
func (d *Dashboard) SearchPending() bool {
	return d.debouncer.Pending()
}

// Delete asks for confirmation and then deletes project id. It reports false
// with a nil error when the user declines. A confirmation already pending
// makes Delete fail with confirm.ErrPending.
func (d *Dashboard) Delete(ctx context.Context, id int64) (bool, error) {
	s, err := d.Gate(ctx)
	if err != nil {
		return false, err
	}

	title := fmt.Sprintf("#%d", id)
	if p, ok := d.Find(id); ok {
		title = fmt.Sprintf("%q", p.Title)
	}

	ok, err := d.confirmer.Request(ctx, fmt.Sprintf("Are you sure you want to delete project %s?", title))
	if err != nil {
		return false, err
	}
	if !ok {
		d.Log.Debug().Int64("id", id).Msg("delete declined")
		return false, nil
	}

	msg, err := d.API.DeleteProject(ctx, s.Token, id)
	if err != nil {
		d.fail(ctx, "delete", err)
		return false, err
	}

	d.remove(id)
	d.Log.Info().Int64("id", id).Msg("project deleted")
	d.Notifier.Success(msg)
	return true, nil
}

// Edit opens the update overlay for project id, pre-populated with its
// cached values.
func (d *Dashboard) Edit(id int64) (*UpdateForm, error) {
	p, ok := d.Find(id)
	if !ok {
		return nil, ErrProjectNotFound
	}
	return newUpdateForm(d.Deps, p, d.replace), nil
}

// Logout clears the session, drops the cached list and returns to login.
func (d *Dashboard) Logout(ctx context.Context) error {
	d.debouncer.Cancel()
	d.replaceAll(nil)
	return d.Deps.Logout(ctx)
}

// Close stops any pending search.
func (d *Dashboard) Close() {
	d.debouncer.Stop()
}

func (d *Dashboard) replaceAll(projects []model.Project) {
	d.mu.Lock()
	d.all = clone(projects)
	d.query = ""
	view := d.refreshLocked()
	d.mu.Unlock()
	d.publish(view)
}

func (d *Dashboard) applyQuery(query string) {
	d.mu.Lock()
	d.query = query
	view := d.refreshLocked()
	d.mu.Unlock()
	d.publish(view)
}

// replace swaps in updated for the cached entry with the same id.
func (d *Dashboard) replace(updated model.Project) {
	d.mu.Lock()
	i := indexOf(d.all, updated.ID)
	if i < 0 {
		d.mu.Unlock()
		return
	}
	d.all[i] = updated
	view := d.refreshLocked()
	d.mu.Unlock()
	d.publish(view)
}

func (d *Dashboard) remove(id int64) {
	d.mu.Lock()
	kept := d.all[:0:0]
	for _, p := range d.all {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	d.all = kept
	view := d.refreshLocked()
	d.mu.Unlock()
	d.publish(view)
}

func (d *Dashboard) refreshLocked() []model.Project {
	d.shown = filterByTitle(d.all, d.query)
	return clone(d.shown)
}

func (d *Dashboard) publish(view []model.Project) {
	if d.onView != nil {
		d.onView(view)
	}
}

func filterByTitle(projects []model.Project, query string) []model.Project {
	if query == "" {
		return clone(projects)
	}
	q := strings.ToLower(query)
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
		}
	}
	return out
}

func indexOf(projects []model.Project, id int64) int {
	for i, p := range projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clone(projects []model.Project) []model.Project {
	out := make([]model.Project, len(projects))
	copy(out, projects)
	return out
}
