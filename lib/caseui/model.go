// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package caseui is the interactive terminal UI for casedesk: the
// case list with live merge and filtering, the case detail with its
// comment thread, the dashboard, the notification list, and the
// administrator account view. It is a bubbletea program fed by the
// api client, the push channel, and the notification presenter.
package caseui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/casedesk/casedesk/lib/api"
	"github.com/casedesk/casedesk/lib/caseindex"
	"github.com/casedesk/casedesk/lib/clock"
	"github.com/casedesk/casedesk/lib/notify"
	"github.com/casedesk/casedesk/lib/push"
	"github.com/casedesk/casedesk/lib/schema/support"
)

// Tab identifies the top-level views.
type Tab int

const (
	TabCases Tab = iota
	TabDashboard
	TabNotifications
	TabUsers
)

// FocusRegion identifies which component receives key input.
type FocusRegion int

const (
	// FocusList is the default: keys drive the active tab's list.
	FocusList FocusRegion = iota

	// FocusFilter routes keys to the filter bar text input.
	FocusFilter

	// FocusDetail routes keys to the open case detail.
	FocusDetail

	// FocusCompose routes keys to the comment composer.
	FocusCompose

	// FocusDropdown routes keys to the status dropdown overlay.
	FocusDropdown
)

// DefaultDashboardRefresh is how often the dashboard re-fetches while
// it is the active tab.
const DefaultDashboardRefresh = 60 * time.Second

// defaultRequestTimeout bounds the API calls issued from the UI.
const defaultRequestTimeout = 10 * time.Second

// Config assembles the model's dependencies. Client, User, Push,
// Notifier, and Clock are required.
type Config struct {
	// Client is the authenticated API client.
	Client *api.Client

	// User is the logged-in account, from the login verification.
	// Controls the users tab and internal comment visibility.
	User support.User

	// Push is the live event channel.
	Push *push.Channel

	// Notifier is the running notification presenter.
	Notifier *notify.Presenter

	// NotifyChanges receives a signal whenever the presenter's local
	// state changes (wired to the presenter's OnChange hook by the
	// caller). Optional; without it the notification tab only
	// refreshes on its own interactions.
	NotifyChanges <-chan struct{}

	// Clock drives the marker expiry, toast fades, and the dashboard
	// refresh. Tests substitute a fake.
	Clock clock.Clock

	// Logger receives debug output. Defaults to slog.Default.
	Logger *slog.Logger

	// Theme defaults to DefaultTheme when zero.
	Theme *Theme

	// DashboardRefresh defaults to DefaultDashboardRefresh.
	DashboardRefresh time.Duration
}

// Model is the bubbletea model for the casedesk UI.
type Model struct {
	client   *api.Client
	user     support.User
	pushChan *push.Channel
	notifier *notify.Presenter
	changes  <-chan struct{}
	clock    clock.Clock
	logger   *slog.Logger
	theme    Theme
	keys     KeyMap

	dashboardRefresh time.Duration
	requestTimeout   time.Duration

	activeTab   Tab
	focusRegion FocusRegion

	// Case list state. The index holds the authoritative order; the
	// visible slice is the filtered snapshot the view renders.
	index        *caseindex.Index
	markers      *caseindex.MarkerSet
	filter       caseindex.Filter
	visible      []support.Case
	selected     int
	scrollOffset int
	casesLoaded  bool

	// sweepScheduled is set while a marker expiry wakeup is pending,
	// so each expiry schedules at most one timer.
	sweepScheduled bool

	filterInput textinput.Model

	// openCaseID is nonzero while the detail view is shown.
	openCaseID int64
	detail     detailPane

	dashboard     dashboardPane
	users         usersPane
	notifications notificationsPane

	activeDropdown *statusDropdown
	activeToast    toast
	toastSequence  int

	// generation stamps asynchronous fetches. It advances on tab
	// switches and detail open/close so results that belong to a
	// torn-down view are dropped instead of applied.
	generation int

	width  int
	height int
	ready  bool
}

// NewModel builds the UI model. The caller owns the lifecycle of the
// push channel and the presenter; the model only reads from them.
func NewModel(config Config) Model {
	theme := DefaultTheme()
	if config.Theme != nil {
		theme = *config.Theme
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	refresh := config.DashboardRefresh
	if refresh <= 0 {
		refresh = DefaultDashboardRefresh
	}

	return Model{
		client:   config.Client,
		user:     config.User,
		pushChan: config.Push,
		notifier: config.Notifier,
		changes:  config.NotifyChanges,
		clock:    config.Clock,
		logger:   logger,
		theme:    theme,
		keys:     DefaultKeyMap(),

		dashboardRefresh: refresh,
		requestTimeout:   defaultRequestTimeout,

		index:   caseindex.NewIndex(),
		markers: caseindex.NewMarkerSet(caseindex.DefaultMarkerTTL),

		filterInput:   newFilterInput(),
		detail:        newDetailPane(theme),
		dashboard:     newDashboardPane(theme),
		users:         newUsersPane(theme),
		notifications: newNotificationsPane(theme),
	}
}

// Init starts the initial case fetch, the push event listener, the
// presenter change listener, and the dashboard refresh tick.
func (model Model) Init() tea.Cmd {
	commands := []tea.Cmd{
		model.fetchCasesCmd(),
		model.listenForPushEvent(),
		model.dashboardTickCmd(),
	}
	if listen := model.listenForNotifyChange(); listen != nil {
		commands = append(commands, listen)
	}
	return tea.Batch(commands...)
}

// --- messages ---

type casesLoadedMsg struct {
	generation int
	cases      []support.Case
	err        error
}

type caseLoadedMsg struct {
	generation int
	id         int64
	entry      *support.Case
	comments   []support.Comment
	err        error
}

type dashboardLoadedMsg struct {
	generation int
	stats      *support.DashboardStats
	charts     []support.ChartPoint
	err        error
}

type usersLoadedMsg struct {
	generation int
	pending    []support.User
	users      []support.User
	err        error
}

// mutationDoneMsg reports a write (status change, comment, approval,
// deletion). Successful mutations trigger the refetches named here;
// failures surface as an error toast with local state untouched.
type mutationDoneMsg struct {
	generation   int
	err          error
	refetchCases bool
	refetchCase  int64
	toastText    string
}

type markAllReadMsg struct {
	err error
}

type pushEventMsg struct {
	event support.LiveEvent
	ok    bool
}

type notifyChangedMsg struct{}

type markerSweepMsg struct{}

type dashboardTickMsg struct{}

// --- commands ---

func (model Model) fetchCasesCmd() tea.Cmd {
	generation := model.generation
	client := model.client
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		cases, err := client.ListCases(ctx)
		return casesLoadedMsg{generation: generation, cases: cases, err: err}
	}
}

func (model Model) fetchCaseCmd(id int64) tea.Cmd {
	generation := model.generation
	client := model.client
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entry, err := client.GetCase(ctx, id)
		if err != nil {
			return caseLoadedMsg{generation: generation, id: id, err: err}
		}
		comments, err := client.ListComments(ctx, id)
		if err != nil {
			return caseLoadedMsg{generation: generation, id: id, err: err}
		}
		return caseLoadedMsg{generation: generation, id: id, entry: entry, comments: comments}
	}
}

func (model Model) fetchDashboardCmd() tea.Cmd {
	generation := model.generation
	client := model.client
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		stats, err := client.DashboardStats(ctx)
		if err != nil {
			return dashboardLoadedMsg{generation: generation, err: err}
		}
		charts, err := client.DashboardCharts(ctx)
		if err != nil {
			return dashboardLoadedMsg{generation: generation, err: err}
		}
		return dashboardLoadedMsg{generation: generation, stats: stats, charts: charts}
	}
}

func (model Model) fetchUsersCmd() tea.Cmd {
	generation := model.generation
	client := model.client
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		pending, err := client.ListPendingUsers(ctx)
		if err != nil {
			return usersLoadedMsg{generation: generation, err: err}
		}
		users, err := client.ListUsers(ctx)
		if err != nil {
			return usersLoadedMsg{generation: generation, err: err}
		}
		return usersLoadedMsg{generation: generation, pending: pending, users: users}
	}
}

func (model Model) setStatusCmd(id int64, status support.Status) tea.Cmd {
	generation := model.generation
	client := model.client
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := client.UpdateCase(ctx, id, api.CasePatch{Status: &status})
		return mutationDoneMsg{
			generation:   generation,
			err:          err,
			refetchCases: true,
			refetchCase:  id,
		}
	}
}

func (model Model) postCommentCmd(comment support.Comment) tea.Cmd {
	generation := model.generation
	client := model.client
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := client.AddComment(ctx, comment)
		return mutationDoneMsg{
			generation:  generation,
			err:         err,
			refetchCase: comment.CaseID,
		}
	}
}

func (model Model) approveUserCmd(id int64, username string) tea.Cmd {
	generation := model.generation
	client := model.client
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := client.ApproveUser(ctx, id)
		return mutationDoneMsg{
			generation: generation,
			err:        err,
			toastText:  "approved " + username,
		}
	}
}

func (model Model) deleteUserCmd(id int64, username string) tea.Cmd {
	generation := model.generation
	client := model.client
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := client.DeleteUser(ctx, id)
		return mutationDoneMsg{
			generation: generation,
			err:        err,
			toastText:  "deleted " + username,
		}
	}
}

func (model Model) markAllReadCmd() tea.Cmd {
	notifier := model.notifier
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return markAllReadMsg{err: notifier.MarkAllRead(ctx)}
	}
}

// listenForPushEvent waits for the next live event. Re-issued after
// every delivery; stops when the channel closes.
func (model Model) listenForPushEvent() tea.Cmd {
	if model.pushChan == nil {
		return nil
	}
	events := model.pushChan.Events()
	return func() tea.Msg {
		event, ok := <-events
		return pushEventMsg{event: event, ok: ok}
	}
}

// listenForNotifyChange waits for the next presenter change signal.
func (model Model) listenForNotifyChange() tea.Cmd {
	changes := model.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		<-changes
		return notifyChangedMsg{}
	}
}

func (model Model) dashboardTickCmd() tea.Cmd {
	clk := model.clock
	interval := model.dashboardRefresh
	return func() tea.Msg {
		<-clk.After(interval)
		return dashboardTickMsg{}
	}
}

// scheduleSweep arms a wakeup for the next marker expiry. At most one
// wakeup is pending at a time; the sweep handler re-arms if markers
// remain.
func (model *Model) scheduleSweep() tea.Cmd {
	if model.sweepScheduled {
		return nil
	}
	next, ok := model.markers.NextExpiry()
	if !ok {
		return nil
	}
	model.sweepScheduled = true
	clk := model.clock
	wait := next.Sub(clk.Now())
	if wait < 0 {
		wait = 0
	}
	return func() tea.Msg {
		<-clk.After(wait)
		return markerSweepMsg{}
	}
}

// --- update ---

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {

	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.applySizes()
		return model, nil

	case tea.FocusMsg:
		// The terminal regained focus: the data may be stale, so
		// refetch the active tab and poke the notification poll.
		model.notifier.Poke()
		return model, model.refetchActiveTab()

	case casesLoadedMsg:
		return model.handleCasesLoaded(message)

	case caseLoadedMsg:
		return model.handleCaseLoaded(message)

	case dashboardLoadedMsg:
		if message.generation != model.generation {
			return model, nil
		}
		if message.err != nil {
			return model, model.showToast("dashboard refresh failed: "+message.err.Error(), true)
		}
		model.dashboard.SetData(message.stats, message.charts)
		return model, nil

	case usersLoadedMsg:
		if message.generation != model.generation {
			return model, nil
		}
		if message.err != nil {
			return model, model.showToast("loading users failed: "+message.err.Error(), true)
		}
		model.users.SetData(message.pending, message.users)
		return model, nil

	case mutationDoneMsg:
		return model.handleMutationDone(message)

	case markAllReadMsg:
		if message.err != nil {
			return model, model.showToast("couldn't mark all notifications read", true)
		}
		model.notifications.SetData(model.notifier.Notifications())
		return model, model.showToast("all notifications marked read", false)

	case pushEventMsg:
		return model.handlePushEvent(message)

	case notifyChangedMsg:
		model.notifications.SetData(model.notifier.Notifications())
		return model, model.listenForNotifyChange()

	case markerSweepMsg:
		model.sweepScheduled = false
		model.markers.Sweep(model.clock.Now())
		return model, model.scheduleSweep()

	case dashboardTickMsg:
		commands := []tea.Cmd{model.dashboardTickCmd()}
		if model.activeTab == TabDashboard {
			commands = append(commands, model.fetchDashboardCmd())
		}
		return model, tea.Batch(commands...)

	case toastFadeMsg:
		if message.sequence == model.activeToast.sequence {
			model.activeToast = toast{}
		}
		return model, nil
	}

	return model, nil
}

func (model Model) handleCasesLoaded(message casesLoadedMsg) (tea.Model, tea.Cmd) {
	if message.generation != model.generation {
		return model, nil
	}
	if message.err != nil {
		// Keep whatever list we already have; a transient fetch
		// failure should not blank the screen.
		model.logger.Warn("case list fetch failed", "error", message.err)
		return model, model.showToast("refresh failed: "+message.err.Error(), true)
	}
	model.index.ReplaceAll(message.cases)
	model.casesLoaded = true
	model.recomputeVisible()
	return model, nil
}

func (model Model) handleCaseLoaded(message caseLoadedMsg) (tea.Model, tea.Cmd) {
	if message.generation != model.generation || message.id != model.openCaseID {
		return model, nil
	}
	if message.err != nil {
		if errors.Is(message.err, api.ErrNotFound) {
			model.detail.SetNotFound(message.id)
			return model, nil
		}
		return model, model.showToast("loading case failed: "+message.err.Error(), true)
	}
	model.detail.SetCase(*message.entry, message.comments, model.user.IsAdmin())
	model.index.Upsert(*message.entry)
	model.recomputeVisible()
	return model, nil
}

func (model Model) handleMutationDone(message mutationDoneMsg) (tea.Model, tea.Cmd) {
	if message.generation != model.generation {
		return model, nil
	}
	if message.err != nil {
		return model, model.showToast("update failed: "+message.err.Error(), true)
	}

	var commands []tea.Cmd
	if message.toastText != "" {
		commands = append(commands, model.showToast(message.toastText, false))
	}
	if message.refetchCases {
		commands = append(commands, model.fetchCasesCmd())
	}
	if message.refetchCase != 0 && message.refetchCase == model.openCaseID {
		commands = append(commands, model.fetchCaseCmd(message.refetchCase))
	}
	if model.activeTab == TabUsers {
		commands = append(commands, model.fetchUsersCmd())
	}
	return model, tea.Batch(commands...)
}

func (model Model) handlePushEvent(message pushEventMsg) (tea.Model, tea.Cmd) {
	if !message.ok {
		// Channel closed: the push layer gave up (or was shut down).
		// The status indicator already shows disconnected.
		return model, nil
	}

	commands := []tea.Cmd{model.listenForPushEvent()}
	switch model.index.ApplyEvent(message.event) {
	case caseindex.OutcomeInserted:
		model.markers.Mark(message.event.Case.ID, model.clock.Now())
		model.recomputeVisible()
		if sweep := model.scheduleSweep(); sweep != nil {
			commands = append(commands, sweep)
		}

	case caseindex.OutcomeRefetch:
		label := fmt.Sprintf("case #%d", message.event.CaseID)
		if entry, ok := model.index.Get(message.event.CaseID); ok && entry.Reference != "" {
			label = entry.Reference
		}
		commands = append(commands, model.showToast(label+" was updated", false))
		commands = append(commands, model.fetchCasesCmd())
		if model.openCaseID != 0 && model.openCaseID == message.event.CaseID {
			commands = append(commands, model.fetchCaseCmd(model.openCaseID))
		}
	}
	return model, tea.Batch(commands...)
}

// --- key handling ---

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.focusRegion {
	case FocusFilter:
		return model.handleFilterKeys(message)
	case FocusCompose:
		return model.handleComposeKeys(message)
	case FocusDropdown:
		return model.handleDropdownKeys(message)
	case FocusDetail:
		return model.handleDetailKeys(message)
	default:
		return model.handleListKeys(message)
	}
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Escape):
		model.filterInput.SetValue("")
		model.filterInput.Blur()
		model.filter = caseindex.Filter{}
		model.focusRegion = FocusList
		model.recomputeVisible()
		return model, nil

	case key.Matches(message, model.keys.Open):
		// Keep the filter applied, return focus to the list.
		model.filterInput.Blur()
		model.focusRegion = FocusList
		return model, nil
	}

	var cmd tea.Cmd
	model.filterInput, cmd = model.filterInput.Update(message)
	model.filter = ParseFilter(model.filterInput.Value())
	model.recomputeVisible()
	return model, cmd
}

func (model Model) handleComposeKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "esc":
		model.detail.composer.Reset()
		model.detail.composer.Blur()
		model.detail.composeInternal = false
		model.focusRegion = FocusDetail
		model.applySizes()
		return model, nil

	case "ctrl+t":
		if model.user.IsAdmin() {
			model.detail.composeInternal = !model.detail.composeInternal
		}
		return model, nil

	case "ctrl+s":
		body := strings.TrimSpace(model.detail.composer.Value())
		if body == "" {
			return model, nil
		}
		comment := support.Comment{
			CaseID:   model.openCaseID,
			Body:     body,
			Internal: model.detail.composeInternal,
		}
		model.detail.composer.Reset()
		model.detail.composer.Blur()
		model.detail.composeInternal = false
		model.focusRegion = FocusDetail
		model.applySizes()
		return model, model.postCommentCmd(comment)
	}

	var cmd tea.Cmd
	model.detail.composer, cmd = model.detail.composer.Update(message)
	return model, cmd
}

func (model Model) handleDropdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.activeDropdown.MoveUp()
	case key.Matches(message, model.keys.Down):
		model.activeDropdown.MoveDown()
	case key.Matches(message, model.keys.Escape):
		model.activeDropdown = nil
		model.focusRegion = model.dropdownReturnFocus()
	case key.Matches(message, model.keys.Open):
		dropdown := model.activeDropdown
		model.activeDropdown = nil
		model.focusRegion = model.dropdownReturnFocus()
		return model, model.setStatusCmd(dropdown.caseID, dropdown.Selection())
	}
	return model, nil
}

func (model Model) dropdownReturnFocus() FocusRegion {
	if model.openCaseID != 0 {
		return FocusDetail
	}
	return FocusList
}

func (model Model) handleDetailKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Quit):
		return model, tea.Quit

	case key.Matches(message, keys.Back):
		model.closeDetail()
		return model, nil

	case key.Matches(message, keys.Comment):
		if model.detail.notFound {
			return model, nil
		}
		model.focusRegion = FocusCompose
		model.applySizes()
		return model, model.detail.composer.Focus()

	case key.Matches(message, keys.SetStatus):
		if model.detail.notFound || !model.detail.loaded {
			return model, nil
		}
		model.activeDropdown = newStatusDropdown(model.openCaseID, model.detail.entry.Status)
		model.focusRegion = FocusDropdown
		return model, nil

	case key.Matches(message, keys.Refresh):
		return model, model.fetchCaseCmd(model.openCaseID)

	case key.Matches(message, keys.Up):
		model.detail.viewport.LineUp(1)
	case key.Matches(message, keys.Down):
		model.detail.viewport.LineDown(1)
	case key.Matches(message, keys.PageUp):
		model.detail.viewport.ViewUp()
	case key.Matches(message, keys.PageDown):
		model.detail.viewport.ViewDown()
	case key.Matches(message, keys.Home):
		model.detail.viewport.GotoTop()
	case key.Matches(message, keys.End):
		model.detail.viewport.GotoBottom()
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Quit):
		return model, tea.Quit

	case key.Matches(message, keys.TabCases):
		return model.switchTab(TabCases)
	case key.Matches(message, keys.TabDashboard):
		return model.switchTab(TabDashboard)
	case key.Matches(message, keys.TabNotifications):
		return model.switchTab(TabNotifications)
	case key.Matches(message, keys.TabUsers):
		if model.user.IsAdmin() {
			return model.switchTab(TabUsers)
		}
		return model, nil
	case key.Matches(message, keys.NextTab):
		return model.switchTab(model.nextTab())

	case key.Matches(message, keys.Refresh):
		return model, model.refetchActiveTab()
	}

	switch model.activeTab {
	case TabCases:
		return model.handleCaseListKeys(message)
	case TabNotifications:
		return model.handleNotificationKeys(message)
	case TabUsers:
		return model.handleUserKeys(message)
	}
	return model, nil
}

func (model Model) handleCaseListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Filter):
		model.focusRegion = FocusFilter
		return model, model.filterInput.Focus()

	case key.Matches(message, keys.Escape):
		if !model.filter.IsZero() {
			model.filterInput.SetValue("")
			model.filter = caseindex.Filter{}
			model.recomputeVisible()
		}
		return model, nil

	case key.Matches(message, keys.Up):
		model.moveSelection(-1)
	case key.Matches(message, keys.Down):
		model.moveSelection(1)
	case key.Matches(message, keys.PageUp):
		model.moveSelection(-model.listHeight())
	case key.Matches(message, keys.PageDown):
		model.moveSelection(model.listHeight())
	case key.Matches(message, keys.Home):
		model.selected = 0
		model.clampScroll()
	case key.Matches(message, keys.End):
		model.selected = len(model.visible) - 1
		model.clampScroll()

	case key.Matches(message, keys.Open):
		if entry, ok := model.selectedCase(); ok {
			return model.openCase(entry.ID)
		}

	case key.Matches(message, keys.SetStatus):
		if entry, ok := model.selectedCase(); ok {
			model.activeDropdown = newStatusDropdown(entry.ID, entry.Status)
			model.focusRegion = FocusDropdown
		}
	}
	return model, nil
}

func (model Model) handleNotificationKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Up):
		model.notifications.MoveUp()
	case key.Matches(message, keys.Down):
		model.notifications.MoveDown()

	case key.Matches(message, keys.MarkAllRead):
		return model, model.markAllReadCmd()

	case key.Matches(message, keys.Open):
		notification, ok := model.notifications.Selected()
		if !ok {
			return model, nil
		}
		// Mark read locally first so the bullet clears immediately;
		// the presenter pushes the server write in the background.
		model.notifier.MarkRead(context.Background(), notification.ID)
		model.notifications.SetData(model.notifier.Notifications())
		if notification.CaseID != 0 {
			next, cmd := model.switchTab(TabCases)
			casesModel := next.(Model)
			opened, openCmd := casesModel.openCase(notification.CaseID)
			return opened, tea.Batch(cmd, openCmd)
		}
	}
	return model, nil
}

func (model Model) handleUserKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Up):
		model.users.MoveUp()
	case key.Matches(message, keys.Down):
		model.users.MoveDown()

	case key.Matches(message, keys.Approve):
		user, ok, isPending := model.users.Selected()
		if ok && isPending {
			return model, model.approveUserCmd(user.ID, user.Username)
		}

	case key.Matches(message, keys.Delete):
		user, ok, _ := model.users.Selected()
		if !ok {
			return model, nil
		}
		if user.ID == model.user.ID {
			return model, model.showToast("you cannot delete your own account", true)
		}
		return model, model.deleteUserCmd(user.ID, user.Username)
	}
	return model, nil
}

// --- navigation ---

func (model Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	if tab == model.activeTab && model.openCaseID == 0 {
		return model, nil
	}
	model.activeTab = tab
	model.focusRegion = FocusList
	model.activeDropdown = nil
	if model.openCaseID != 0 {
		model.openCaseID = 0
		model.detail.Reset()
	}
	model.generation++
	return model, model.refetchActiveTab()
}

func (model Model) nextTab() Tab {
	order := []Tab{TabCases, TabDashboard, TabNotifications}
	if model.user.IsAdmin() {
		order = append(order, TabUsers)
	}
	for position, tab := range order {
		if tab == model.activeTab {
			return order[(position+1)%len(order)]
		}
	}
	return TabCases
}

// refetchActiveTab fetches fresh data for whatever the user is
// looking at.
func (model Model) refetchActiveTab() tea.Cmd {
	switch model.activeTab {
	case TabDashboard:
		return model.fetchDashboardCmd()
	case TabUsers:
		return model.fetchUsersCmd()
	case TabNotifications:
		model.notifier.Poke()
		return nil
	default:
		if model.openCaseID != 0 {
			return tea.Batch(model.fetchCasesCmd(), model.fetchCaseCmd(model.openCaseID))
		}
		return model.fetchCasesCmd()
	}
}

func (model Model) openCase(id int64) (tea.Model, tea.Cmd) {
	model.openCaseID = id
	model.generation++
	model.detail.Reset()
	model.focusRegion = FocusDetail
	model.applySizes()

	// Show what the index already has while the full record loads.
	if entry, ok := model.index.Get(id); ok {
		model.detail.SetCase(entry, nil, model.user.IsAdmin())
	}
	return model, model.fetchCaseCmd(id)
}

func (model *Model) closeDetail() {
	model.openCaseID = 0
	model.generation++
	model.detail.Reset()
	model.focusRegion = FocusList
}

// --- list state ---

// recomputeVisible re-applies the filter over the index, keeping the
// cursor on the same case when it survives the change.
func (model *Model) recomputeVisible() {
	var selectedID int64
	if entry, ok := model.selectedCase(); ok {
		selectedID = entry.ID
	}

	model.visible = model.filter.Apply(model.index.All())

	model.selected = 0
	if selectedID != 0 {
		for position := range model.visible {
			if model.visible[position].ID == selectedID {
				model.selected = position
				break
			}
		}
	}
	model.clampScroll()
}

func (model Model) selectedCase() (support.Case, bool) {
	if model.selected < 0 || model.selected >= len(model.visible) {
		return support.Case{}, false
	}
	return model.visible[model.selected], true
}

func (model *Model) moveSelection(delta int) {
	model.selected += delta
	if model.selected < 0 {
		model.selected = 0
	}
	if model.selected >= len(model.visible) {
		model.selected = len(model.visible) - 1
	}
	if model.selected < 0 {
		model.selected = 0
	}
	model.clampScroll()
}

func (model *Model) clampScroll() {
	height := model.listHeight()
	if height <= 0 {
		return
	}
	if model.selected < model.scrollOffset {
		model.scrollOffset = model.selected
	}
	if model.selected >= model.scrollOffset+height {
		model.scrollOffset = model.selected - height + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// contentHeight is the rows available between the tab bar and the
// footer.
func (model Model) contentHeight() int {
	height := model.height - 2
	if height < 3 {
		height = 3
	}
	return height
}

// listHeight is contentHeight minus the column header line.
func (model Model) listHeight() int {
	return model.contentHeight() - 1
}

func (model *Model) applySizes() {
	if !model.ready {
		return
	}
	model.filterInput.Width = model.width - 4
	model.detail.SetSize(model.width, model.contentHeight(), model.focusRegion == FocusCompose)
	model.dashboard.SetWidth(model.width)
	model.users.SetWidth(model.width)
	model.notifications.SetWidth(model.width)
	model.clampScroll()
}

// --- view ---

func (model Model) View() string {
	if !model.ready {
		return "loading…"
	}

	var view strings.Builder
	view.WriteString(model.renderTopBar())
	view.WriteString("\n")
	view.WriteString(model.renderContent())
	view.WriteString("\n")
	view.WriteString(model.renderFooter())
	return view.String()
}

func (model Model) renderTopBar() string {
	if model.focusRegion == FocusFilter {
		return model.renderFilterBar()
	}

	theme := model.theme
	active := lipgloss.NewStyle().
		Foreground(theme.TitleText).
		Bold(true).
		Underline(true)
	inactive := lipgloss.NewStyle().Foreground(theme.FaintText)

	label := func(tab Tab, text string) string {
		if tab == model.activeTab {
			return active.Render(text)
		}
		return inactive.Render(text)
	}

	notificationsLabel := "3 Notifications"
	if unread := model.notifier.Unread(); unread > 0 {
		notificationsLabel = fmt.Sprintf("3 Notifications (%d)", unread)
	}

	parts := []string{
		label(TabCases, "1 Cases"),
		label(TabDashboard, "2 Dashboard"),
		label(TabNotifications, notificationsLabel),
	}
	if model.user.IsAdmin() {
		parts = append(parts, label(TabUsers, "4 Users"))
	}

	bar := " " + strings.Join(parts, inactive.Render("  ·  "))
	if summary := describeFilter(model.filter); summary != "" && model.activeTab == TabCases {
		bar += "   " + lipgloss.NewStyle().
			Foreground(theme.AccentText).
			Render("▼ "+summary)
	}
	return bar
}

func (model Model) renderContent() string {
	if model.activeDropdown != nil {
		return lipgloss.Place(model.width, model.contentHeight(),
			lipgloss.Center, lipgloss.Center,
			model.activeDropdown.Render(model.theme))
	}

	var content string
	switch model.activeTab {
	case TabDashboard:
		content = model.dashboard.View()
	case TabNotifications:
		content = model.notifications.View()
	case TabUsers:
		content = model.users.View()
	default:
		if model.openCaseID != 0 {
			content = model.renderDetail()
		} else {
			content = model.renderCaseList()
		}
	}
	return fitToHeight(content, model.contentHeight())
}

func (model Model) renderDetail() string {
	if model.focusRegion == FocusCompose {
		return model.detail.View() + "\n" + model.detail.ViewComposer()
	}
	return model.detail.View()
}

func (model Model) renderCaseList() string {
	if !model.casesLoaded {
		return lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render("Loading cases…")
	}

	renderer := NewListRenderer(model.theme, model.width)
	lines := []string{renderer.RenderHeader()}

	if len(model.visible) == 0 {
		empty := "No cases."
		if !model.filter.IsZero() {
			empty = "No cases match the filter."
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(empty))
		return strings.Join(lines, "\n")
	}

	now := model.clock.Now()
	end := model.scrollOffset + model.listHeight()
	if end > len(model.visible) {
		end = len(model.visible)
	}
	for position := model.scrollOffset; position < end; position++ {
		entry := model.visible[position]
		lines = append(lines, renderer.RenderRow(
			entry,
			position == model.selected,
			model.markers.IsNew(entry.ID, now),
		))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderFooter() string {
	if toastLine := model.renderToast(); toastLine != "" {
		return " " + toastLine
	}

	theme := model.theme
	var connectivity string
	switch model.pushStatus() {
	case push.StatusConnected:
		connectivity = lipgloss.NewStyle().Foreground(theme.Connected).Render("● live")
	case push.StatusConnecting:
		connectivity = lipgloss.NewStyle().Foreground(theme.StatusPending).Render("◌ connecting")
	default:
		connectivity = lipgloss.NewStyle().Foreground(theme.Disconnected).Render("○ offline")
	}

	help := lipgloss.NewStyle().Foreground(theme.FaintText).Render(model.helpLine())
	return " " + connectivity + "  " + help
}

func (model Model) pushStatus() push.Status {
	if model.pushChan == nil {
		return push.StatusDisconnected
	}
	return model.pushChan.Status()
}

func (model Model) helpLine() string {
	switch model.focusRegion {
	case FocusDetail:
		return "c comment · s status · r refresh · esc back · q quit"
	case FocusDropdown:
		return "↑/↓ choose · enter apply · esc cancel"
	case FocusCompose:
		return "ctrl+s send · esc cancel"
	}
	switch model.activeTab {
	case TabDashboard:
		return "r refresh · 1-4 tabs · q quit"
	case TabNotifications:
		return "enter open · A mark all read · q quit"
	case TabUsers:
		return "a approve · x delete · r refresh · q quit"
	default:
		return "enter open · / filter · s status · r refresh · q quit"
	}
}

// fitToHeight pads or trims content to exactly the given number of
// lines so the footer stays pinned to the last row.
func fitToHeight(content string, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
