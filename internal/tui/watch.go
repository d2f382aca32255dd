package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrz1836/spectree/internal/constants"
	"github.com/mrz1836/spectree/internal/domain"
)

// WatchConfig holds configuration for the watch mode.
type WatchConfig struct {
	// Interval is the refresh interval for watch mode.
	Interval time.Duration
	// BellEnabled controls whether terminal bell notifications are enabled.
	BellEnabled bool
	// Quiet suppresses header and footer output.
	Quiet bool
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Interval:    constants.DefaultWatchInterval,
		BellEnabled: true,
		Quiet:       false,
	}
}

// RunSession is the live run the watch model polls for new events.
// *ingest.Run satisfies it.
type RunSession interface {
	// Refresh applies events appended since the last call and returns how
	// many were applied.
	Refresh(ctx context.Context) (int, error)
	// Tree exposes the reconstructed hierarchy.
	Tree() *domain.Tree
	// ChainsChanged reports whether the chains snapshot was rewritten in
	// place, meaning the session must be reloaded from scratch.
	ChainsChanged() bool
}

// SessionOpener loads a run session from disk. The watch model calls it
// once at startup and again whenever the snapshot is rewritten.
type SessionOpener func(ctx context.Context) (RunSession, error)

// WatchModel is the Bubble Tea model for watch mode.
// It implements tea.Model interface (Init, Update, View).
type WatchModel struct {
	// Run directory shown in the header
	dir string
	// Current session, nil until the first successful open
	session RunSession
	// Current tree snapshot
	tree *domain.Tree
	// Failed test ids from the previous refresh for bell transitions
	previousFailed map[string]bool
	// Last refresh timestamp
	lastUpdate time.Time
	// Configuration
	config WatchConfig
	// Terminal dimensions
	width, height int
	// Exit flag
	quitting bool
	// Error from last refresh
	err error
	// Dependencies
	open SessionOpener
	// baseCtx is stored for use in async Bubble Tea commands.
	// Storing context in structs is generally discouraged, but Bubble Tea's
	// async command model requires it for proper context propagation.
	baseCtx context.Context //nolint:containedctx // Required for Bubble Tea async commands
}

// TickMsg signals time for a refresh.
type TickMsg time.Time

// RefreshMsg carries new data from a refresh operation.
type RefreshMsg struct {
	// Session is non-nil when the run was (re)opened from disk.
	Session RunSession
	Tree    *domain.Tree
	Err     error
}

// BellMsg signals that a bell was emitted.
type BellMsg struct{}

// NewWatchModel creates a new WatchModel with the given dependencies.
// The context is stored for use in async Bubble Tea commands.
func NewWatchModel(ctx context.Context, dir string, open SessionOpener, cfg WatchConfig) *WatchModel {
	return &WatchModel{
		dir:            dir,
		session:        nil,
		tree:           nil,
		previousFailed: make(map[string]bool),
		lastUpdate:     time.Time{},
		config:         cfg,
		width:          80, // Default width
		height:         24, // Default height
		quitting:       false,
		err:            nil,
		open:           open,
		baseCtx:        ctx,
	}
}

// Init returns the initial command to run when the program starts.
// It starts the refresh timer and performs an initial data load.
func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(
		m.refreshData(),
		m.tick(),
	)
}

// Update handles messages and returns the updated model and any commands.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m, m.refreshData()

	case RefreshMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, m.tick()
		}
		if msg.Session != nil {
			m.session = msg.Session
		}
		m.tree = msg.Tree
		m.lastUpdate = time.Now()
		m.err = nil

		// Check for bell conditions
		bellCmd := m.checkForBell()
		return m, tea.Batch(m.tick(), bellCmd)

	case BellMsg:
		// Bell is emitted in the command, nothing to do here
		return m, nil
	}

	return m, nil
}

// View renders the current state to a string.
func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Header (unless quiet)
	if !m.config.Quiet {
		b.WriteString(StyleBold.Render("spectree watch"))
		if m.dir != "" {
			b.WriteString("  " + StyleDim.Render(m.dir))
		}
		b.WriteString("\n\n")
	}

	// Error display
	if m.err != nil {
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	}

	// Tree or empty message
	if m.tree == nil || len(m.tree.Roots) == 0 {
		if m.err == nil {
			b.WriteString("No tests collected yet. Waiting for results.\n")
		}
	} else {
		_ = RenderTree(&b, m.tree, WithMaxWidth(m.width))
	}

	// Footer summary (unless quiet)
	if !m.config.Quiet && m.tree != nil {
		b.WriteString("\n")
		b.WriteString(m.buildFooter())
		b.WriteString("\n")
	}

	// Timestamp and quit hint
	if !m.lastUpdate.IsZero() {
		b.WriteString(fmt.Sprintf("\nLast updated: %s", m.lastUpdate.Format("15:04:05")))
	}
	b.WriteString("\nPress 'q' to quit")

	return b.String()
}

// Tree returns the current tree snapshot (useful for testing).
func (m *WatchModel) Tree() *domain.Tree {
	return m.tree
}

// LastUpdate returns the last update timestamp.
func (m *WatchModel) LastUpdate() time.Time {
	return m.lastUpdate
}

// IsQuitting returns true if the model is in quitting state.
func (m *WatchModel) IsQuitting() bool {
	return m.quitting
}

// Error returns the last error from a refresh operation.
func (m *WatchModel) Error() error {
	return m.err
}

// tick returns a command that sends a TickMsg after the configured interval.
func (m *WatchModel) tick() tea.Cmd {
	return tea.Tick(m.config.Interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// refreshData loads fresh data from the run directory. The session is
// reopened when no session exists yet or the chains snapshot was rewritten
// by a new collection; otherwise newly appended events are applied.
func (m *WatchModel) refreshData() tea.Cmd {
	return func() tea.Msg {
		// Use stored context for proper cancellation propagation
		ctx := m.baseCtx
		if ctx == nil {
			ctx = context.Background()
		}

		if m.session == nil || m.session.ChainsChanged() {
			session, err := m.open(ctx)
			if err != nil {
				return RefreshMsg{Err: fmt.Errorf("failed to load run: %w", err)}
			}
			return RefreshMsg{Session: session, Tree: session.Tree()}
		}

		if _, err := m.session.Refresh(ctx); err != nil {
			return RefreshMsg{Err: fmt.Errorf("failed to refresh run: %w", err)}
		}
		return RefreshMsg{Tree: m.session.Tree()}
	}
}

// checkForBell checks if any test newly entered a failed or errored state.
// Returns a command to emit a bell if needed.
// Bell is suppressed if BellEnabled is false or Quiet mode is active.
func (m *WatchModel) checkForBell() tea.Cmd {
	if !m.config.BellEnabled || m.config.Quiet {
		return nil
	}

	failed := make(map[string]bool)
	if m.tree != nil {
		for _, root := range m.tree.Roots {
			collectFailedTests(root, failed)
		}
	}

	// Only bell on NEW transitions to a failed state; replacing the map
	// also drops tests that disappeared with a snapshot rewrite.
	newFailure := false
	for id := range failed {
		if !m.previousFailed[id] {
			newFailure = true
			break
		}
	}
	m.previousFailed = failed

	if newFailure {
		return emitBell()
	}
	return nil
}

// collectFailedTests records the ids of failed and errored test leaves in
// the subtree into failed.
func collectFailedTests(node *domain.Node, failed map[string]bool) {
	if node.Kind == domain.KindTest {
		if node.Result != nil && node.Result.Outcome.IsFailure() {
			failed[node.ID] = true
		}
		return
	}
	for _, child := range node.Children {
		collectFailedTests(child, failed)
	}
}

// emitBell returns a command that emits a terminal bell.
func emitBell() tea.Cmd {
	return func() tea.Msg {
		// Write BEL character directly to stdout to avoid forbidigo lint rule
		_, _ = os.Stdout.WriteString("\a")
		return BellMsg{}
	}
}

// buildFooter creates the footer summary line.
func (m *WatchModel) buildFooter() string {
	summary := FormatTotals(m.tree)

	if failing := m.tree.TotalFailed(); failing > 0 {
		needWord := "need"
		if failing == 1 {
			needWord = "needs"
		}
		summary += fmt.Sprintf(", %d %s attention", failing, needWord)
	}

	return summary
}
