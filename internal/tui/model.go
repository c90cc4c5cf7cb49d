package tui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/evanschultz/matter/internal/app"
	"github.com/evanschultz/matter/internal/domain"
)

// Service represents service data used by this package.
type Service interface {
	Dispatch(context.Context, app.Intent) (app.Outcome, error)
	Snapshot() app.Snapshot
	ListActivity(context.Context, int) ([]domain.ChangeEvent, error)
}

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeActivityLog
)

// activityLogViewWindow bounds the rows shown by the activity modal.
const activityLogViewWindow = 14

// Screen rows reserved above and below the sidebar and grid.
const (
	bodyTop      = 2
	footerHeight = 3
	// sidebarHeaderRows covers the title and the blank row under it.
	sidebarHeaderRows = 2
)

// deleteAffordance is drawn in a tile's title row while arranging.
const deleteAffordance = "[x]"

// activityEntry describes one recorded intent for the in-app activity log.
type activityEntry struct {
	At      time.Time
	Summary string
	Target  string
}

// Model is the dashboard surface: a category sidebar next to the tile grid.
type Model struct {
	svc  Service
	snap app.Snapshot

	ready  bool
	width  int
	height int

	help   help.Model
	keys   keyMap
	mode   inputMode
	status string
	err    error

	focus          int
	sidebarCursor  int
	sidebarWidth   int
	sidebarVisible bool
	drag           dragState

	content       ContentConfig
	activityLimit int
	activityLog   []activityEntry

	cards    *cardRenderer
	copyText ClipboardWriter
}

// activityLogLoadedMsg carries journaled activity entries for the session.
type activityLogLoadedMsg struct {
	entries []activityEntry
	err     error
}

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	tileID int
	err    error
}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:      svc,
		help:     h,
		keys:     newKeyMap(),
		status:   "ready",
		cards:    newCardRenderer("dark"),
		copyText: clipboard.WriteAll,
	}
	m.applyRuntimeConfig(DefaultRuntimeConfig())
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.snap = svc.Snapshot()
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case activityLogLoadedMsg:
		if msg.err != nil {
			if m.mode == modeActivityLog {
				m.status = "activity log unavailable: " + msg.err.Error()
			}
			return m, nil
		}
		m.activityLog = append([]activityEntry(nil), msg.entries...)
		if m.mode == modeActivityLog {
			m.status = "activity log"
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("copied tile %d", msg.tileID)
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	default:
		return m, nil
	}
}

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.viewContent())
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// viewContent renders the full screen as text.
func (m Model) viewContent() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n\nq quit\n"
	}
	if !m.ready {
		return "loading..."
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	header := titleStyle.Render("matter")
	header += statusStyle.Render("  [" + m.snap.Mode.String() + "]")
	header += statusStyle.Render(fmt.Sprintf("  tiles %d/%d", m.snap.Count, domain.MaxTiles))
	header += statusStyle.Render("  layout " + m.snap.Layout.String())
	if m.snap.SelectedCategory.Assigned() {
		header += statusStyle.Render("  category: " + m.snap.SelectedCategory.String())
	}
	if m.snap.Armed() {
		header += statusStyle.Render(fmt.Sprintf("  armed: tile %d", m.snap.Selection))
	}

	body := m.renderGrid(accent, muted, dim)
	if m.sidebarVisible {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(accent, muted, dim), body)
	}

	sections := []string{
		header,
		hintStyle.Render(m.hintLine()),
		fitLines(body, m.bodyHeight()),
	}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(truncate(m.status, max(1, m.width))))
	} else {
		sections = append(sections, "")
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	fullContent := content + "\n" + helpLine
	overlay := m.renderModeOverlay(accent, muted, m.width-8)
	if m.help.ShowAll {
		overlay = m.renderHelpOverlay(accent, muted, m.width-8)
	}
	if overlay != "" {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}
	return fullContent
}

// hintLine returns the keyboard hint shown under the header; the add hint hides at the cap.
func (m Model) hintLine() string {
	hint := fmt.Sprintf("Press '%s' to enable/disable arrange mode", m.keys.toggleMode.Help().Key)
	if m.snap.Count < domain.MaxTiles {
		hint += fmt.Sprintf(" • Press '%s' to add tile", m.keys.addTile.Help().Key)
	}
	return hint
}

// bodyHeight returns the rows available to the sidebar and grid.
func (m Model) bodyHeight() int {
	return max(domain.GridRows, m.height-bodyTop-footerHeight)
}

// activeSidebarWidth returns the columns taken by the sidebar, zero when hidden.
func (m Model) activeSidebarWidth() int {
	if !m.sidebarVisible {
		return 0
	}
	return m.sidebarWidth
}

// gridProjection returns the screen block the grid is drawn into.
func (m Model) gridProjection() gridProjection {
	left := m.activeSidebarWidth()
	return gridProjection{
		left:   left,
		top:    bodyTop,
		width:  max(domain.GridColumns, m.width-left),
		height: m.bodyHeight(),
	}
}

// renderSidebar draws the category list with its right edge as the resize handle.
func (m Model) renderSidebar(accent, muted, dim color.Color) string {
	inner := max(1, m.sidebarWidth-1)
	lineStyle := lipgloss.NewStyle().Width(inner).MaxWidth(inner)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(accent)
	edgeStyle := lipgloss.NewStyle().Foreground(dim)
	if m.drag.kind == dragSidebar {
		edgeStyle = edgeStyle.Foreground(accent)
	}

	lines := []string{titleStyle.Render("CATEGORIES"), ""}
	for idx, category := range domain.Categories() {
		prefix := "  "
		if idx == m.sidebarCursor {
			prefix = "› "
		}
		label := prefix + truncate(category.String(), max(1, inner-2))
		switch {
		case category == m.snap.SelectedCategory:
			label = selectedStyle.Render(label)
		case idx == m.sidebarCursor:
			label = itemStyle.Bold(true).Render(label)
		default:
			label = lipgloss.NewStyle().Foreground(muted).Render(label)
		}
		lines = append(lines, label)
	}

	height := m.bodyHeight()
	rows := strings.Split(fitLines(strings.Join(lines, "\n"), height), "\n")
	out := make([]string, 0, len(rows))
	edge := edgeStyle.Render("│")
	for _, row := range rows {
		out = append(out, lineStyle.Render(row)+edge)
	}
	return strings.Join(out, "\n")
}

// renderGrid composes every tile onto a canvas the size of the grid block.
func (m Model) renderGrid(accent, muted, dim color.Color) string {
	proj := m.gridProjection()
	canvas := lipgloss.NewCanvas(proj.width, proj.height)
	for idx, tile := range m.snap.Tiles {
		rect := tile.Rect
		z := 1 + idx
		if idx == m.focus {
			z = 10
		}
		if m.drag.active() && m.drag.kind != dragSidebar && idx == m.drag.index {
			rect = m.drag.preview
			z = 20
		}
		x, y, w, h := proj.screenRect(rect)
		rendered := m.renderTile(tile, idx == m.focus, w, h, accent, muted, dim)
		if rendered == "" {
			continue
		}
		canvas.Compose(lipgloss.NewLayer(rendered).X(x - proj.left).Y(y - proj.top).Z(z))
	}
	return canvas.Render()
}

// renderTile draws one bordered tile of exactly w×h cells.
func (m Model) renderTile(tile domain.Tile, focused bool, w, h int, accent, muted, dim color.Color) string {
	if w < 3 || h < 3 {
		return ""
	}
	innerW := w - 2
	innerH := h - 2
	border := dim
	if focused {
		border = accent
	}
	if m.snap.Armed() && m.snap.Selection == tile.ID {
		border = lipgloss.Color("212")
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	title := fmt.Sprintf("%d · %s", tile.ID, tile.Category)
	if m.snap.Mode == domain.ModeArrange {
		title = "✥ " + title
		room := max(0, innerW-len(deleteAffordance)-1)
		title = truncate(title, room)
		gap := max(1, innerW-lipgloss.Width(title)-len(deleteAffordance))
		title = titleStyle.Render(title) + strings.Repeat(" ", gap) + lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(deleteAffordance)
	} else {
		title = titleStyle.Render(truncate(title, innerW))
	}

	lines := []string{title}
	if innerH > 1 {
		body := m.renderTileBody(tile.Category, innerW)
		if tile.Category == domain.Unassigned {
			body = lipgloss.NewStyle().Foreground(muted).Render(body)
		}
		lines = append(lines, body)
	}
	inner := lipgloss.NewStyle().
		Width(innerW).
		MaxWidth(innerW).
		Height(innerH).
		MaxHeight(innerH).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(inner)
}

// renderModeOverlay renders the active modal, if any.
func (m Model) renderModeOverlay(accent, muted color.Color, maxWidth int) string {
	switch m.mode {
	case modeActivityLog:
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
		if maxWidth > 0 {
			style = style.Width(clamp(maxWidth, 44, 96))
		}
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
		hintStyle := lipgloss.NewStyle().Foreground(muted)
		lines := []string{titleStyle.Render("Activity Log")}
		if len(m.activityLog) == 0 {
			lines = append(lines, hintStyle.Render("(no activity yet)"))
		} else {
			rendered := 0
			for idx := len(m.activityLog) - 1; idx >= 0; idx-- {
				entry := m.activityLog[idx]
				lines = append(lines, fmt.Sprintf("%s  %s • %s", formatActivityTimestamp(entry.At), entry.Summary, truncate(entry.Target, 48)))
				rendered++
				if rendered >= activityLogViewWindow {
					break
				}
			}
		}
		lines = append(lines, hintStyle.Render("esc close"))
		return style.Render(strings.Join(lines, "\n"))
	default:
		return ""
	}
}

// renderHelpOverlay renders the expanded key help.
func (m Model) renderHelpOverlay(accent, muted color.Color, maxWidth int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	width := 96
	if maxWidth > 0 {
		width = clamp(maxWidth, 44, 120)
		style = style.Width(width)
	}
	helpBubble := m.help
	helpBubble.ShowAll = true
	helpBubble.SetWidth(max(0, width-4))
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Keys"),
		helpBubble.View(m.keys),
		lipgloss.NewStyle().Foreground(muted).Render("mouse: click a category, then click a tile • arrange mode: drag to move, drag the bottom-right corner to resize"),
		lipgloss.NewStyle().Foreground(muted).Render("? or esc close"),
	}
	return style.Render(strings.Join(lines, "\n"))
}

// handleNormalModeKey routes keys while no modal is open.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.help.ShowAll {
		if key.Matches(msg, m.keys.closeOverlay) {
			m.help.ShowAll = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.toggleMode):
		m.dispatch(app.ToggleMode{})
	case key.Matches(msg, m.keys.addTile):
		m.dispatch(app.AddTile{})
	case key.Matches(msg, m.keys.setCount):
		m.dispatch(app.SetCount{N: int(msg.Code - '0')})
	case key.Matches(msg, m.keys.deleteTile):
		if tile, ok := m.focusedTile(); ok {
			m.dispatch(app.DeleteTile{ID: tile.ID})
		}
	case key.Matches(msg, m.keys.nextTile):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.prevTile):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.growWidth):
		m.resizeFocused(1, 0)
	case key.Matches(msg, m.keys.shrinkWidth):
		m.resizeFocused(-1, 0)
	case key.Matches(msg, m.keys.growHeight):
		m.resizeFocused(0, 1)
	case key.Matches(msg, m.keys.shrinkHeight):
		m.resizeFocused(0, -1)
	case key.Matches(msg, m.keys.moveLeft):
		m.moveFocused(-1, 0)
	case key.Matches(msg, m.keys.moveRight):
		m.moveFocused(1, 0)
	case key.Matches(msg, m.keys.moveUp):
		m.moveFocused(0, -1)
	case key.Matches(msg, m.keys.moveDown):
		m.moveFocused(0, 1)
	case key.Matches(msg, m.keys.activate):
		m.activateFocused()
	case key.Matches(msg, m.keys.sidebarUp):
		m.sidebarCursor = wrapIndex(m.sidebarCursor, -1, len(domain.Categories()))
	case key.Matches(msg, m.keys.sidebarDown):
		m.sidebarCursor = wrapIndex(m.sidebarCursor, 1, len(domain.Categories()))
	case key.Matches(msg, m.keys.pickCategory):
		m.pickSidebarCategory()
	case key.Matches(msg, m.keys.clearCategory):
		m.dispatch(app.ClearCategory{})
	case key.Matches(msg, m.keys.narrowSidebar):
		m.setSidebarWidth(m.sidebarWidth - 1)
	case key.Matches(msg, m.keys.widenSidebar):
		m.setSidebarWidth(m.sidebarWidth + 1)
	case key.Matches(msg, m.keys.toggleSidebar):
		m.sidebarVisible = !m.sidebarVisible
	case key.Matches(msg, m.keys.activityLog):
		return m, m.openActivityLog()
	case key.Matches(msg, m.keys.copyContent):
		return m, m.copyFocused()
	}
	return m, nil
}

// handleInputModeKey routes keys while a modal is open.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.closeOverlay), key.Matches(msg, m.keys.activityLog):
		m.mode = modeNone
		m.status = "ready"
	}
	return m, nil
}

// handleMouseClick starts a gesture: sidebar resize, category pick, tile drag or tile press.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll || m.mode != modeNone || msg.Button != tea.MouseLeft {
		return m, nil
	}
	if m.onSidebarEdge(msg.X, msg.Y) {
		m.drag = dragState{kind: dragSidebar}
		return m, nil
	}
	if idx, ok := m.sidebarRowAt(msg.X, msg.Y); ok {
		m.sidebarCursor = idx
		m.pickSidebarCategory()
		return m, nil
	}

	proj := m.gridProjection()
	col, row, ok := proj.cellAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	idx, ok := tileIndexAt(m.snap.Tiles, m.focus, col, row)
	if !ok {
		return m, nil
	}
	m.focus = idx
	tile := m.snap.Tiles[idx]
	if m.snap.Mode != domain.ModeArrange {
		m.dispatch(app.PressTile{ID: tile.ID})
		return m, nil
	}
	if m.onDeleteAffordance(tile.Rect, msg.X, msg.Y) {
		m.dispatch(app.DeleteTile{ID: tile.ID})
		return m, nil
	}
	kind := dragMove
	if col == tile.Rect.X+tile.Rect.W-1 && row == tile.Rect.Y+tile.Rect.H-1 {
		kind = dragResize
	}
	m.drag = dragState{
		kind:     kind,
		index:    idx,
		tileID:   tile.ID,
		origin:   tile.Rect,
		preview:  tile.Rect,
		startCol: col,
		startRow: row,
	}
	return m, nil
}

// handleMouseMotion updates live feedback for the gesture in flight.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	switch m.drag.kind {
	case dragNone:
		return m, nil
	case dragSidebar:
		m.setSidebarWidth(msg.X + 1)
		return m, nil
	default:
		col, row := m.gridProjection().clampedCellAt(msg.X, msg.Y)
		m.drag = m.drag.follow(col, row)
		return m, nil
	}
}

// handleMouseRelease commits the gesture in flight.
func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	d := m.drag
	m.drag = dragState{}
	switch d.kind {
	case dragSidebar:
		m.setSidebarWidth(msg.X + 1)
		m.status = fmt.Sprintf("sidebar width %d", m.sidebarWidth)
		return m, nil
	case dragMove, dragResize:
		col, row := m.gridProjection().clampedCellAt(msg.X, msg.Y)
		d = d.follow(col, row)
		if d.preview != d.origin {
			m.dispatch(app.MoveTile{Index: d.index, Rect: d.preview})
		}
		if m.snap.SelectedCategory.Assigned() {
			m.dispatch(app.DropTile{ID: d.tileID})
		}
		return m, nil
	}

	if !m.snap.Armed() {
		return m, nil
	}
	releasedOn := 0
	if col, row, ok := m.gridProjection().cellAt(msg.X, msg.Y); ok {
		if idx, ok := tileIndexAt(m.snap.Tiles, m.focus, col, row); ok {
			releasedOn = m.snap.Tiles[idx].ID
		}
	}
	m.dispatch(app.ReleaseTile{ID: releasedOn})
	return m, nil
}

// dispatch applies one intent inline so gesture events keep their delivery order.
func (m *Model) dispatch(in app.Intent) app.Outcome {
	outcome, err := m.svc.Dispatch(context.Background(), in)
	m.snap = m.svc.Snapshot()
	m.clampFocus()
	if outcome.Applied && reshapesTiles(in) && (m.drag.kind == dragMove || m.drag.kind == dragResize) {
		m.drag = dragState{}
	}
	switch {
	case err != nil:
		m.status = "activity log: " + err.Error()
	case outcome.Applied:
		m.status = m.appliedStatus(in)
	case outcome.Reason != nil:
		if status := rejectedStatus(in, outcome.Reason); status != "" {
			m.status = status
		}
	}
	return outcome
}

// reshapesTiles reports whether an applied intent can renumber tiles or reset their rects.
// A tile drag captured before such a change would land on the wrong tile.
func reshapesTiles(in app.Intent) bool {
	switch in.(type) {
	case app.AddTile, app.SetCount, app.DeleteTile, app.ApplyLayout, app.ToggleMode, app.SetMode:
		return true
	}
	return false
}

// appliedStatus describes an applied intent for the status line.
func (m Model) appliedStatus(in app.Intent) string {
	switch in := in.(type) {
	case app.ToggleMode, app.SetMode:
		return "mode: " + m.snap.Mode.String()
	case app.AddTile, app.SetCount:
		return fmt.Sprintf("tiles: %d", m.snap.Count)
	case app.DeleteTile:
		return fmt.Sprintf("deleted tile %d", in.ID)
	case app.MoveTile:
		return fmt.Sprintf("tile %d -> %s", in.Index+1, in.Rect)
	case app.ApplyLayout:
		return "layout updated"
	case app.PressTile:
		return fmt.Sprintf("tile %d armed", in.ID)
	case app.ReleaseTile:
		return fmt.Sprintf("tile %d <- %s", in.ID, m.snap.SelectedCategory)
	case app.DropTile:
		return fmt.Sprintf("tile %d <- %s", in.ID, m.snap.SelectedCategory)
	case app.SelectCategory:
		return "category: " + in.Category.String()
	case app.ClearCategory:
		return "category cleared"
	default:
		return "ready"
	}
}

// rejectedStatus explains a refused intent; empty means keep the current status.
func rejectedStatus(in app.Intent, reason error) string {
	switch {
	case errors.Is(reason, domain.ErrWrongMode):
		switch in.(type) {
		case app.PressTile, app.ReleaseTile:
			return "switch to assign mode to pick tiles"
		default:
			return "switch to arrange mode to edit tiles"
		}
	case errors.Is(reason, domain.ErrTileCap):
		return fmt.Sprintf("already at %d tiles", domain.MaxTiles)
	case errors.Is(reason, domain.ErrTileFloor):
		return "cannot delete the last tile"
	case errors.Is(reason, domain.ErrNoCategory):
		if _, ok := in.(app.ClearCategory); ok {
			return ""
		}
		return "select a category first"
	case errors.Is(reason, domain.ErrNotArmed), errors.Is(reason, domain.ErrModeUnchanged):
		return ""
	default:
		return reason.Error()
	}
}

// focusedTile returns the tile keyboard actions apply to.
func (m Model) focusedTile() (domain.Tile, bool) {
	if m.focus < 0 || m.focus >= len(m.snap.Tiles) {
		return domain.Tile{}, false
	}
	return m.snap.Tiles[m.focus], true
}

// clampFocus keeps focus on an existing tile.
func (m *Model) clampFocus() {
	m.focus = clamp(m.focus, 0, len(m.snap.Tiles)-1)
}

// cycleFocus moves focus through the tile sequence.
func (m *Model) cycleFocus(delta int) {
	m.focus = wrapIndex(m.focus, delta, len(m.snap.Tiles))
}

// moveFocused shifts the focused tile while arranging, and moves focus otherwise.
func (m *Model) moveFocused(dx, dy int) {
	if m.snap.Mode != domain.ModeArrange {
		m.cycleFocus(dx + dy)
		return
	}
	tile, ok := m.focusedTile()
	if !ok {
		return
	}
	next := moveRect(tile.Rect, dx, dy)
	if next == tile.Rect {
		return
	}
	m.dispatch(app.MoveTile{Index: m.focus, Rect: next})
}

// resizeFocused grows or shrinks the focused tile from its bottom-right corner.
func (m *Model) resizeFocused(dw, dh int) {
	tile, ok := m.focusedTile()
	if !ok {
		return
	}
	next := resizeRect(tile.Rect, dw, dh)
	if next == tile.Rect && m.snap.Mode == domain.ModeArrange {
		return
	}
	m.dispatch(app.MoveTile{Index: m.focus, Rect: next})
}

// activateFocused performs a full click in assign mode and a drop in arrange mode.
func (m *Model) activateFocused() {
	tile, ok := m.focusedTile()
	if !ok {
		return
	}
	if m.snap.Mode == domain.ModeArrange {
		m.dispatch(app.DropTile{ID: tile.ID})
		return
	}
	if outcome := m.dispatch(app.PressTile{ID: tile.ID}); !outcome.Applied {
		return
	}
	m.dispatch(app.ReleaseTile{ID: tile.ID})
}

// pickSidebarCategory selects the category under the sidebar cursor. Picking the
// selected category again keeps it selected; esc clears.
func (m *Model) pickSidebarCategory() {
	categories := domain.Categories()
	if m.sidebarCursor < 0 || m.sidebarCursor >= len(categories) {
		return
	}
	m.dispatch(app.SelectCategory{Category: categories[m.sidebarCursor]})
}

// setSidebarWidth stores a clamped sidebar width.
func (m *Model) setSidebarWidth(width int) {
	m.sidebarWidth = clamp(width, sidebarMinWidth, sidebarMaxWidth)
}

// onSidebarEdge reports whether the point is on the sidebar resize handle.
func (m Model) onSidebarEdge(x, y int) bool {
	if !m.sidebarVisible {
		return false
	}
	return x == m.sidebarWidth-1 && y >= bodyTop && y < bodyTop+m.bodyHeight()
}

// sidebarRowAt maps a point to a category index in the sidebar.
func (m Model) sidebarRowAt(x, y int) (int, bool) {
	if !m.sidebarVisible || x < 0 || x >= m.sidebarWidth-1 {
		return 0, false
	}
	idx := y - bodyTop - sidebarHeaderRows
	if idx < 0 || idx >= len(domain.Categories()) {
		return 0, false
	}
	return idx, true
}

// onDeleteAffordance reports whether the point hits a tile's delete marker.
func (m Model) onDeleteAffordance(rect domain.Rect, x, y int) bool {
	sx, sy, w, h := m.gridProjection().screenRect(rect)
	if w < 3 || h < 3 {
		return false
	}
	right := sx + w - 1
	return y == sy+1 && x >= right-len(deleteAffordance) && x < right
}

// openActivityLog enters activity-log mode and triggers the journal fetch.
func (m *Model) openActivityLog() tea.Cmd {
	m.mode = modeActivityLog
	m.status = "activity log"
	return m.loadActivityLog
}

// loadActivityLog loads journaled events for the session.
func (m Model) loadActivityLog() tea.Msg {
	events, err := m.svc.ListActivity(context.Background(), m.activityLimit)
	if err != nil {
		return activityLogLoadedMsg{err: err}
	}
	return activityLogLoadedMsg{entries: mapChangeEventsToActivityEntries(events)}
}

// copyFocused copies the focused tile's content text.
func (m *Model) copyFocused() tea.Cmd {
	tile, ok := m.focusedTile()
	if !ok {
		return nil
	}
	text := m.tileContentText(tile.Category)
	write := m.copyText
	return func() tea.Msg {
		return copiedMsg{tileID: tile.ID, err: write(text)}
	}
}

// mapChangeEventsToActivityEntries converts newest-first journal events into modal rows.
func mapChangeEventsToActivityEntries(events []domain.ChangeEvent) []activityEntry {
	entries := make([]activityEntry, 0, len(events))
	// Journal events are newest-first; modal rendering expects chronological order.
	for idx := len(events) - 1; idx >= 0; idx-- {
		event := events[idx]
		target := strings.TrimSpace(event.Summary)
		if target == "" {
			target = "-"
		}
		entries = append(entries, activityEntry{
			At:      event.OccurredAt.UTC(),
			Summary: string(event.Operation),
			Target:  target,
		})
	}
	return entries
}

// formatActivityTimestamp renders a compact local timestamp for activity rows.
func formatActivityTimestamp(at time.Time) string {
	if at.IsZero() {
		return "--:--:--"
	}
	local := at.Local()
	now := time.Now().In(local.Location())
	if local.Year() != now.Year() || local.YearDay() != now.YearDay() {
		return local.Format("01-02 15:04")
	}
	return local.Format("15:04:05")
}

// wrapIndex steps current by delta inside [0, total).
func wrapIndex(current, delta, total int) int {
	if total <= 0 {
		return 0
	}
	next := (current + delta) % total
	if next < 0 {
		next += total
	}
	return next
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate truncates the requested operation.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
