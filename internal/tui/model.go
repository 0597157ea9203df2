package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"xpeak/internal/engine"
	"xpeak/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	state *engine.State

	expanded map[string]bool
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	state *engine.State
	err   error
}

type toggledMsg struct {
	id  string
	res engine.ToggleResult
	err error
}

type confirmedMsg struct {
	res engine.ConfirmResult
	err error
}

type tickMsg time.Time

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		expanded: map[string]bool{},
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Snapshot(m.ctx)
		return loadedMsg{state: st, err: err}
	}
}

func (m boardModel) toggleCmd(questID, taskID string) tea.Cmd {
	return func() tea.Msg {
		var res engine.ToggleResult
		var err error
		if questID == "" {
			res, err = m.svc.ToggleTask(m.ctx, taskID)
		} else {
			res, err = m.svc.ToggleQuestTask(m.ctx, questID, taskID)
		}
		return toggledMsg{id: taskID, res: res, err: err}
	}
}

func (m boardModel) confirmCmd(accept bool) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ConfirmQuestBonus(m.ctx, accept)
		return confirmedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		// Popup expiry is time-based; keep redrawing while any are live.
		return m, tickCmd()
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		for _, q := range m.state.Quests {
			if _, seen := m.expanded[q.ID]; !seen {
				m.expanded[q.ID] = true
			}
		}
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		switch {
		case !msg.res.Found:
			m.lastLog = "Task not found."
		case msg.res.PendingCreated:
			m.lastLog = "Quest complete! Press y to claim the bonus, n to skip."
		case msg.res.LevelUp:
			m.lastLog = fmt.Sprintf("%s %s", ui.XPText(msg.res.XPDelta), ui.BadgeLevelUp)
		default:
			m.lastLog = ui.XPText(msg.res.XPDelta)
		}
		return m, m.loadCmd()
	case confirmedMsg:
		if msg.err != nil {
			m.lastLog = "Confirm failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.Accepted {
			m.lastLog = fmt.Sprintf("Quest bonus claimed: %s", ui.XPText(msg.res.XPDelta))
		} else {
			m.lastLog = "Quest bonus skipped."
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "y":
		if m.state != nil && m.state.Pending != nil {
			return m, m.confirmCmd(true)
		}
		return m, nil
	case "n":
		if m.state != nil && m.state.Pending != nil {
			return m, m.confirmCmd(false)
		}
		return m, nil
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if lines := m.lines(); m.selected < len(lines)-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		lines := m.lines()
		if m.selected < 0 || m.selected >= len(lines) {
			return m, nil
		}
		line := lines[m.selected]
		if line.kind == lineQuest {
			m.expanded[line.id] = !m.expanded[line.id]
		}
		return m, nil
	case "c", " ":
		lines := m.lines()
		if m.selected < 0 || m.selected >= len(lines) {
			return m, nil
		}
		line := lines[m.selected]
		switch line.kind {
		case lineTask, lineQuestTask:
			return m, m.toggleCmd(line.questID, line.id)
		default:
			m.lastLog = "Select a task to toggle."
			return m, nil
		}
	}
	return m, nil
}

type lineKind int

const (
	lineQuest lineKind = iota
	lineCategory
	lineQuestTask
	lineTask
	lineHeading
)

type boardLine struct {
	kind    lineKind
	id      string
	questID string
	text    string
}

func (m boardModel) lines() []boardLine {
	if m.state == nil {
		return nil
	}
	now := m.svc.Now()
	popups := m.svc.Popups()

	var out []boardLine

	if len(m.state.Quests) > 0 {
		out = append(out, boardLine{kind: lineHeading, text: ui.H2.Render(ui.IconQuest + " Quests")})
	}
	for _, q := range m.state.Quests {
		mark := "▸"
		if m.expanded[q.ID] {
			mark = "▾"
		}
		qText := fmt.Sprintf("%s %s", mark, q.Title)
		if q.Complete() {
			qText += " " + ui.Good.Render(ui.IconTrophy)
		}
		if pop, ok := popups.Get(q.ID, now); ok {
			qText += " " + ui.XPText(pop.Amount)
		}
		out = append(out, boardLine{kind: lineQuest, id: q.ID, text: qText})
		if !m.expanded[q.ID] {
			continue
		}
		for _, c := range q.Categories {
			cText := "  " + c.Title
			if c.Complete() {
				cText += " " + ui.Good.Render(ui.IconDone)
			}
			if pop, ok := popups.Get(c.ID, now); ok {
				cText += " " + ui.XPText(pop.Amount)
			}
			out = append(out, boardLine{kind: lineCategory, id: c.ID, questID: q.ID, text: cText})
			for _, t := range c.Tasks {
				box := "[ ]"
				if t.Completed() {
					box = "[x]"
				}
				tText := fmt.Sprintf("    %s %s %s", box, t.Name, ui.Muted.Render(string(t.Difficulty)))
				if pop, ok := popups.Get(t.ID, now); ok {
					tText += " " + ui.XPText(pop.Amount)
				}
				out = append(out, boardLine{kind: lineQuestTask, id: t.ID, questID: q.ID, text: tText})
			}
		}
	}

	if len(m.state.Tasks) > 0 {
		out = append(out, boardLine{kind: lineHeading, text: ui.H2.Render(ui.IconBolt + " Tasks")})
	}
	for _, t := range m.state.Tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		text := fmt.Sprintf("  %s %s %s", box, t.Title, ui.Muted.Render(string(t.Difficulty)))
		if t.IsHabit {
			text += " " + ui.IconLoop
			if t.Streak > 0 {
				text += fmt.Sprintf(" %s%d", ui.IconFlame, t.Streak)
			}
		}
		if pop, ok := popups.Get(t.ID, now); ok {
			text += " " + ui.XPText(pop.Amount)
		}
		out = append(out, boardLine{kind: lineTask, id: t.ID, text: text})
	}

	return out
}

func (m boardModel) View() string {
	if m.loading && m.state == nil {
		return "Loading…"
	}
	if m.err != nil && m.state == nil {
		return ui.Bad.Render(ui.IconError + " " + m.err.Error())
	}
	if m.state == nil {
		return ""
	}

	var b strings.Builder

	p := m.state.Profile
	prog := engine.GetLevelProgress(p.TotalXP)
	header := fmt.Sprintf("%s  Level %d  %s  %d/%d XP",
		ui.Heading(ui.IconSparkle, "XPeak"),
		p.Level,
		ui.ProgressBar(prog.Percentage, 24),
		prog.Current, prog.Max,
	)
	b.WriteString(header + "\n")

	if m.state.Pending != nil {
		b.WriteString(ui.Gold.Render(fmt.Sprintf("%s Quest bonus +%d XP pending · y to claim, n to skip", ui.IconTrophy, m.state.Pending.Amount)) + "\n")
	}
	b.WriteString("\n")

	for i, line := range m.lines() {
		text := line.text
		if i == m.selected {
			text = ui.SelectedRow.Render(text)
		}
		b.WriteString(text + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render("space: toggle · enter: expand · y/n: bonus · r: refresh · q: quit") + "\n")
	b.WriteString(m.lastLog + "\n")
	return b.String()
}
