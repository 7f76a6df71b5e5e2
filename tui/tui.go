/*
 * tui.go, part of molview.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package tui is a terminal host for a viewer session: it renders the session's
// frames as ASCII art and maps keys and mouse events to session input.
//
// Terminals report key presses but not releases, so a parameter hotkey is armed
// by pressing it and stays held until Esc or another hotkey; the wheel, or + and -,
// then adjust the armed parameter.
package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rmera/molview/session"
	"github.com/rmera/molview/view"
)

// Previewer turns the last rendered frame into text.
type Previewer interface {
	ASCII(cols, rows int) string
}

// Panel is the session error panel of the terminal host.
type Panel struct{ err error }

func (p *Panel) Report(err error) { p.err = err }
func (p *Panel) Clear()           { p.err = nil }

// Err returns the error on display, if any.
func (p *Panel) Err() error { return p.err }

// ReloadMsg asks the model to open a structure file, for instance when it changed on disk.
type ReloadMsg struct{ Path string }

type tickMsg time.Time

type dispatchMsg struct{}

// pixels per arrow key press
const arrowStep = 10

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#3C3C8C")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF"))
)

// Model is the bubbletea model of the viewer.
type Model struct {
	s       *session.Session
	preview Previewer
	panel   *Panel
	queue   *session.Queue
	fps     int

	width, height int
	armed         rune
	typing        bool
	text          []rune
	done          chan struct{}
}

// New returns a model for s. The session must have been created with panel as
// its error panel and queue as its dispatcher.
func New(s *session.Session, preview Previewer, panel *Panel, queue *session.Queue, fps int) *Model {
	if fps <= 0 {
		fps = 30
	}
	return &Model{s: s, preview: preview, panel: panel, queue: queue, fps: fps, width: 80, height: 24, done: make(chan struct{})}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitDispatch delivers a message when the session has completions to run.
func (m *Model) waitDispatch() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.queue.Ready():
			return dispatchMsg{}
		case <-m.done:
			return nil
		}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitDispatch())
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	return m, tea.Quit
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		m.s.Tick()
		return m, m.tick()
	case dispatchMsg:
		m.queue.Drain()
		return m, m.waitDispatch()
	case ReloadMsg:
		m.s.Open(msg.Path)
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

// cellToPixels converts terminal cell coordinates to output pixels.
func (m *Model) cellToPixels(cx, cy int) (float64, float64) {
	res := float64(m.s.View().Resolution)
	return float64(cx) * res / float64(max(m.width, 1)), float64(cy) * res / float64(max(m.bodyRows(), 1))
}

func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := m.cellToPixels(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.s.Wheel(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.s.Wheel(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.s.PointerDown(0, x, y)
	case msg.Action == tea.MouseActionMotion:
		m.s.PointerMove(x, y, msg.Shift)
	case msg.Action == tea.MouseActionRelease:
		m.s.PointerUp(0)
	}
}

func (m *Model) arm(key rune) {
	if m.armed != 0 {
		m.s.KeyUp(m.armed)
	}
	m.armed = key
	if key != 0 {
		m.s.KeyDown(key)
	}
}

func (m *Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typing {
		switch msg.Type {
		case tea.KeyEnter:
			m.typing = false
			m.s.SubmitNotation(string(m.text))
			m.text = m.text[:0]
		case tea.KeyEsc:
			m.typing = false
			m.text = m.text[:0]
		case tea.KeyBackspace:
			if len(m.text) > 0 {
				m.text = m.text[:len(m.text)-1]
			}
		case tea.KeyRunes:
			m.text = append(m.text, msg.Runes...)
		case tea.KeyCtrlC:
			return m.quit()
		}
		return m, nil
	}
	switch msg.String() {
	case "ctrl+c", "Q":
		return m.quit()
	case "esc":
		m.arm(0)
	case "/":
		m.typing = true
	case "+", "=":
		m.s.Wheel(-1)
	case "-", "_":
		m.s.Wheel(1)
	case "left":
		m.s.Drag(-arrowStep, 0, false)
	case "right":
		m.s.Drag(arrowStep, 0, false)
	case "up":
		m.s.Drag(0, -arrowStep, false)
	case "down":
		m.s.Drag(0, arrowStep, false)
	case "shift+left":
		m.s.Drag(-arrowStep, 0, true)
	case "shift+right":
		m.s.Drag(arrowStep, 0, true)
	case "shift+up":
		m.s.Drag(0, -arrowStep, true)
	case "shift+down":
		m.s.Drag(0, arrowStep, true)
	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			k := unicode.ToLower(msg.Runes[0])
			if _, ok := view.HotkeyParam(k); ok {
				m.arm(k)
			}
		}
	}
	return m, nil
}

func (m *Model) bodyRows() int {
	return max(m.height-3, 1)
}

func (m *Model) header() string {
	sys := m.s.System()
	v := m.s.View()
	zoom, _ := v.Percent(view.Zoom)
	parts := []string{
		"molview",
		fmt.Sprintf("%s  %d atoms  %d bonds", orDash(sys.Formula()), sys.Len(), len(sys.Bonds())),
		fmt.Sprintf("zoom %d%%", zoom),
	}
	if m.armed != 0 {
		p, _ := view.HotkeyParam(m.armed)
		pc, _ := v.Percent(p.Name)
		parts = append(parts, fmt.Sprintf("[%c] %s %d%%", m.armed, p.Name, pc))
	}
	if n := m.s.Pending(); n > 0 {
		parts = append(parts, fmt.Sprintf("converting (%d)", n))
	}
	return headerStyle.Render(strings.Join(parts, " | "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (m *Model) footer() string {
	if m.typing {
		return promptStyle.Render("notation> " + string(m.text) + "_")
	}
	if err := m.panel.Err(); err != nil {
		return errorStyle.Render("error: " + err.Error())
	}
	return helpStyle.Render("drag/arrows rotate, shift pans, wheel/+- zoom or adjust, a z b d p s w o l q arm, / notation, esc disarm, Q quit")
}

func (m *Model) View() string {
	body := m.preview.ASCII(m.width, m.bodyRows())
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), strings.TrimSuffix(body, "\n"), m.footer())
}
