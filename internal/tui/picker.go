// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rlozanop/credvault/models"
)

// pickerModel is the interactive credential picker: a filterable list of
// sanitized credential metadata. It never displays or holds a password;
// revealing happens outside the picker, after the user has made a choice.
type pickerModel struct {
	all     []models.CredentialResponse
	visible []models.CredentialResponse
	idx     int

	filtering bool
	filter    textinput.Model

	chosen bool
}

func newPickerModel(credentials []models.CredentialResponse) pickerModel {
	filter := textinput.New()
	filter.Placeholder = "service name"
	filter.CharLimit = 64

	return pickerModel{
		all:     credentials,
		visible: credentials,
		filter:  filter,
	}
}

func (m pickerModel) current() (models.CredentialResponse, bool) {
	if len(m.visible) == 0 || m.idx < 0 || m.idx >= len(m.visible) {
		return models.CredentialResponse{}, false
	}
	return m.visible[m.idx], true
}

func (m *pickerModel) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		m.visible = m.all
	} else {
		filtered := make([]models.CredentialResponse, 0, len(m.all))
		for _, credential := range m.all {
			if strings.Contains(strings.ToLower(credential.ServiceName), needle) {
				filtered = append(filtered, credential)
			}
		}
		m.visible = filtered
	}

	if m.idx >= len(m.visible) {
		m.idx = len(m.visible) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch {
		case key.Matches(keyMsg, keys.enter):
			m.filtering = false
			return m, nil
		case key.Matches(keyMsg, keys.esc):
			m.filtering = false
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch {
	case key.Matches(keyMsg, keys.quit), key.Matches(keyMsg, keys.esc):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.visible)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if _, ok := m.current(); ok {
			m.chosen = true
			return m, tea.Quit
		}
	case key.Matches(keyMsg, keys.filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m pickerModel) View() string {
	out := titleStyle.Render("credvault") + "\n\n"

	if m.filtering || m.filter.Value() != "" {
		out += "filter: " + m.filter.View() + "\n\n"
	}

	if len(m.visible) == 0 {
		out += dimStyle.Render("no credentials") + "\n"
	} else {
		for i, credential := range m.visible {
			line := fmt.Sprintf("%s  %s", credential.ServiceName, dimStyle.Render(credential.AccountUsername))
			if i == m.idx {
				out += cursorStyle.Render("> "+line) + "\n"
			} else {
				out += "  " + line + "\n"
			}
		}
	}

	out += "\n" + helpStyle.Render("enter select  / filter  q quit")
	return appStyle.Render(out)
}
