// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

// Package tui implements the interactive credential picker used by the
// terminal client. The picker works on sanitized metadata only.
package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlozanop/credvault/models"
)

// ErrUserQuit is returned when the user leaves the picker without choosing.
var ErrUserQuit = errors.New("user quit")

// Pick runs the full-screen picker over the given credentials and returns
// the one the user selected.
func Pick(credentials []models.CredentialResponse) (models.CredentialResponse, error) {
	program := tea.NewProgram(newPickerModel(credentials), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return models.CredentialResponse{}, fmt.Errorf("error running picker: %w", err)
	}

	model, ok := final.(pickerModel)
	if !ok {
		return models.CredentialResponse{}, fmt.Errorf("unexpected final model %T", final)
	}
	if !model.chosen {
		return models.CredentialResponse{}, ErrUserQuit
	}

	chosen, ok := model.current()
	if !ok {
		return models.CredentialResponse{}, ErrUserQuit
	}
	return chosen, nil
}
