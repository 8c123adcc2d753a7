package tui

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
)

// commandWords are the console commands, each an alias for a dashboard key.
var commandWords = []string{"init", "step", "charge", "bridge", "transfer", "status", "reset", "quit"}

// suggestThreshold is the minimum similarity ratio for a "did you mean" hint.
const suggestThreshold = 0.5

func (a *App) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		a.commandOpen = false
		return a, nil
	case "enter":
		a.commandOpen = false
		return a.runCommand(strings.TrimSpace(a.commandInput))
	case "backspace":
		if len(a.commandInput) > 0 {
			a.commandInput = a.commandInput[:len(a.commandInput)-1]
		}
		return a, nil
	default:
		if msg.Type == tea.KeyRunes {
			a.commandInput += string(msg.Runes)
		}
		return a, nil
	}
}

func (a *App) runCommand(word string) (tea.Model, tea.Cmd) {
	switch word {
	case "":
		return a, nil
	case "init":
		a.doInit()
	case "step":
		a.doStep()
	case "charge":
		a.charging = !a.charging
		a.status = fmt.Sprintf("charging %v", a.charging)
	case "bridge":
		a.doBridge()
	case "transfer":
		a.doTransfer()
	case "status":
		a.state = viewStatus
	case "reset":
		a.doReset()
	case "quit":
		return a, tea.Quit
	default:
		if best, ratio := closestCommand(word); ratio >= suggestThreshold {
			a.status = fmt.Sprintf("unknown command %q, did you mean %q?", word, best)
		} else {
			a.status = fmt.Sprintf("unknown command %q", word)
		}
	}
	return a, nil
}

// closestCommand scores the input against every known command word by
// normalized levenshtein similarity and returns the best match.
func closestCommand(input string) (string, float64) {
	input = strings.ToLower(input)
	best := ""
	bestRatio := 0.0
	for _, w := range commandWords {
		dist := levenshtein.ComputeDistance(input, w)
		ratio := 1 - float64(dist)/float64(max(len(input), len(w)))
		if ratio > bestRatio {
			best = w
			bestRatio = ratio
		}
	}
	return best, bestRatio
}
