// Package ui draws the game in a terminal with tcell and turns key presses
// into game actions.
package ui

import "github.com/gdamore/tcell/v2"

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return initScreen(s)
}

// NewSimulationScreen creates an in-memory screen of the given size.
func NewSimulationScreen(width, height int) (*Screen, tcell.SimulationScreen, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := initScreen(sim)
	if err != nil {
		return nil, nil, err
	}
	sim.SetSize(width, height)
	return s, sim, nil
}

func initScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes text from (x, y) to the right, clipped to the screen.
// It returns the column after the last character.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	w, _ := s.Size()
	for _, ch := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, ch, style)
		x++
	}
	return x
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}
