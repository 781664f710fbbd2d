package console

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/spigell/career-navigator/internal/flow/results"
)

const (
	loadingText = "Loading career paths..."
	emptyText   = "No career paths matched your profile. Try adding more skills or interests."
	errorText   = "Error loading career paths. Check the logs for details."
	gapsHeading = "Skill Gaps to Address"
)

// ResultsView renders career path cards and tracks the submit control.
type ResultsView struct {
	screen *Screen

	mu            sync.Mutex
	submitEnabled bool
	cards         []results.Card
}

func NewResultsView(screen *Screen) *ResultsView {
	return &ResultsView{screen: screen, submitEnabled: true}
}

func (v *ResultsView) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.submitEnabled = enabled
}

func (v *ResultsView) SubmitEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.submitEnabled
}

// Cards returns the cards currently shown in the results region.
func (v *ResultsView) Cards() []results.Card {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]results.Card(nil), v.cards...)
}

func (v *ResultsView) ShowLoading() {
	v.setCards(nil)
	v.screen.Println(mutedStyle.Render(loadingText))
}

func (v *ResultsView) ShowCards(cards []results.Card) {
	v.setCards(cards)
	for _, card := range cards {
		v.screen.Println(renderCard(card))
	}
}

func (v *ResultsView) ShowEmpty() {
	v.setCards(nil)
	v.screen.Println(mutedStyle.Render(emptyText))
}

func (v *ResultsView) ShowError(error) {
	v.setCards(nil)
	v.screen.Println(errorStyle.Render(errorText))
}

func (v *ResultsView) setCards(cards []results.Card) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cards = cards
}

func renderCard(card results.Card) string {
	gaps := make([]string, 0, len(card.SkillGaps))
	for _, gap := range card.SkillGaps {
		gaps = append(gaps, "  • "+clean(gap))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(clean(card.Title)),
		clean(card.Description),
		"",
		headingStyle.Render(gapsHeading),
		strings.Join(gaps, "\n"),
	)

	return cardStyle.Render(body)
}
