package occurrences

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/messages"
	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

type request struct {
	term   string
	offset int
}

// MockTermService implements driving.TermService for testing.
type MockTermService struct {
	annotated map[int]bool
	requests  []request
}

func (m *MockTermService) Terms(context.Context, int, int) (domain.Page[domain.TermFrequency], error) {
	return domain.Page[domain.TermFrequency]{}, nil
}

func (m *MockTermService) Occurrences(_ context.Context, term string, offset, size int) (domain.Page[domain.Occurrence], error) {
	m.requests = append(m.requests, request{term, offset})
	total := 12
	if term == "Leiden" {
		total = 3
	}
	var items []domain.Occurrence
	for i := offset; i < offset+size && i < total; i++ {
		idx := 100 + i
		items = append(items, domain.Occurrence{
			Index:         idx,
			Source:        "ead/1",
			ControlAccess: i == 0,
			Annotated:     m.annotated[idx],
		})
	}
	return domain.Page[domain.Occurrence]{Offset: offset, Size: size, Total: total, Items: items}, nil
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func deliver(t *testing.T, v *View, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestView_NoTerm(t *testing.T) {
	v := NewView(nil, &MockTermService{}, 10)

	assert.Empty(t, v.Term())
	assert.Nil(t, v.Reload())
	assert.Contains(t, v.View(), "No term selected.")

	_, cmd := v.Update(key("enter"))
	assert.Nil(t, cmd)
}

func TestView_SetTerm(t *testing.T) {
	svc := &MockTermService{}
	v := NewView(nil, svc, 10)

	deliver(t, v, v.SetTerm("Amsterdam"))

	assert.Equal(t, "Amsterdam", v.Term())
	assert.Len(t, v.Items(), 10)
	assert.Equal(t, []request{{"Amsterdam", 0}}, svc.requests)

	out := v.View()
	assert.Contains(t, out, "Amsterdam")
	assert.Contains(t, out, "[control access]")
	assert.Contains(t, out, "Page 1 of 2 (12 total)")
}

func TestView_SelectOccurrence(t *testing.T) {
	v := NewView(nil, &MockTermService{}, 10)
	deliver(t, v, v.SetTerm("Amsterdam"))

	_, cmd := v.Update(key("right"))
	deliver(t, v, cmd)
	v.Update(key("down"))

	_, cmd = v.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.OccurrenceSelected{Term: "Amsterdam", Index: 111}, cmd())
}

func TestView_SwitchingTermDropsOldResults(t *testing.T) {
	v := NewView(nil, &MockTermService{}, 10)
	stale := v.SetTerm("Amsterdam")
	deliver(t, v, v.SetTerm("Leiden"))

	v.Update(stale())
	assert.Equal(t, "Leiden", v.Term())
	assert.Len(t, v.Items(), 3)
}

func TestView_ReloadShowsAnnotations(t *testing.T) {
	svc := &MockTermService{annotated: map[int]bool{}}
	v := NewView(nil, svc, 10)
	deliver(t, v, v.SetTerm("Leiden"))
	assert.False(t, v.Items()[1].Annotated)

	svc.annotated[101] = true
	deliver(t, v, v.Reload())
	assert.True(t, v.Items()[1].Annotated)
	assert.Contains(t, v.View(), "✓")
}

func TestView_Back(t *testing.T) {
	v := NewView(nil, &MockTermService{}, 10)
	deliver(t, v, v.SetTerm("Leiden"))

	_, cmd := v.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewTerms}, cmd())
}
