package mocktest

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/mocktest"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/router"
)

func newResultsScreen() *MockTestScreen {
	mock := llm.NewMockProvider()
	m := New(mocktest.NewGenerator(mock), mocktest.NewGrader(mock, nil), notes.NewBuffer())
	m.phase = phaseResults
	m.test = mocktest.NewTest(mocktest.DefaultConfig(), []mocktest.Question{
		{Type: mocktest.TypeMCQ, Question: "q", Options: []string{"a", "b", "c", "d"}, Correct: 1},
	})
	m.results = &mocktest.Results{TotalMarks: 2, Answers: []mocktest.GradedAnswer{{}}}
	return m
}

func TestResults_NewTestReplacesScreen(t *testing.T) {
	m := newResultsScreen()

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command from the new-test key")
	}

	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want router.ReplaceScreenMsg", cmd())
	}
	fresh, ok := msg.Screen.(*MockTestScreen)
	if !ok {
		t.Fatalf("replacement screen is %T", msg.Screen)
	}
	if fresh.phase != phaseConfig {
		t.Errorf("fresh screen phase = %d, want config", fresh.phase)
	}
	if fresh.test != nil || fresh.results != nil {
		t.Error("fresh screen carried over paper state")
	}
}
