package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParticipantsKeepsOrderAndAppendsSuffix(t *testing.T) {
	got := ParseParticipants("628123 628567")

	assert.Equal(t, []string{"628123@s.whatsapp.net", "628567@s.whatsapp.net"}, got)
}

func TestParseParticipants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "strips formatting", text: "+62-812-3 (628)567", want: []string{"628123@s.whatsapp.net", "628567@s.whatsapp.net"}},
		{name: "newlines and tabs split tokens", text: "111\n222\t333", want: []string{"111@s.whatsapp.net", "222@s.whatsapp.net", "333@s.whatsapp.net"}},
		{name: "degenerate tokens dropped", text: "abc 628123 ---", want: []string{"628123@s.whatsapp.net"}},
		{name: "all non-digit", text: "alice bob", want: []string{}},
		{name: "empty", text: "   ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseParticipants(tt.text))
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{text: "7", want: 7},
		{text: "999", want: 10},
		{text: "abc", want: 1},
		{text: "", want: 1},
		{text: "0", want: 1},
		{text: "-3", want: 1},
		{text: " 4 ", want: 4},
		{text: "3 groups", want: 3},
		{text: "10", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.text))
		})
	}
}

func TestUnitLabel(t *testing.T) {
	assert.Equal(t, "Team #3", UnitLabel("Team", 3))
}

func TestSessionBeginRunRequiresReadyAndCompleteSpec(t *testing.T) {
	s := NewSession()
	require.ErrorIs(t, s.BeginRun(), ErrWrongPhase)

	s.Phase = PhaseReady
	require.ErrorIs(t, s.BeginRun(), ErrIncompleteSpec)

	s.Spec = TaskSpec{Name: "Team", Participants: []string{"1@s.whatsapp.net"}, Count: 2}
	s.CancelRequested = true
	require.NoError(t, s.BeginRun())
	assert.Equal(t, PhaseRunning, s.Phase)
	assert.True(t, s.Running)
	assert.False(t, s.CancelRequested)
}

func TestSessionRequestCancelOnlyWhileRunning(t *testing.T) {
	s := NewSession()
	require.ErrorIs(t, s.RequestCancel(), ErrNothingToStop)
	assert.False(t, s.CancelRequested)

	s.Running = true
	require.NoError(t, s.RequestCancel())
	assert.True(t, s.CancelRequested)
}

func TestSessionResetClearsEverything(t *testing.T) {
	s := Session{
		Phase:           PhaseRunning,
		Spec:            TaskSpec{Name: "Team", Participants: []string{"1@s.whatsapp.net"}, Count: 2},
		Running:         true,
		CancelRequested: true,
	}
	s.Reset()

	assert.Equal(t, NewSession(), s)
	assert.True(t, s.Spec.IsZero())
}

func TestTaskSpecCloneDoesNotShareParticipants(t *testing.T) {
	spec := TaskSpec{Name: "Team", Participants: []string{"1@s.whatsapp.net"}, Count: 1}
	clone := spec.Clone()
	clone.Participants[0] = "2@s.whatsapp.net"

	assert.Equal(t, "1@s.whatsapp.net", spec.Participants[0])
}

func TestParseAction(t *testing.T) {
	for _, action := range Actions() {
		got, err := ParseAction(string(action))
		require.NoError(t, err)
		assert.Equal(t, action, got)
	}

	_, err := ParseAction("launch")
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestPhaseCollecting(t *testing.T) {
	assert.True(t, PhaseAwaitingName.Collecting())
	assert.True(t, PhaseAwaitingCount.Collecting())
	assert.False(t, PhaseReady.Collecting())
	assert.False(t, PhaseRunning.Collecting())
}

func TestParseBot(t *testing.T) {
	for _, bot := range Bots() {
		got, err := ParseBot(" " + strings.ToUpper(string(bot)) + " ")
		require.NoError(t, err)
		assert.Equal(t, bot, got)
	}

	_, err := ParseBot("whatsapp")
	require.ErrorIs(t, err, ErrUnknownBot)
}
