package countdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundbell/internal/core/model"
)

func mustStart(t *testing.T, config model.TimerConfig) State {
	t.Helper()
	state, err := Start(config)
	require.NoError(t, err)
	return state
}

// runToDone ticks until the session finishes and returns the tick count and
// every event emitted along the way.
func runToDone(t *testing.T, state State) (int, []Event, State) {
	t.Helper()
	var all []Event
	ticks := 0
	for state.Phase != PhaseDone {
		var events []Event
		state, events = Tick(state)
		all = append(all, events...)
		ticks++
		require.Less(t, ticks, 100000, "session never finished")
	}
	return ticks, all, state
}

func configGrid() []model.TimerConfig {
	var configs []model.TimerConfig
	for _, rounds := range []int{1, 2, 3, 7, 20} {
		for _, work := range []int{5, 10, 60} {
			for _, rest := range []int{0, 5, 30} {
				configs = append(configs, model.TimerConfig{Rounds: rounds, WorkSeconds: work, RestSeconds: rest})
			}
		}
	}
	return configs
}

func TestStart_InitialState(t *testing.T) {
	for _, config := range configGrid() {
		state := mustStart(t, config)
		assert.True(t, state.Started)
		assert.True(t, state.Running)
		assert.False(t, state.Paused)
		assert.True(t, state.PreRoll)
		assert.Equal(t, model.PreRollSeconds, state.PreRollRemaining)
		assert.Equal(t, PhaseWork, state.Phase)
		assert.Equal(t, 1, state.Round)
	}
}

func TestStart_InvalidConfig(t *testing.T) {
	state, err := Start(model.TimerConfig{Rounds: 0, WorkSeconds: 60, RestSeconds: 30})
	require.ErrorIs(t, err, model.ErrInvalidConfig)
	assert.Equal(t, Idle(), state)
	assert.False(t, state.Started)
}

func TestTick_PreRollEndsOnNthTick(t *testing.T) {
	config := model.TimerConfig{Rounds: 2, WorkSeconds: 15, RestSeconds: 5}
	state := mustStart(t, config)

	for i := 1; i < model.PreRollSeconds; i++ {
		var events []Event
		state, events = Tick(state)
		assert.Empty(t, events, "tick %d", i)
		assert.True(t, state.PreRoll)
		assert.Equal(t, model.PreRollSeconds-i, state.PreRollRemaining)
	}

	state, events := Tick(state)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Type: EventPhaseEntered, Phase: PhaseWork, Round: 1, FromPreRoll: true}, events[0])
	assert.False(t, state.PreRoll)
	assert.Equal(t, PhaseWork, state.Phase)
	assert.Equal(t, config.WorkSeconds, state.Remaining)
}

func TestTick_ScenarioThreeRounds(t *testing.T) {
	config := model.TimerConfig{Rounds: 3, WorkSeconds: 10, RestSeconds: 5}
	state := mustStart(t, config)

	type entry struct {
		tick  int
		event Event
	}
	var got []entry
	ticks := 0
	for state.Phase != PhaseDone {
		var events []Event
		state, events = Tick(state)
		ticks++
		for _, event := range events {
			got = append(got, entry{tick: ticks, event: event})
		}
	}

	want := []entry{
		{10, Event{Type: EventPhaseEntered, Phase: PhaseWork, Round: 1, FromPreRoll: true}},
		{20, Event{Type: EventPhaseEntered, Phase: PhaseRest, Round: 1}},
		{25, Event{Type: EventPhaseEntered, Phase: PhaseWork, Round: 2}},
		{35, Event{Type: EventPhaseEntered, Phase: PhaseRest, Round: 2}},
		{40, Event{Type: EventPhaseEntered, Phase: PhaseWork, Round: 3}},
		{50, Event{Type: EventPhaseEntered, Phase: PhaseRest, Round: 3}},
		{55, Event{Type: EventSessionFinished}},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 55, ticks)
	assert.False(t, state.Running)
	assert.Equal(t, 3, state.Round)
}

func TestTick_ScenarioSingleRoundNoRest(t *testing.T) {
	config := model.TimerConfig{Rounds: 1, WorkSeconds: 20, RestSeconds: 0}
	ticks, events, state := runToDone(t, mustStart(t, config))

	assert.Equal(t, 30, ticks)
	require.Len(t, events, 2)
	assert.Equal(t, PhaseWork, events[0].Phase)
	assert.Equal(t, EventSessionFinished, events[1].Type)
	assert.Equal(t, PhaseDone, state.Phase)
}

func TestTick_TotalTicksMatchConfig(t *testing.T) {
	for _, config := range configGrid() {
		ticks, _, _ := runToDone(t, mustStart(t, config))
		assert.Equal(t, config.TotalSeconds(), ticks, "config %+v", config)
	}
}

func TestTick_RoundConservation(t *testing.T) {
	for _, config := range configGrid() {
		_, events, _ := runToDone(t, mustStart(t, config))

		var workRounds []int
		finished := 0
		for _, event := range events {
			switch event.Type {
			case EventPhaseEntered:
				if event.Phase == PhaseWork {
					workRounds = append(workRounds, event.Round)
				}
			case EventSessionFinished:
				finished++
			}
		}

		want := make([]int, config.Rounds)
		for i := range want {
			want[i] = i + 1
		}
		assert.Equal(t, want, workRounds, "config %+v", config)
		assert.Equal(t, 1, finished)
		assert.Equal(t, EventSessionFinished, events[len(events)-1].Type)
	}
}

func TestTick_RestSkippedWhenZero(t *testing.T) {
	for _, config := range configGrid() {
		_, events, _ := runToDone(t, mustStart(t, config))

		rests := 0
		for _, event := range events {
			if event.Type == EventPhaseEntered && event.Phase == PhaseRest {
				rests++
			}
		}
		if config.RestSeconds == 0 {
			assert.Zero(t, rests, "config %+v", config)
		} else {
			assert.Equal(t, config.Rounds, rests, "config %+v", config)
		}
	}
}

func TestTick_DoneIsTerminal(t *testing.T) {
	_, _, done := runToDone(t, mustStart(t, model.TimerConfig{Rounds: 1, WorkSeconds: 5, RestSeconds: 0}))

	for i := 0; i < 5; i++ {
		next, events := Tick(done)
		assert.Equal(t, done, next)
		assert.Empty(t, events)
	}

	paused, events := Pause(done)
	assert.Equal(t, done, paused)
	assert.Empty(t, events)

	resumed, events := Resume(done)
	assert.Equal(t, done, resumed)
	assert.Empty(t, events)
}

func TestTick_PauseFreezes(t *testing.T) {
	config := model.TimerConfig{Rounds: 2, WorkSeconds: 10, RestSeconds: 5}
	state := mustStart(t, config)

	// Freeze during pre-roll and again mid-work.
	for _, advanceBy := range []int{3, 12} {
		for i := 0; i < advanceBy; i++ {
			state, _ = Tick(state)
		}

		var events []Event
		state, events = Pause(state)
		require.Equal(t, []Event{{Type: EventPaused}}, events)

		frozen := state
		for i := 0; i < 50; i++ {
			state, events = Tick(state)
			assert.Empty(t, events)
		}
		assert.Equal(t, frozen, state)

		state, events = Resume(state)
		require.Equal(t, []Event{{Type: EventResumed}}, events)
		assert.False(t, state.Paused)
	}

	// 3 + 12 ticks: pre-roll finished at 10, five ticks into work.
	assert.False(t, state.PreRoll)
	assert.Equal(t, PhaseWork, state.Phase)
	assert.Equal(t, 5, state.Remaining)
}

func TestPauseResume_NoOpWhenRedundant(t *testing.T) {
	state := mustStart(t, model.DefaultTimerConfig())

	same, events := Resume(state)
	assert.Equal(t, state, same)
	assert.Empty(t, events)

	paused, _ := Pause(state)
	again, events := Pause(paused)
	assert.Equal(t, paused, again)
	assert.Empty(t, events)
}

func TestOperations_NoOpWhenIdle(t *testing.T) {
	idle := Idle()

	for _, op := range []func(State) (State, []Event){Tick, Pause, Resume} {
		next, events := op(idle)
		assert.Equal(t, idle, next)
		assert.Empty(t, events)
	}
}

func TestStop_ResetsFromAnyPhase(t *testing.T) {
	config := model.TimerConfig{Rounds: 3, WorkSeconds: 10, RestSeconds: 5}

	for _, ticks := range []int{0, 4, 10, 15, 22, 54, 55, 60} {
		state := mustStart(t, config)
		for i := 0; i < ticks; i++ {
			state, _ = Tick(state)
		}
		if ticks%2 == 0 {
			state, _ = Pause(state)
		}

		stopped, events := Stop(state)
		assert.Equal(t, Idle(), stopped, "after %d ticks", ticks)
		assert.Equal(t, []Event{{Type: EventStopped}}, events)

		restarted := mustStart(t, config)
		assert.Equal(t, mustStart(t, config), restarted)
		assert.True(t, restarted.PreRoll)
		assert.Equal(t, 1, restarted.Round)
	}
}

func TestState_Display(t *testing.T) {
	state := mustStart(t, model.TimerConfig{Rounds: 1, WorkSeconds: 20, RestSeconds: 0})
	assert.Equal(t, model.PreRollSeconds, state.Display())
	assert.True(t, state.Active())

	for i := 0; i < model.PreRollSeconds; i++ {
		state, _ = Tick(state)
	}
	assert.Equal(t, 20, state.Display())

	state, _ = Pause(state)
	assert.False(t, state.Active())
}

func TestState_Stage(t *testing.T) {
	assert.Equal(t, StageIdle, Idle().Stage())

	state := mustStart(t, model.TimerConfig{Rounds: 1, WorkSeconds: 5, RestSeconds: 5})
	stages := []Stage{state.Stage()}
	for state.Phase != PhaseDone {
		state, _ = Tick(state)
		if stage := state.Stage(); stage != stages[len(stages)-1] {
			stages = append(stages, stage)
		}
	}
	assert.Equal(t, []Stage{StagePrepare, StageWork, StageRest, StageDone}, stages)
	assert.Equal(t, "prepare", StagePrepare.String())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "work", PhaseWork.String())
	assert.Equal(t, "rest", PhaseRest.String())
	assert.Equal(t, "done", PhaseDone.String())
	assert.Equal(t, "session_finished", EventSessionFinished.String())
}
