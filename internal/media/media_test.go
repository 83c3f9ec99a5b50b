package media

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundbell/internal/core/countdown"
	"roundbell/internal/core/session"
)

type fakePlayback struct {
	path    string
	stopped bool
	done    chan struct{}
}

func (playback *fakePlayback) Stop() error {
	if !playback.stopped {
		playback.stopped = true
		close(playback.done)
	}
	return nil
}

func (playback *fakePlayback) Done() <-chan struct{} {
	return playback.done
}

type fakePlayer struct {
	mu    sync.Mutex
	loops []*fakePlayback
	once  []*fakePlayback
	err   error
}

func (player *fakePlayer) Loop(path string) (Playback, error) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.err != nil {
		return nil, player.err
	}
	playback := &fakePlayback{path: path, done: make(chan struct{})}
	player.loops = append(player.loops, playback)
	return playback, nil
}

func (player *fakePlayer) Once(path string) (Playback, error) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.err != nil {
		return nil, player.err
	}
	playback := &fakePlayback{path: path, done: make(chan struct{})}
	player.once = append(player.once, playback)
	return playback, nil
}

func (player *fakePlayer) active() []*fakePlayback {
	player.mu.Lock()
	defer player.mu.Unlock()
	var active []*fakePlayback
	for _, playback := range player.loops {
		if !playback.stopped {
			active = append(active, playback)
		}
	}
	return active
}

type recordingHaptics struct {
	impacts []Haptic
}

func (haptics *recordingHaptics) Impact(haptic Haptic) error {
	haptics.impacts = append(haptics.impacts, haptic)
	return nil
}

func assetDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	return dir
}

func allAssets() []string {
	return []string{
		"start.mp4", "work.mp4", "rest.mp4", "finish.mp4",
		"beep_short.wav", "beep_long.wav", "boxing_bell.wav", "tap_click.wav",
	}
}

func TestClipFor(t *testing.T) {
	assert.Equal(t, ClipPreparation, ClipFor(countdown.PhaseWork, true))
	assert.Equal(t, ClipWork, ClipFor(countdown.PhaseWork, false))
	assert.Equal(t, ClipRest, ClipFor(countdown.PhaseRest, false))
	assert.Equal(t, ClipFinish, ClipFor(countdown.PhaseDone, false))
}

func TestLibrary_Missing(t *testing.T) {
	library := NewLibrary(assetDir(t, "work.mp4", "beep_short.wav"))

	path, err := library.ClipPath(ClipWork)
	require.NoError(t, err)
	assert.Equal(t, "work.mp4", filepath.Base(path))

	_, err = library.ClipPath(ClipRest)
	assert.ErrorIs(t, err, ErrAssetMissing)

	assert.ElementsMatch(t, []string{
		"start.mp4", "rest.mp4", "finish.mp4",
		"beep_long.wav", "boxing_bell.wav", "tap_click.wav",
	}, library.Missing())

	_, err = NewLibrary("").SoundPath(SoundBell)
	assert.ErrorIs(t, err, ErrAssetMissing)

	library.SetDir(assetDir(t, allAssets()...))
	assert.Empty(t, library.Missing())
}

func TestCoordinator_OneClipAtATime(t *testing.T) {
	player := &fakePlayer{}
	coordinator := NewCoordinator(NewLibrary(assetDir(t, allAssets()...)), player)

	require.NoError(t, coordinator.PlayPreparation())
	require.NoError(t, coordinator.PlayPhase(countdown.PhaseWork))
	require.NoError(t, coordinator.PlayPhase(countdown.PhaseRest))

	active := player.active()
	require.Len(t, active, 1)
	assert.Equal(t, "rest.mp4", filepath.Base(active[0].path))
	assert.Len(t, player.loops, 3)
	assert.Equal(t, ClipRest, coordinator.Current())

	require.NoError(t, coordinator.PlayFinished())
	assert.Equal(t, "finish.mp4", filepath.Base(player.active()[0].path))
}

func TestCoordinator_PauseResumeStop(t *testing.T) {
	player := &fakePlayer{}
	coordinator := NewCoordinator(NewLibrary(assetDir(t, allAssets()...)), player)

	require.NoError(t, coordinator.PlayPreparation())
	require.NoError(t, coordinator.PauseAll())
	assert.Empty(t, player.active())
	assert.Equal(t, ClipPreparation, coordinator.Current())

	require.NoError(t, coordinator.Resume(countdown.PhaseWork, true))
	active := player.active()
	require.Len(t, active, 1)
	assert.Equal(t, "start.mp4", filepath.Base(active[0].path))

	require.NoError(t, coordinator.StopAll())
	assert.Empty(t, player.active())
	assert.Equal(t, Clip(""), coordinator.Current())
}

func TestCoordinator_MissingClipDegrades(t *testing.T) {
	player := &fakePlayer{}
	coordinator := NewCoordinator(NewLibrary(assetDir(t, "work.mp4")), player)

	require.NoError(t, coordinator.PlayPhase(countdown.PhaseWork))

	err := coordinator.PlayPhase(countdown.PhaseRest)
	assert.ErrorIs(t, err, ErrAssetMissing)
	assert.Empty(t, player.active(), "previous clip is stopped even when the next is missing")

	player.err = ErrPlayerUnavailable
	err = coordinator.PlayPhase(countdown.PhaseWork)
	assert.ErrorIs(t, err, ErrPlayerUnavailable)
}

func TestCues_Mapping(t *testing.T) {
	player := &fakePlayer{}
	haptics := &recordingHaptics{}
	cues := NewCues(NewLibrary(assetDir(t, allAssets()...)), player, haptics)

	for _, cue := range []session.Cue{
		session.CueTap, session.CueConfirm, session.CueLongTone, session.CueShortTone,
		session.CueBell, session.CueWarning, session.CueSuccess,
	} {
		require.NoError(t, cues.Play(cue), cue.String())
	}

	var sounds []string
	for _, playback := range player.once {
		sounds = append(sounds, filepath.Base(playback.path))
	}
	assert.Equal(t, []string{"tap_click.wav", "beep_long.wav", "beep_short.wav", "boxing_bell.wav"}, sounds)
	assert.Equal(t, []Haptic{HapticLight, HapticSuccess, HapticWarning, HapticSuccess}, haptics.impacts)

	require.NoError(t, cues.Close())
	for _, playback := range player.once {
		assert.True(t, playback.stopped)
	}
}

func TestCues_ReplayRestartsSound(t *testing.T) {
	player := &fakePlayer{}
	cues := NewCues(NewLibrary(assetDir(t, allAssets()...)), player, nil)

	require.NoError(t, cues.Play(session.CueShortTone))
	require.NoError(t, cues.Play(session.CueShortTone))
	require.Len(t, player.once, 2)
	assert.True(t, player.once[0].stopped)
	assert.False(t, player.once[1].stopped)
}

func TestCues_MissingSoundStillFiresHaptic(t *testing.T) {
	haptics := &recordingHaptics{}
	cues := NewCues(NewLibrary(t.TempDir()), &fakePlayer{}, haptics)

	err := cues.Play(session.CueTap)
	assert.ErrorIs(t, err, ErrAssetMissing)
	assert.Equal(t, []Haptic{HapticLight}, haptics.impacts)

	assert.Error(t, cues.Play(session.Cue(99)))
}

func TestLogHaptics(t *testing.T) {
	assert.NoError(t, LogHaptics{Logger: zerolog.Nop()}.Impact(HapticWarning))
}

func TestExecPlayer_Unavailable(t *testing.T) {
	player := NewExecPlayer(PlayerConfig{Command: "roundbell-no-such-player"})
	assert.False(t, player.Available())

	_, err := player.Loop("work.mp4")
	assert.True(t, errors.Is(err, ErrPlayerUnavailable))

	player.Reconfigure(PlayerConfig{Command: "roundbell-still-missing"})
	_, err = player.Once("beep_short.wav")
	assert.ErrorIs(t, err, ErrPlayerUnavailable)
	assert.Contains(t, err.Error(), "roundbell-still-missing")
}
