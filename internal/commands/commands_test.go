package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/config"
	"github.com/colonyops/hard75/internal/core/eventbus/testbus"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type harness struct {
	t      *testing.T
	flags  *Flags
	app    *hard75.App
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	storage, err := hard75.OpenStorage(context.Background(), &cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	tb := testbus.New(t)
	app := hard75.NewApp(&cfg, storage, tb.EventBus)
	require.NoError(t, app.Challenge.Load(context.Background()))

	return &harness{
		t:     t,
		flags: &Flags{Config: &cfg, DataDir: cfg.DataDir},
		app:   app,
	}
}

type registrar interface {
	Register(*cli.Command) *cli.Command
}

func (h *harness) run(cmd registrar, args ...string) error {
	h.t.Helper()
	h.out.Reset()
	h.errOut.Reset()

	root := &cli.Command{Name: "hard75", Writer: &h.out, ErrWriter: &h.errOut}
	cmd.Register(root)

	ctx := printer.NewContext(context.Background(), printer.New(&h.errOut))
	return root.Run(ctx, append([]string{"hard75"}, args...))
}

func declinePrompt(hard75.Prompt) (bool, error) { return false, nil }

func TestStatus_JSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(NewStatusCmd(h.flags, h.app), "status", "--json"))

	var out statusJSON
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &out))
	assert.Equal(t, 1, out.Day)
	assert.NotNil(t, out.StartDate)
	assert.Len(t, out.Tasks, challenge.TaskCount)
	assert.Equal(t, challenge.PhaseActive, out.Phase)
	assert.Equal(t, challenge.TotalDays, out.Statistics.RemainingDays)
}

func TestStatus_Text(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(NewStatusCmd(h.flags, h.app), "status"))

	assert.Contains(t, h.out.String(), "Day 1 of 75")
	assert.Contains(t, h.out.String(), challenge.TaskWater.Label())
}

func TestToggle(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(NewToggleCmd(h.flags, h.app), "toggle", "diet", "water"))

	state := h.app.Challenge.State()
	assert.True(t, state.Tasks.Done(challenge.TaskDiet))
	assert.True(t, state.Tasks.Done(challenge.TaskWater))
	assert.Contains(t, h.errOut.String(), "2/9 tasks complete")
}

func TestToggle_UnknownTask(t *testing.T) {
	h := newHarness(t)

	err := h.run(NewToggleCmd(h.flags, h.app), "toggle", "diet", "naps")

	var invalid *challenge.InvalidTaskError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "naps", invalid.Name)
	assert.False(t, h.app.Challenge.State().Tasks.Done(challenge.TaskDiet), "nothing is toggled when any name is invalid")
}

func TestEndDay_Advances(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(NewToggleCmd(h.flags, h.app), append([]string{"toggle"}, challenge.TaskNames()...)...))

	require.NoError(t, h.run(NewEndDayCmd(h.flags, h.app), "end-day"))

	assert.Equal(t, 2, h.app.Challenge.State().CurrentDay)
	assert.Contains(t, h.errOut.String(), "Day 1 complete!")
}

func TestEndDay_IncompleteDeclined(t *testing.T) {
	h := newHarness(t)
	cmd := NewEndDayCmd(h.flags, h.app)
	cmd.confirm.prompt = declinePrompt

	require.NoError(t, h.run(cmd, "end-day"))

	assert.Equal(t, challenge.PhaseActive, h.app.Challenge.Phase())
	assert.Empty(t, h.app.Challenge.State().Attempts)
	assert.Contains(t, h.errOut.String(), "still open")
}

func TestEndDay_IncompleteYes(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(NewEndDayCmd(h.flags, h.app), "end-day", "--yes"))

	state := h.app.Challenge.State()
	require.Len(t, state.Attempts, 1)
	assert.Equal(t, challenge.ReasonIncomplete, state.Attempts[0].Reason)
	assert.Contains(t, h.errOut.String(), "Starting fresh from Day 1")
}

func TestEndDay_NoTerminal(t *testing.T) {
	h := newHarness(t)
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	err := h.run(NewEndDayCmd(h.flags, h.app), "end-day")

	require.ErrorIs(t, err, errNeedsConfirmation)
	assert.Equal(t, challenge.PhaseActive, h.app.Challenge.Phase())
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(NewToggleCmd(h.flags, h.app), append([]string{"toggle"}, challenge.TaskNames()...)...))
	require.NoError(t, h.run(NewEndDayCmd(h.flags, h.app), "end-day"))

	cmd := NewResetCmd(h.flags, h.app)
	cmd.confirm.prompt = declinePrompt
	require.NoError(t, h.run(cmd, "reset"))
	assert.Equal(t, 2, h.app.Challenge.State().CurrentDay)

	require.NoError(t, h.run(NewResetCmd(h.flags, h.app), "reset", "--yes"))
	state := h.app.Challenge.State()
	assert.Equal(t, 1, state.CurrentDay)
	require.Len(t, state.Attempts, 1)
	assert.Equal(t, challenge.ReasonReset, state.Attempts[0].Reason)
}

func TestClear_AssumeYesFromConfig(t *testing.T) {
	h := newHarness(t)
	h.flags.Config.Confirm.AssumeYes = true
	require.NoError(t, h.run(NewToggleCmd(h.flags, h.app), "toggle", "reading"))

	require.NoError(t, h.run(NewClearCmd(h.flags, h.app), "clear"))

	assert.Zero(t, h.app.Challenge.State().Tasks.Completed())
	assert.Contains(t, h.errOut.String(), "All data cleared")
}

func TestPhoto_SaveListExport(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "day1.png")
	require.NoError(t, os.WriteFile(src, pngHeader, 0o644))

	require.NoError(t, h.run(NewPhotoCmd(h.flags, h.app), "photo", src))
	assert.True(t, h.app.Challenge.State().Tasks.Done(challenge.TaskPhoto))

	require.NoError(t, h.run(NewPhotoCmd(h.flags, h.app), "photos", "--json"))
	var listed []photoJSON
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, photoJSON{Day: 1, MIMEType: "image/png", Bytes: len(pngHeader)}, listed[0])

	dst := filepath.Join(dir, "out.png")
	require.NoError(t, h.run(NewPhotoCmd(h.flags, h.app), "photos", "export", "-o", dst, "1"))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestPhoto_Rejects(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("just words"), 0o644))
	err := h.run(NewPhotoCmd(h.flags, h.app), "photo", text)
	assert.ErrorContains(t, err, "not an image")

	h.app.Config.Photos.MaxBytes = 4
	img := filepath.Join(dir, "big.png")
	require.NoError(t, os.WriteFile(img, pngHeader, 0o644))
	err = h.run(NewPhotoCmd(h.flags, h.app), "photo", img)
	assert.ErrorContains(t, err, "limit")

	assert.Empty(t, h.app.Challenge.State().Photos)
}

func TestCalendar(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(NewCalendarCmd(h.flags, h.app), "calendar"))

	assert.Contains(t, h.out.String(), "75")
	assert.Contains(t, h.out.String(), "upcoming")
}

func TestHistory_JSON(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(NewEndDayCmd(h.flags, h.app), "end-day", "--yes"))

	require.NoError(t, h.run(NewHistoryCmd(h.flags, h.app), "history", "--json"))

	var history []challenge.AttemptSummary
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].Number)
}

func TestSnapshot_ExportImport(t *testing.T) {
	source := newHarness(t)
	require.NoError(t, source.run(NewToggleCmd(source.flags, source.app), "toggle", "squats"))

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, source.run(NewSnapshotCmd(source.flags, source.app), "snapshot", "export", "-o", path))

	target := newHarness(t)
	require.NoError(t, target.run(NewSnapshotCmd(target.flags, target.app), "snapshot", "import", "-f", path))

	assert.True(t, target.app.Challenge.State().Tasks.Done(challenge.TaskSquats))
	assert.Contains(t, target.errOut.String(), "Imported v1 snapshot")
}

func TestRules(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(NewRulesCmd(h.flags), "rules"))

	assert.Contains(t, h.out.String(), "Daily tasks")
}

func TestSaveResult(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)

	assert.NoError(t, saveResult(p, nil))
	assert.NoError(t, saveResult(p, hard75.ErrNotSaved))
	assert.Contains(t, buf.String(), "progress not saved")

	other := errors.New("boom")
	assert.ErrorIs(t, saveResult(p, other), other)
}

func TestConfirmer(t *testing.T) {
	flags := &Flags{Config: &config.Config{}}
	c := newConfirmer(flags)
	c.prompt = declinePrompt

	ok, err := c.Confirm(hard75.PromptClearData, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Confirm(hard75.PromptClearData, false)
	require.NoError(t, err)
	assert.False(t, ok)

	flags.Config.Confirm.AssumeYes = true
	ok, err = c.Confirm(hard75.PromptClearData, false)
	require.NoError(t, err)
	assert.True(t, ok)
}
