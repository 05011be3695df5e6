package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TR-Jackson/collisions-game/internal/loop"
	"github.com/TR-Jackson/collisions-game/internal/session"
)

func TestParseRunRequest(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    runRequest
		wantErr bool
	}{
		{"no_command", nil, runRequest{Ticks: 20_000, Pilot: "random"}, false},
		{"bare_run", []string{"run"}, runRequest{Ticks: 20_000, Pilot: "random"}, false},
		{"all_keys", []string{"run", "seed=7", "ticks=4000", "pilot=evade"}, runRequest{Seed: 7, Ticks: 4000, Pilot: "evade"}, false},
		{"negative_seed", []string{"run", "seed=-3"}, runRequest{Seed: -3, Ticks: 20_000, Pilot: "random"}, false},
		{"unknown_command", []string{"play"}, runRequest{}, true},
		{"missing_equals", []string{"run", "seed"}, runRequest{}, true},
		{"bad_seed", []string{"run", "seed=x"}, runRequest{}, true},
		{"zero_ticks", []string{"run", "ticks=0"}, runRequest{}, true},
		{"too_many_ticks", []string{"run", "ticks=999999999"}, runRequest{}, true},
		{"unknown_key", []string{"run", "level=2"}, runRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRunRequest(tt.args)
			if tt.wantErr {
				assert.ErrorIs(t, err, errBadRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteReport(t *testing.T) {
	var b strings.Builder
	writeReport(&b, runRequest{Pilot: "idle"}, loop.Summary{
		RunID:   "abc",
		Ticks:   12,
		Level:   1,
		Score:   60,
		Outcome: loop.OutcomeGameOver,
		Totals:  session.Totals{Ticks: 12, Walls: 2, Pairs: 1},
	})

	out := b.String()
	assert.Contains(t, out, "run:      abc\n")
	assert.Contains(t, out, "outcome:  game_over\n")
	assert.Contains(t, out, "score:    60\n")
	assert.Contains(t, out, "contacts: 2 walls, 0 corners, 1 pairs\n")
}
