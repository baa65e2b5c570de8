package uci

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSetSettings(t *testing.T) {
	defaultSettle := 500 * time.Millisecond

	tests := []struct {
		name     string
		settings []any
		want     SetValueSettings
		wantErr  bool
	}{
		{
			name: "no settings uses default settle",
			want: SetValueSettings{SettleTime: defaultSettle},
		},
		{
			name:     "bare int is settle milliseconds",
			settings: []any{750},
			want:     SetValueSettings{SettleTime: 750 * time.Millisecond},
		},
		{
			name:     "bare float is settle milliseconds",
			settings: []any{250.0},
			want:     SetValueSettings{SettleTime: 250 * time.Millisecond},
		},
		{
			name:     "duration taken as-is",
			settings: []any{2 * time.Second},
			want:     SetValueSettings{SettleTime: 2 * time.Second},
		},
		{
			name:     "struct with force only keeps default settle",
			settings: []any{SetValueSettings{ForceValue: true}},
			want:     SetValueSettings{SettleTime: defaultSettle, ForceValue: true},
		},
		{
			name:     "struct with both fields",
			settings: []any{SetValueSettings{SettleTime: time.Second, ForceValue: true}},
			want:     SetValueSettings{SettleTime: time.Second, ForceValue: true},
		},
		{
			name:     "pointer form",
			settings: []any{&SetValueSettings{SettleTime: 100 * time.Millisecond}},
			want:     SetValueSettings{SettleTime: 100 * time.Millisecond},
		},
		{
			name:     "nil settings value",
			settings: []any{nil},
			want:     SetValueSettings{SettleTime: defaultSettle},
		},
		{
			name:     "too many values",
			settings: []any{500, 600},
			wantErr:  true,
		},
		{
			name:     "unsupported type",
			settings: []any{"500ms"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSetSettings(defaultSettle, tt.settings...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemporalEncodingRoundTrip(t *testing.T) {
	// The page hands dates back via toISOString; the encode side must
	// produce a value the decode side reads back to the same instant,
	// to millisecond precision.
	original := time.Date(2026, time.March, 14, 9, 26, 53, 589_000_000, time.UTC)

	encoded := original.UTC().Format(isoMillis)
	assert.Equal(t, "2026-03-14T09:26:53.589Z", encoded)

	decoded, err := time.Parse(time.RFC3339, encoded)
	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))
}

func TestTemporalEncodingNonUTC(t *testing.T) {
	loc := time.FixedZone("AEST", 10*60*60)
	original := time.Date(2026, time.July, 1, 18, 30, 0, 250_000_000, loc)

	decoded, err := time.Parse(time.RFC3339, original.UTC().Format(isoMillis))
	require.NoError(t, err)
	assert.True(t, original.Equal(decoded), "instant must survive the zone conversion")
}

func TestEditabilityCheckUsesSharedPredicate(t *testing.T) {
	// The write path and the control-state query must run the same
	// in-page predicate, not divergent copies.
	assert.True(t, strings.Contains(isEditableJS, "xrmkitInteractable"))
	assert.True(t, strings.Contains(isEditableJS, strings.TrimSpace(interactablePredicateJS)))
}
