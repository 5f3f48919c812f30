package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EmptyContext(t *testing.T) {
	got := Generate(&Context{})

	assert.NotNil(t, got.ProductivityDrivers)
	assert.NotNil(t, got.ProductivityDrains)
	assert.NotNil(t, got.ScheduleRecommendations)
	assert.Equal(t, msgFragmented, got.TopInsight)
	assert.Equal(t, msgNotifyBlock, got.OneChange)

	// A nil context behaves like an empty one.
	assert.Equal(t, got, Generate(nil))
}

func TestDriversAndDrains(t *testing.T) {
	ctx := &Context{Categories: []Amount{
		{Name: "development", Seconds: 7200},
		{Name: "entertainment", Seconds: 3600},
		{Name: "writing", Seconds: 3600},
		{Name: "news", Seconds: 1800},
		{Name: "social_media", Seconds: 1801},
		{Name: "email", Seconds: 9000},
	}}
	var out Insights
	Drivers(ctx, &out)
	Drains(ctx, &out)

	require.Len(t, out.ProductivityDrivers, 1)
	assert.Equal(t, Impact{Category: "development", Hours: 2, Impact: ImpactPositive}, out.ProductivityDrivers[0])

	require.Len(t, out.ProductivityDrains, 2)
	assert.Equal(t, "entertainment", out.ProductivityDrains[0].Category)
	assert.Equal(t, "social_media", out.ProductivityDrains[1].Category)
	assert.Equal(t, 0.5, out.ProductivityDrains[1].Hours)
	assert.Equal(t, ImpactNegative, out.ProductivityDrains[1].Impact)
}

func TestSchedule(t *testing.T) {
	tests := []struct {
		name   string
		peak   []int
		danger []int
		want   []string
	}{
		{"none", nil, nil, nil},
		{
			"peak wraps midnight", []int{23}, []int{14},
			[]string{"Schedule deep work around 23:00-1:00 (your peak productive time)"},
		},
		{
			"late night danger", []int{9}, []int{2, 23},
			[]string{
				"Schedule deep work around 9:00-11:00 (your peak productive time)",
				"Late night work (2:00) shows high context switching - consider ending earlier",
			},
		},
		{"six is not late", nil, []int{6}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out Insights
			Schedule(&Context{PeakHours: tt.peak, DangerHours: tt.danger}, &out)
			assert.Equal(t, tt.want, out.ScheduleRecommendations)
		})
	}
}

func TestTopInsight_Priority(t *testing.T) {
	tests := []struct {
		prod, focus int
		want        string
	}{
		{10, 40, msgFragmented},
		{10, 85, msgDistracted},
		{70, 70, msgConsistent},
		{69, 85, msgMixed},
		{90, 55, msgMixed},
	}
	for _, tt := range tests {
		var out Insights
		TopInsight(&Context{ProductivityScore: tt.prod, FocusScore: tt.focus}, &out)
		assert.Equal(t, tt.want, out.TopInsight, "prod=%d focus=%d", tt.prod, tt.focus)
	}
}

func TestOneChange(t *testing.T) {
	mixed := Loop{Verdict: "mixed", Suggestion: "Consider batching these activities"}
	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{"no loops", Context{}, msgNotifyBlock},
		{
			"first distracting loop",
			Context{Loops: []Loop{mixed, {Verdict: "distracting", Suggestion: "Block Telegram during focus hours"}}},
			"Block Telegram during focus hours",
		},
		{
			"entertainment title",
			Context{
				Loops:         []Loop{mixed},
				BrowserTitles: []Amount{{Name: "A very long video title that keeps going - YouTube", Seconds: 5400, Category: "entertainment"}},
			},
			"Block 'A very long video title that k' during work hours (spent 1.5h)",
		},
		{
			"site fallback",
			Context{
				Loops: []Loop{mixed},
				Sites: []Amount{{Name: "Reddit", Seconds: 7200, Category: "social_media"}},
			},
			"Block 'Reddit' during work hours (spent 2.0h)",
		},
		{
			"short entertainment ignored",
			Context{
				Loops: []Loop{mixed},
				Sites: []Amount{{Name: "Reddit", Seconds: 3600, Category: "social_media"}},
			},
			msgBatching,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out Insights
			OneChange(&tt.ctx, &out)
			assert.Equal(t, tt.want, out.OneChange)
		})
	}
}

func TestLateNight(t *testing.T) {
	for h := 0; h < 24; h++ {
		want := h >= 23 || h < 6
		if LateNight(h) != want {
			t.Errorf("LateNight(%d) = %v, want %v", h, !want, want)
		}
	}
}
