package counselor

import (
	"testing"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLocale(t *testing.T) {
	assert.Equal(t, "en-IN", NormalizeLocale(""))
	assert.Equal(t, "hi-IN", NormalizeLocale("doi-IN"))
	assert.Equal(t, "ur-PK", NormalizeLocale("ks-IN"))
	assert.Equal(t, "ur-PK", NormalizeLocale("ur-IN"))
	assert.Equal(t, "pa-IN", NormalizeLocale("pa-IN"))
	assert.Equal(t, "en-IN", NormalizeLocale("en-IN"))
}

func TestVoiceForLocale(t *testing.T) {
	assert.Equal(t, "en-IN-NeerjaNeural", VoiceForLocale("en-IN"))
	assert.Equal(t, "hi-IN-SwaraNeural", VoiceForLocale("hi-IN"))
	assert.Equal(t, "ur-PK-UzmaNeural", VoiceForLocale("ur-PK"))
	assert.Equal(t, "pa-IN-GaganNeural", VoiceForLocale("pa-IN"))
	assert.Equal(t, "en-IN-NeerjaNeural", VoiceForLocale("fr-FR"))
}

func TestLanguageNameFor(t *testing.T) {
	assert.Equal(t, "Hindi", LanguageNameFor("hi-IN"))
	assert.Equal(t, "Urdu", LanguageNameFor("ur-PK"))
	assert.Equal(t, "Punjabi", LanguageNameFor("pa-IN"))
	assert.Equal(t, "English (India)", LanguageNameFor("en-IN"))
}

func TestStyleForEmotion(t *testing.T) {
	assert.Equal(t, "empathetic", StyleForEmotion("anxious"))
	assert.Equal(t, "empathetic", StyleForEmotion("crisis"))
	assert.Equal(t, "sad", StyleForEmotion("depressed"))
	assert.Equal(t, "calm", StyleForEmotion("hopeful"))
	assert.Equal(t, "cheerful", StyleForEmotion("improving"))
	assert.Equal(t, "empathetic", StyleForEmotion(""))
}

func TestStyleDegree(t *testing.T) {
	assert.Equal(t, 1.35, StyleDegree("empathetic"))
	assert.Equal(t, 1.15, StyleDegree("sad"))
	assert.Equal(t, 1.25, StyleDegree("calm"))
	assert.Equal(t, 1.45, StyleDegree("cheerful"))
	assert.Equal(t, 1.2, StyleDegree("whisper"))
}

func TestBuildActionPlanLowRisk(t *testing.T) {
	plan := BuildActionPlan(safety.LevelLow, "en-IN")
	assert.False(t, plan.SOS)
	assert.False(t, plan.BookingSuggested)
	assert.NotEmpty(t, plan.Resources)
}

func TestBuildActionPlanMediumRisk(t *testing.T) {
	plan := BuildActionPlan(safety.LevelMedium, "en-IN")
	assert.False(t, plan.SOS)
	assert.True(t, plan.BookingSuggested)
}

func TestBuildActionPlanHighRisk(t *testing.T) {
	plan := BuildActionPlan(safety.LevelHigh, "hi-IN")
	assert.True(t, plan.SOS)
	assert.True(t, plan.BookingSuggested)
	require.NotEmpty(t, plan.Resources)
	// Crisis resources include the national helpline number
	found := false
	for _, r := range plan.Resources {
		if r.Contact == "14416" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResourcesForLocaleFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, ResourcesForLocale("en-IN"), ResourcesForLocale("fr-FR"))
	assert.NotEmpty(t, ResourcesForLocale("hi-IN"))
}
