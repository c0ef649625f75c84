package engine

import "fmt"

// nudgeText renders the display copy for a nudge type. Magnitudes are
// the raw deficits, not the bucketed dedup keys.
func nudgeText(nudgeType string, magnitude int) string {
	switch nudgeType {
	case NudgeFuelPace:
		return fmt.Sprintf("🍽️ You're ~%d kcal behind your usual pace. A protein-rich mini-meal would catch you up.", magnitude)
	case NudgeMove:
		return fmt.Sprintf("🚶 %d steps to stay on pace. A 10-15 min brisk walk should do it.", magnitude)
	case NudgeHydrate:
		return fmt.Sprintf("💧 %d ml behind on water. Sip a glass now.", magnitude)
	case NudgeWindDown:
		return fmt.Sprintf("🌙 Sleep ran %d min short last night. Try a 30-min earlier wind-down tonight.", magnitude)
	case NudgeMealLog:
		return "📋 It's been a while since your last logged meal. Eating something? Jot it down."
	case NudgeMoodCheckin:
		return "🙂 How's your mood right now (1-5)? A tiny check-in helps spot patterns."
	case NudgeMoodReset:
		return "🌤️ Rough stretch? 3 minutes of box breathing or a 5-minute walk can help."
	case NudgeHeartRate:
		return fmt.Sprintf("❤️ Resting HR ~%d bpm looks unusual for you. If you feel unwell, check in with someone.", magnitude)
	case NudgeTempCheck:
		return fmt.Sprintf("🌡️ %.1f°F is outside your typical range. Rest and hydrate.", float64(magnitude)/10)
	case NudgeLateMeal:
		return "🌙 Late-night meal logged. Wind down soon so it doesn't cost you sleep."
	default:
		return "✨ Quick reset: inhale 4, hold 4, exhale 4, hold 4. Two minutes."
	}
}
