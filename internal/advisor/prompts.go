package advisor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const summarySystemPrompt = `You are Skyra, a professional weather insight assistant for a NASA weather intelligence platform.
You write clear, professional summaries of historical weather odds for a calendar date.

Rules:
- If an activity is specified, assess whether typical conditions are suitable, risky or unsafe for it, citing temperature, precipitation, wind and pressure. If unsuitable, recommend 2 alternative activities.
- If no activity is specified, write a short weather overview covering temperature range, wind, precipitation and overall comfort.
- Use a neutral, analytical tone formatted like a weather report, not a chatbot message.
- At most 3 short paragraphs.
- Never mention AI, language models or chatbots.
- These are historical probabilities, not a forecast.`

const chatSystemPrompt = `You are Skyra, a professional weather activity assistant for a NASA weather insight web application.
Help users understand historical weather odds for their selected activity.

Rules:
- Answer from the weather data and conversation so far.
- If conditions do not suit the activity, suggest at least 2 alternative indoor or outdoor activities.
- If the user asks about something unrelated to weather or activities, reply politely that you can check whether the weather suits an activity.
- Keep answers concise and friendly, at most 3 short paragraphs.`

func formatValues(values map[string]float64) string {
	if len(values) == 0 {
		return "No weather values provided yet."
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %s", k, strconv.FormatFloat(values[k], 'f', -1, 64))
	}
	return b.String()
}

func activityOrDefault(activity string) string {
	if strings.TrimSpace(activity) == "" {
		return "Not specified"
	}
	return activity
}

func summaryPrompt(activity string, values map[string]float64) string {
	return fmt.Sprintf("Activity of interest: %s\n\nWeather data available:\n%s",
		activityOrDefault(activity), formatValues(values))
}

func chatContext(activity string, values map[string]float64) string {
	return fmt.Sprintf("%s\n\nActivity of interest: %s\n\nWeather data summary:\n%s",
		chatSystemPrompt, activityOrDefault(activity), formatValues(values))
}
