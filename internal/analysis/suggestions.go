package analysis

import (
	"github.com/vishalcodex-ai/Smart-System-Health-Monitor/internal/models"
)

// SuggestionEngine rule-based optimization suggestion generator
type SuggestionEngine struct {
	rules map[string]map[models.Status][]string
}

// NewSuggestionEngine creates a suggestion engine with the built-in rules
func NewSuggestionEngine() *SuggestionEngine {
	return &SuggestionEngine{rules: suggestionRules()}
}

// Generate returns deduplicated suggestions for the given analysis results,
// preserving first-seen order
func (e *SuggestionEngine) Generate(results []models.MetricStatus) []string {
	var suggestions []string
	seen := make(map[string]bool)

	for _, r := range results {
		metricRules, ok := e.rules[r.Metric]
		if !ok {
			continue
		}
		for _, s := range metricRules[r.Status] {
			if !seen[s] {
				seen[s] = true
				suggestions = append(suggestions, s)
			}
		}
	}

	return suggestions
}

func suggestionRules() map[string]map[models.Status][]string {
	return map[string]map[models.Status][]string{
		"cpu": {
			models.StatusWarning: {
				"Close unnecessary background applications.",
				"Check for high CPU-consuming processes.",
			},
			models.StatusHigh: {
				"Restart heavy applications.",
				"Scan system for malware or runaway processes.",
				"Consider upgrading CPU or optimizing workloads.",
			},
			models.StatusCritical: {
				"Immediate action required: stop non-essential services.",
				"System may overheat or become unstable.",
				"Restart system if safe to do so.",
			},
		},
		"ram": {
			models.StatusWarning: {
				"Close unused browser tabs and applications.",
				"Monitor memory usage of running programs.",
			},
			models.StatusHigh: {
				"Clear memory-intensive background services.",
				"Increase swap memory if supported.",
			},
			models.StatusCritical: {
				"System memory exhausted - risk of crash.",
				"Restart system and consider adding more RAM.",
			},
		},
		"disk": {
			models.StatusWarning: {
				"Clean temporary files and unused data.",
				"Check disk usage by large folders.",
			},
			models.StatusHigh: {
				"Move data to external storage.",
				"Uninstall unused applications.",
			},
			models.StatusCritical: {
				"Disk almost full - system performance severely impacted.",
				"Free disk space immediately or upgrade storage.",
			},
		},
		"network": {
			models.StatusWarning: {
				"Check background downloads or uploads.",
				"Monitor network usage per application.",
			},
			models.StatusHigh: {
				"Limit bandwidth-heavy applications.",
				"Check for unauthorized network activity.",
			},
			models.StatusCritical: {
				"Possible network congestion or misuse detected.",
				"Disconnect unnecessary devices and investigate traffic.",
			},
		},
		"temperature": {
			models.StatusWarning: {
				"Ensure proper ventilation around the system.",
				"Clean dust from fans and vents.",
			},
			models.StatusHigh: {
				"Reduce system load immediately.",
				"Check cooling system or fan operation.",
			},
			models.StatusCritical: {
				"Critical overheating detected.",
				"Shut down system to prevent hardware damage.",
			},
		},
	}
}
