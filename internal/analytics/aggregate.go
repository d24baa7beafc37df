// Package analytics computes derived metrics over stored playback samples.
// Everything here is a pure function; nothing is cached or persisted.
package analytics

import "github.com/reelay-dev/reelay/internal/models"

type Summary struct {
	SampleCount            int            `json:"sample_count"`
	AverageWatchTime       float64        `json:"average_watch_time"`
	AverageWatchPercentage float64        `json:"average_watch_percentage"`
	ViewsByCountry         map[string]int `json:"views_by_country"`
}

// Summarize reduces samples to arithmetic means and per-country sample counts.
// Zero samples yield explicit zeros, never NaN.
func Summarize(samples []models.VideoAnalytics) Summary {
	summary := Summary{
		ViewsByCountry: make(map[string]int),
	}

	if len(samples) == 0 {
		return summary
	}

	var totalTime, totalPercentage float64

	for _, sample := range samples {
		totalTime += sample.WatchTime
		totalPercentage += sample.WatchPercentage
		summary.ViewsByCountry[sample.ViewerCountry]++
	}

	summary.SampleCount = len(samples)
	summary.AverageWatchTime = totalTime / float64(len(samples))
	summary.AverageWatchPercentage = totalPercentage / float64(len(samples))

	return summary
}
