package application

import (
	"github.com/montanaflynn/stats"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// StarSummary aggregates star counts over the accumulated list.
type StarSummary struct {
	Count  int
	Total  int
	Mean   float64
	Median float64
}

// Summarize computes a StarSummary for repos. An empty list yields the zero value.
func Summarize(repos []model.Repository) StarSummary {
	if len(repos) == 0 {
		return StarSummary{}
	}

	data := make(stats.Float64Data, 0, len(repos))
	total := 0
	for _, r := range repos {
		data = append(data, float64(r.StargazersCount))
		total += r.StargazersCount
	}

	// Errors only occur for empty input, which is handled above.
	mean, _ := data.Mean()
	median, _ := data.Median()

	return StarSummary{
		Count:  len(repos),
		Total:  total,
		Mean:   mean,
		Median: median,
	}
}
