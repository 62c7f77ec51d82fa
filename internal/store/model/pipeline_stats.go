package model

import "github.com/powhr/talentflow/internal/pipeline"

// PipelineStats aggregates applications per stage. Exposed through the
// metrics endpoint.
type PipelineStats struct {
	Total         int
	CountPerStage map[pipeline.Stage]int
}

func NewPipelineStats(applications []Application) PipelineStats {
	stats := PipelineStats{
		CountPerStage: make(map[pipeline.Stage]int, len(pipeline.StageOrder)),
	}
	// every stage is present, a stage nobody sits in reports zero
	for _, stage := range pipeline.StageOrder {
		stats.CountPerStage[stage] = 0
	}
	for _, app := range applications {
		stats.Total++
		stats.CountPerStage[app.CurrentStage]++
	}
	return stats
}
