package model

// PipelineStats summarizes the hiring pipeline for the status gauge metric
// and reporting collaborators.
type PipelineStats struct {
	TotalCandidates     int            `json:"total_candidates"`
	CandidatesPerStatus map[string]int `json:"candidates_per_status"`
	ActiveTalent        int            `json:"active_talent"`
}

func NewPipelineStats(candidates CandidateList, talent TalentProfileList) PipelineStats {
	stats := PipelineStats{
		TotalCandidates:     len(candidates),
		CandidatesPerStatus: map[string]int{},
	}
	for _, c := range candidates {
		stats.CandidatesPerStatus[c.Status]++
	}
	for _, p := range talent {
		if p.IsActive {
			stats.ActiveTalent++
		}
	}
	return stats
}
