package events

// StageEvent is published after every committed stage transition,
// including the synthetic ones written at application creation.
type StageEvent struct {
	ApplicationID string  `json:"application_id"`
	OrgID         string  `json:"org_id"`
	FromStage     *string `json:"from_stage,omitempty"`
	ToStage       string  `json:"to_stage"`
	Status        string  `json:"status"`
	FinalOutcome  *string `json:"final_outcome,omitempty"`
	ChangedBy     *string `json:"changed_by,omitempty"`
}

type ApplicationEvent struct {
	ApplicationID string `json:"application_id"`
	CandidateID   string `json:"candidate_id"`
	PositionID    string `json:"position_id"`
	OrgID         string `json:"org_id"`
}
