package model

import "time"

type AnnotateRequestBody struct {
	Notes     []string `json:"notes"`
	Variant   string   `json:"variant,omitempty"`
	Normalize *bool    `json:"normalize,omitempty"`
	Save      bool     `json:"save,omitempty"`
}

type AnnotatedNote struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Hand       string `json:"hand,omitempty"`
	Infeasible bool   `json:"infeasible,omitempty"`
	BreakJump  bool   `json:"break_jump,omitempty"`
}

type AnnotatedPart struct {
	Name  string          `json:"name"`
	Notes []AnnotatedNote `json:"notes"`
	Runs  []RunSummary    `json:"runs"`
}

type AnnotateResponse struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Variant   string          `json:"variant"`
	Parts     []AnnotatedPart `json:"parts"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
