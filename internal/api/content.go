package api

import "github.com/aviationlaunchpad/launchpad/internal/content"

type TrainingIndexResponse struct {
	Modules []content.TrainingModule `json:"modules"`
}

type TrainingModuleResponse struct {
	content.TrainingModule
}

type EventsResponse struct {
	Events []content.Event `json:"events"`
}

type PartnersResponse struct {
	Partners []content.Partner `json:"partners"`
}

type CareersResponse struct {
	Postings []content.JobPosting `json:"postings"`
}
