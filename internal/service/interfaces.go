package service

import "github.com/alexanderramin/glucoffee/internal/app"

type ProfileService interface {
	app.ProfileUseCase
}

type AssessmentService interface {
	app.AssessmentUseCase
}

type ConsumptionService interface {
	app.ConsumptionUseCase
}

type AnalysisService interface {
	app.AnalysisUseCase
}
