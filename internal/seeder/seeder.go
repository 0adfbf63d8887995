package seeder

import (
	"time"

	"shieldmail/internal/models"
	"shieldmail/internal/service"
	"shieldmail/internal/store"

	"go.uber.org/zap"
)

// sample is one synthetic prediction for demonstration data. Labels and
// probabilities are fixed so dashboards always show a mixed, dated spread.
type sample struct {
	text     string
	month    time.Month
	day      int
	hour     int
	minute   int
	isSpam   bool
	spamProb float64
}

var samples = []sample{
	{
		text:     "Hello, I hope this email finds you well. I wanted to follow up on our previous discussion about the project timeline. Please let me know if you have any questions.",
		month:    time.October, day: 31, hour: 10, minute: 0,
		isSpam: false, spamProb: 0.15,
	},
	{
		text:     "WINNER! You have been selected to receive a FREE prize! Click now to claim your $1000 cash reward! Limited time offer!",
		month:    time.November, day: 2, hour: 14, minute: 30,
		isSpam: true, spamProb: 0.65,
	},
	{
		text:     "URGENT! Act now! Get rich quick! Make money fast! No investment required! Click here for instant cash!",
		month:    time.November, day: 3, hour: 9, minute: 15,
		isSpam: true, spamProb: 0.70,
	},
	{
		text:     "Thank you for your email. I appreciate your time and consideration. I will review the documents and get back to you by the end of the week.",
		month:    time.November, day: 5, hour: 16, minute: 45,
		isSpam: false, spamProb: 0.20,
	},
	{
		text:     "Congratulations! You won $5000! Claim your prize now! Free money! No strings attached! Click here immediately!",
		month:    time.November, day: 6, hour: 11, minute: 20,
		isSpam: true, spamProb: 0.75,
	},
}

// Seeder generates demonstration predictions. It is a convenience layered
// on the store's create path; every seeded record goes through the same
// append semantics as a real classification.
type Seeder struct {
	model  service.ModelService
	store  store.PredictionStore
	logger *zap.Logger
}

func New(model service.ModelService, predStore store.PredictionStore, logger *zap.Logger) *Seeder {
	return &Seeder{model: model, store: predStore, logger: logger}
}

// GenerateSampleData seeds five predictions with fixed labels,
// probabilities and dated timestamps in the current year. The model must be
// loaded, matching the behavior of a real classification request.
func (s *Seeder) GenerateSampleData() ([]models.PredictionRecord, error) {
	metadata := models.ModelMetadata{ModelType: "Unknown"}
	if m := s.model.Metadata(); m != nil {
		metadata = *m
	}

	year := time.Now().Year()
	created := make([]models.PredictionRecord, 0, len(samples))
	for _, sm := range samples {
		// Run the text through the real model for parity with a live
		// request, then override with the sample's fixed label.
		if _, err := s.model.Predict(sm.text); err != nil {
			return nil, err
		}

		result := models.ClassificationResult{
			IsSpam:          sm.isSpam,
			SpamProbability: sm.spamProb,
			SafeProbability: 1 - sm.spamProb,
		}
		timestamp := time.Date(year, sm.month, sm.day, sm.hour, sm.minute, 0, 0, time.Local)
		created = append(created, s.store.CreateAt(sm.text, result, metadata, timestamp))
	}

	s.logger.Info("Sample data generated", zap.Int("count", len(created)))
	return created, nil
}
