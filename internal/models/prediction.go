package models

import "time"

// Feedback values a caller may attach to a stored prediction.
const (
	FeedbackCorrect   = "correct"
	FeedbackIncorrect = "incorrect"
)

// ClassificationResult is the output of a single classifier invocation.
type ClassificationResult struct {
	IsSpam          bool    `json:"is_spam"`
	SpamProbability float64 `json:"spam_probability"`
	SafeProbability float64 `json:"safe_probability"`
}

// ModelMetadata is a snapshot of the training-time metrics shipped next to
// the model artifact. It is copied onto every prediction record at creation
// and never recomputed retroactively.
type ModelMetadata struct {
	ModelType     string  `json:"model_type"`
	Accuracy      float64 `json:"accuracy"`
	Precision     float64 `json:"precision"`
	Recall        float64 `json:"recall"`
	F1Score       float64 `json:"f1_score"`
	NFeatures     int     `json:"n_features,omitempty"`
	NTrainSamples int     `json:"n_train_samples,omitempty"`
	NTestSamples  int     `json:"n_test_samples,omitempty"`
}

// PredictionRecord is a persisted classification. The store owns records;
// only the Feedback field is mutable after creation.
type PredictionRecord struct {
	ID              string        `json:"prediction_id"`
	Text            string        `json:"text"`
	IsSpam          bool          `json:"is_spam"`
	SpamProbability float64       `json:"spam_probability"`
	SafeProbability float64       `json:"safe_probability"`
	Timestamp       time.Time     `json:"timestamp"`
	ModelMetadata   ModelMetadata `json:"model_metadata"`
	Feedback        *string       `json:"feedback,omitempty"`
}

// TokenImpact is one entry of a ranked token-attribution list. Impact is in
// [-0.3, 0.3]; positive pushes toward spam, negative toward legitimate.
// Ephemeral: recomputed on every request, never persisted.
type TokenImpact struct {
	Token  string  `json:"token"`
	Impact float64 `json:"impact"`
	Weight float64 `json:"weight"`
}

// HeatmapUnit is one word-or-whitespace fragment of the original text with
// a display importance in [0, 1]. Concatenating the Text of every unit in
// order reconstructs the original input exactly.
type HeatmapUnit struct {
	Text            string  `json:"text"`
	Index           int     `json:"index"`
	Importance      float64 `json:"importance"`
	IsSpamIndicator bool    `json:"isSpamIndicator"`
}
