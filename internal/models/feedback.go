package models

// FeedbackSubmission is the JSON body posted to /api/feedback/submit.
type FeedbackSubmission struct {
	Category    string `json:"category"`
	Rating      int    `json:"rating"`
	Subject     string `json:"subject"`
	Comment     string `json:"comment"`
	Location    string `json:"location"`
	StaffMember string `json:"staff_member"`
	Anonymous   bool   `json:"anonymous"`
}

// SubmitResult is what the backend returns for a submission. On error only Detail is set.
type SubmitResult struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message,omitempty"`
	FeedbackID     string   `json:"feedback_id,omitempty"`
	Sentiment      string   `json:"sentiment,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
	AlertTriggered bool     `json:"alert_triggered,omitempty"`
	Detail         string   `json:"detail,omitempty"`
}

// SentimentResult returns the sentiment part of the submission, if the backend sent one.
func (r SubmitResult) SentimentResult() (SentimentResult, bool) {
	if r.Sentiment == "" {
		return SentimentResult{}, false
	}
	res := SentimentResult{Sentiment: r.Sentiment}
	if r.Confidence != nil {
		res.Confidence = *r.Confidence
	}
	return res, true
}
