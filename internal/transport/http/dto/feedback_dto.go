package dto

type FeedbackRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Place    string `json:"place"`
	Feedback string `json:"feedback"`
}

type FeedbackResponse struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Place    string `json:"place,omitempty"`
	Feedback string `json:"feedback"`
}

type FeedbackCreateResponse struct {
	Status   string           `json:"status"`
	Feedback FeedbackResponse `json:"feedback"`
}

type FeedbackDeleteResponse struct {
	Message  string           `json:"message"`
	Feedback FeedbackResponse `json:"deletedFeedback"`
}
