package dto

// TranscriptTurn is a single interview turn tagged with its speaker role.
type TranscriptTurn struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// GenerateInterviewRequest is the body of POST /interviews/generate.
// Either Skills or Techstack must be set; Techstack is kept for backward
// compatibility with older clients.
type GenerateInterviewRequest struct {
	Role      string `json:"role" binding:"required"`
	Field     string `json:"field"`
	Level     string `json:"level" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Skills    string `json:"skills"`
	Techstack string `json:"techstack"`
	Amount    int    `json:"amount" binding:"required,min=5,max=50"`
	UserID    string `json:"userid" binding:"required"`
	UserName  string `json:"userName"`
}

// CreateFeedbackRequest carries the transcript of a finished attempt.
// FeedbackID, when set, forces a full overwrite of that record.
type CreateFeedbackRequest struct {
	InterviewID   string           `json:"interviewId"`
	Transcript    []TranscriptTurn `json:"transcript"`
	FeedbackID    string           `json:"feedbackId"`
	InterviewRole string           `json:"interviewRole"`
	InterviewType string           `json:"interviewType"`
}

// GenerateTipsRequest asks for improvement tips on one rubric category.
type GenerateTipsRequest struct {
	CategoryName  string  `json:"categoryName" binding:"required"`
	Comment       string  `json:"comment"`
	Score         float64 `json:"score"`
	TotalScore    float64 `json:"totalScore"`
	InterviewRole string  `json:"interviewRole" binding:"required"`
}

// AskQuestionRequest is a free-text question about an existing feedback.
type AskQuestionRequest struct {
	InterviewID   string `json:"interviewId" binding:"required"`
	Question      string `json:"question" binding:"required"`
	InterviewRole string `json:"interviewRole"`
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
