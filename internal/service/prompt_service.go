package service

import (
	"fmt"
	"strings"

	"github.com/prepwise/prepwise/internal/dto"
)

// DifficultyMapping expands a level keyword into the experience description
// inlined into the question-generation prompt.
var DifficultyMapping = map[string]string{
	"entry":  "entry-level with 0-2 years experience or fresh graduate",
	"junior": "junior level with 2-4 years experience",
	"mid":    "mid-level with 4-8 years experience",
	"senior": "senior level with 8+ years experience or leadership responsibilities",
}

// TypeDescriptions expands an interview type into its focus instruction.
var TypeDescriptions = map[string]string{
	"technical":  "focus primarily on job-specific skills, knowledge, and technical competencies",
	"behavioral": "focus primarily on soft skills, past experiences, teamwork, leadership, and situational scenarios",
	"balanced":   "provide an equal mix of job-specific technical questions and behavioral/situational questions",
}

// SupportedLevels and SupportedTypes back the capability discovery response.
var (
	SupportedLevels = []string{"entry", "junior", "mid", "senior"}
	SupportedTypes  = []string{"technical", "behavioral", "balanced"}
)

// FeedbackCategories is the fixed five-category rubric, in display order.
var FeedbackCategories = []string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem-Solving",
	"Cultural & Role Fit",
	"Confidence & Clarity",
}

// PromptService builds every prompt sent to the text-generation backend.
// Builders are pure: same inputs always yield the same strings.
type PromptService interface {
	BuildFeedbackPrompt(transcript []dto.TranscriptTurn, interviewRole, interviewType string) (prompt, system string)
	BuildInterviewPrompt(req dto.GenerateInterviewRequest, relevantSkills string) string
	BuildTipsPrompt(req dto.GenerateTipsRequest) (prompt, system string)
	BuildQuestionPrompt(feedback *dto.FeedbackResponse, question, interviewRole string) (prompt, system string)
}

type promptService struct{}

func NewPromptService() PromptService {
	return &promptService{}
}

// FormatTranscript renders transcript turns as "- <role>: <content>" lines in
// original order. An empty transcript renders as an empty string; the prompt
// around it stays well-formed.
func FormatTranscript(transcript []dto.TranscriptTurn) string {
	var b strings.Builder
	for _, turn := range transcript {
		b.WriteString(fmt.Sprintf("- %s: %s\n", turn.Role, turn.Content))
	}
	return b.String()
}

func (s *promptService) BuildFeedbackPrompt(transcript []dto.TranscriptTurn, interviewRole, interviewType string) (string, string) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("You are an experienced AI interviewer analyzing a mock interview for a %s position.\n", interviewRole))
	b.WriteString("Your task is to provide comprehensive, actionable feedback that will help the candidate improve.\n\n")
	b.WriteString(fmt.Sprintf("Interview Type: %s\n", interviewType))
	b.WriteString(fmt.Sprintf("Role: %s\n\n", interviewRole))
	b.WriteString("Transcript:\n")
	b.WriteString(FormatTranscript(transcript))
	b.WriteString("\nEVALUATION CRITERIA:\n")
	b.WriteString(fmt.Sprintf("Score each category from 0-100 based on industry standards for %s roles:\n\n", interviewRole))

	b.WriteString("1. **Communication Skills** (0-100):\n")
	b.WriteString("   - Clarity and articulation of thoughts\n")
	b.WriteString("   - Structured and organized responses\n")
	b.WriteString("   - Professional language and tone\n")
	b.WriteString("   - Ability to explain complex concepts simply\n\n")

	b.WriteString("2. **Technical Knowledge** (0-100):\n")
	b.WriteString(fmt.Sprintf("   - Understanding of core concepts for %s\n", interviewRole))
	b.WriteString("   - Depth of knowledge in relevant technologies\n")
	b.WriteString("   - Practical application of technical skills\n")
	b.WriteString("   - Current industry awareness\n\n")

	b.WriteString("3. **Problem-Solving** (0-100):\n")
	b.WriteString("   - Analytical thinking approach\n")
	b.WriteString("   - Breaking down complex problems\n")
	b.WriteString("   - Creative and efficient solutions\n")
	b.WriteString("   - Logical reasoning process\n\n")

	b.WriteString("4. **Cultural & Role Fit** (0-100):\n")
	b.WriteString("   - Alignment with professional values\n")
	b.WriteString("   - Understanding of role requirements\n")
	b.WriteString("   - Team collaboration mindset\n")
	b.WriteString("   - Adaptability and learning attitude\n\n")

	b.WriteString("5. **Confidence & Clarity** (0-100):\n")
	b.WriteString("   - Confidence in responses without arrogance\n")
	b.WriteString("   - Clear and decisive communication\n")
	b.WriteString("   - Professional presence and engagement\n")
	b.WriteString("   - Ability to handle uncertainty gracefully\n\n")

	b.WriteString("SCORING GUIDELINES:\n")
	b.WriteString("- 90-100: Exceptional, ready for senior roles\n")
	b.WriteString("- 80-89: Strong performance, ready for the role\n")
	b.WriteString("- 70-79: Good with minor areas to improve\n")
	b.WriteString("- 60-69: Adequate but needs focused improvement\n")
	b.WriteString("- 50-59: Below average, significant improvement needed\n")
	b.WriteString("- Below 50: Major gaps, extensive preparation required\n\n")

	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("- Be honest and constructive, not lenient\n")
	b.WriteString("- Provide specific examples from the transcript\n")
	b.WriteString("- Focus on actionable improvement areas\n")
	b.WriteString(fmt.Sprintf("- Compare against industry standards for %s\n", interviewRole))
	b.WriteString("- Include detailed insights about their interview style\n")
	b.WriteString("- Suggest specific next steps for improvement\n")
	b.WriteString(fmt.Sprintf("- Benchmark against typical %s candidates\n", interviewRole))

	system := fmt.Sprintf(
		"You are a professional %s interviewer and career coach with 10+ years of experience. "+
			"Provide detailed, constructive feedback that helps candidates grow professionally. "+
			"Be thorough, specific, and actionable in your analysis.",
		interviewRole,
	)

	return b.String(), system
}

func (s *promptService) BuildInterviewPrompt(req dto.GenerateInterviewRequest, relevantSkills string) string {
	difficulty, ok := DifficultyMapping[req.Level]
	if !ok {
		difficulty = "appropriate level"
	}
	typeDescription := TypeDescriptions[req.Type]

	fieldSuffix := ""
	if req.Field != "" {
		fieldSuffix = fmt.Sprintf(" in the %s field", req.Field)
	}
	field := req.Field
	if field == "" {
		field = "General"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an expert interview coach creating %d professional interview questions for a %s position%s.\n\n",
		req.Amount, req.Role, fieldSuffix))
	b.WriteString("CANDIDATE PROFILE:\n")
	b.WriteString(fmt.Sprintf("- Position: %s\n", req.Role))
	b.WriteString(fmt.Sprintf("- Field/Industry: %s\n", field))
	b.WriteString(fmt.Sprintf("- Experience Level: %s\n", difficulty))
	b.WriteString(fmt.Sprintf("- Interview Focus: %s\n", typeDescription))
	b.WriteString(fmt.Sprintf("- Key Skills/Knowledge Areas: %s\n\n", relevantSkills))
	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString(fmt.Sprintf("1. Create exactly %d questions appropriate for %s level candidates\n", req.Amount, req.Level))
	b.WriteString(fmt.Sprintf("2. %s\n", typeDescription))
	b.WriteString(fmt.Sprintf("3. Questions should be realistic and commonly asked in %s interviews\n", req.Role))
	b.WriteString("4. Include a variety of question types:\n")
	b.WriteString("   - Job-specific knowledge and skills\n")
	b.WriteString("   - Problem-solving scenarios relevant to the role\n")
	b.WriteString("   - Experience-based questions\n")
	b.WriteString("   - Situational/behavioral questions (based on focus type)\n")
	b.WriteString("   - Industry/field-specific challenges if applicable\n")
	b.WriteString("5. Ensure questions are:\n")
	b.WriteString("   - Professional and interview-appropriate\n")
	b.WriteString("   - Clear and easy to understand\n")
	b.WriteString("   - Relevant to the specific role and field\n")
	b.WriteString("   - Progressively challenging based on experience level\n")
	b.WriteString("6. Avoid special characters (/, *, #, etc.) that might break voice synthesis\n")
	b.WriteString("7. Make questions engaging and realistic for actual interviews\n\n")
	b.WriteString("FORMAT REQUIREMENT: Return ONLY a JSON array of questions:\n")
	b.WriteString(`["Question 1 text here", "Question 2 text here", "Question 3 text here"]` + "\n\n")
	b.WriteString("Generate diverse, high-quality interview questions now:")

	return b.String()
}

func (s *promptService) BuildTipsPrompt(req dto.GenerateTipsRequest) (string, string) {
	var b strings.Builder
	b.WriteString("You are a professional career coach providing specific, actionable improvement tips.\n\n")
	b.WriteString("Context:\n")
	b.WriteString(fmt.Sprintf("- Interview Role: %s\n", req.InterviewRole))
	b.WriteString(fmt.Sprintf("- Category: %s\n", req.CategoryName))
	b.WriteString(fmt.Sprintf("- Current Score: %.0f/100\n", req.Score))
	b.WriteString(fmt.Sprintf("- Feedback Comment: %s\n", req.Comment))
	b.WriteString(fmt.Sprintf("- Overall Performance: %.0f/100\n\n", req.TotalScore))
	b.WriteString(fmt.Sprintf("Based on this feedback, provide 4-6 specific, actionable tips for improving in the %q category.\n", req.CategoryName))
	b.WriteString("Each tip should be:\n")
	b.WriteString("1. Specific and actionable\n")
	b.WriteString(fmt.Sprintf("2. Relevant to the %s role\n", req.InterviewRole))
	b.WriteString("3. Address the weaknesses mentioned in the comment\n")
	b.WriteString("4. Be practical and implementable\n\n")
	b.WriteString("Format your response as a simple list, one tip per line, without numbering or bullet points.\n")
	b.WriteString("Focus on concrete steps the candidate can take to improve their score in this area.")

	system := fmt.Sprintf(
		"You are a professional interview coach specializing in %s positions. Provide specific, actionable advice.",
		req.InterviewRole,
	)

	return b.String(), system
}

func (s *promptService) BuildQuestionPrompt(feedback *dto.FeedbackResponse, question, interviewRole string) (string, string) {
	var b strings.Builder
	b.WriteString("You are a professional interview coach answering questions about interview feedback.\n\n")
	b.WriteString("Interview Context:\n")
	b.WriteString(fmt.Sprintf("- Role: %s\n", interviewRole))
	b.WriteString(fmt.Sprintf("- Overall Score: %.0f/100\n", feedback.TotalScore))
	b.WriteString(fmt.Sprintf("- Final Assessment: %s\n\n", feedback.FinalAssessment))
	b.WriteString("Category Breakdown:\n")
	for i, cat := range feedback.CategoryScores {
		b.WriteString(fmt.Sprintf("%d. %s: %.0f/100 - %s\n", i+1, cat.Name, cat.Score, cat.Comment))
	}
	b.WriteString("\nStrengths:\n")
	for _, strength := range feedback.Strengths {
		b.WriteString(fmt.Sprintf("- %s\n", strength))
	}
	b.WriteString("\nAreas for Improvement:\n")
	for _, area := range feedback.AreasForImprovement {
		b.WriteString(fmt.Sprintf("- %s\n", area))
	}
	b.WriteString(fmt.Sprintf("\nUser Question: %q\n\n", question))
	b.WriteString("Provide a helpful, specific, and encouraging response to the user's question based on their interview feedback.\n")
	b.WriteString("Be professional, constructive, and provide actionable advice when possible.\n")
	b.WriteString("Keep your response concise but informative (2-4 sentences max).\n")
	b.WriteString("If the question is about improvement, provide specific next steps.\n")
	b.WriteString("If the question is about scoring, explain the reasoning clearly.")

	system := fmt.Sprintf(
		"You are a supportive interview coach helping candidates understand and improve from their interview feedback for %s positions.",
		interviewRole,
	)

	return b.String(), system
}
