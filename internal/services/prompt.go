package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionGenerationPrompt asks for exactly count interview questions as
// a strictly parseable JSON array. When resumeText is non-empty the questions
// are tailored to the candidate's background.
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(jobDescription, resumeText string, count int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"Create %d interview questions for this job description. Return only the questions as a JSON array of strings.\n\n",
		count,
	))
	sb.WriteString("Job Description:\n")
	sb.WriteString(jobDescription)

	if strings.TrimSpace(resumeText) != "" {
		sb.WriteString("\n\nThe candidate's resume is as follows. Tailor the questions to their background and experience:\n")
		sb.WriteString(resumeText)
	}

	return sb.String()
}

// BuildAnswerEvaluationPrompt requests feedback in the exact textual shape
// "Score: X/10. Feedback: <text>". The shape is a deliberately loose
// contract; the parser tolerates it being embedded in extra commentary.
func (pb *PromptBuilder) BuildAnswerEvaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`Evaluate this answer to the interview question.

Question:
%s

Answer:
%s

Provide a concise evaluation of the answer's quality, highlighting strengths or areas for improvement. Also, give a numeric score out of 10 for the answer quality.

Return ONLY a short text feedback in this format:
"Score: X/10. Feedback: <your feedback>"`,
		question, answer)
}
