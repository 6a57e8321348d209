package gateway

import (
	"context"
	"fmt"

	"github.com/skillcheck-ai/skillcheck-api/internal/config"
	"github.com/skillcheck-ai/skillcheck-api/internal/ingestion"
	"github.com/skillcheck-ai/skillcheck-api/internal/quiz"
	"google.golang.org/genai"
)

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGemini builds the provider against the configured model. The API
// key comes from the GEMINI_API_KEY environment variable.
func NewGemini(ctx context.Context, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

var jsonResponse = &genai.GenerateContentConfig{
	ResponseMIMEType: "application/json",
}

func (p *geminiProvider) ExtractSkills(ctx context.Context, image []byte) (ingestion.ResumeData, error) {
	log := config.WithContext(ctx)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, "image/png"),
			genai.NewPartFromText(extractPrompt),
		}, genai.RoleUser),
	}

	raw, err := p.generate(ctx, contents)
	if err != nil {
		log.WithError(err).Error("Resume analysis request failed")
		return ingestion.ResumeData{}, fmt.Errorf("%w: %v", ingestion.ErrAnalysisFailed, err)
	}

	data, err := parseResume(raw)
	if err != nil {
		log.WithError(err).Errorf("Unusable resume analysis response:\n%s", raw)
		return ingestion.ResumeData{}, fmt.Errorf("%w: %v", ingestion.ErrAnalysisFailed, err)
	}

	log.Infof("Extracted %d skills from resume", len(data.Skills))
	return data, nil
}

func (p *geminiProvider) GenerateQuestions(ctx context.Context, resume ingestion.ResumeData, mode quiz.Mode, count int) ([]quiz.Question, error) {
	log := config.WithContext(ctx)

	var prompt string
	if mode == quiz.ModeOpen {
		prompt = openQuizPrompt(resume.Skills, count)
	} else {
		prompt = closedQuizPrompt(resume.Skills, count)
	}

	raw, err := p.generate(ctx, genai.Text(prompt))
	if err != nil {
		log.WithError(err).Error("Question generation request failed")
		return nil, fmt.Errorf("%w: %v", quiz.ErrGenerationFailed, err)
	}

	var questions []quiz.Question
	if mode == quiz.ModeOpen {
		questions, err = parseOpenQuestions(raw)
	} else {
		questions, err = parseClosedQuestions(raw)
	}
	if err != nil {
		log.WithError(err).Errorf("Unusable question generation response:\n%s", raw)
		return nil, fmt.Errorf("%w: %v", quiz.ErrGenerationFailed, err)
	}

	log.Infof("Generated %d questions", len(questions))
	return questions, nil
}

func (p *geminiProvider) EvaluateAnswers(ctx context.Context, skills []string, answers []quiz.Answer) ([]int, error) {
	log := config.WithContext(ctx)

	raw, err := p.generate(ctx, genai.Text(evaluatePrompt(skills, answers)))
	if err != nil {
		log.WithError(err).Error("Answer evaluation request failed")
		return nil, fmt.Errorf("%w: %v", quiz.ErrEvaluationFailed, err)
	}

	scores, err := parseScores(raw, len(answers))
	if err != nil {
		log.WithError(err).Errorf("Unusable evaluation response:\n%s", raw)
		return nil, fmt.Errorf("%w: %v", quiz.ErrEvaluationFailed, err)
	}
	return scores, nil
}

func (p *geminiProvider) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, jsonResponse)
	if err != nil {
		return "", err
	}
	raw := result.Text()
	if raw == "" {
		return "", fmt.Errorf("empty model response")
	}
	return raw, nil
}
