package model

import (
	"fmt"
	"strings"
)

const notSpecified = "Not specified"

// IdeaInput is the structured business idea collected by the idea form.
type IdeaInput struct {
	Idea     string
	Category string
	Audience string
}

// Validate requires a non-blank idea. Category and audience are optional.
func (in IdeaInput) Validate() error {
	if strings.TrimSpace(in.Idea) == "" {
		return &ValidationError{Field: "idea", Reason: "must not be blank"}
	}
	return nil
}

// UserTurnText is the text shown as the user's turn for an initial submission.
func (in IdeaInput) UserTurnText() string {
	return fmt.Sprintf(`My business idea is: "%s". The category is "%s" and the target audience is "%s". Please provide a business roadmap.`,
		in.Idea, in.Category, in.Audience)
}

// BuildRoadmapPrompt composes the initial prompt for direct-model providers.
func BuildRoadmapPrompt(in IdeaInput) string {
	var b strings.Builder
	b.WriteString("I want to start a business in Bangladesh with the following details:\n")
	fmt.Fprintf(&b, "- Idea: %s\n", in.Idea)
	fmt.Fprintf(&b, "- Category: %s\n", orNotSpecified(in.Category))
	fmt.Fprintf(&b, "- Target Audience: %s\n", orNotSpecified(in.Audience))
	b.WriteString("\nPlease provide a detailed step-by-step business roadmap covering these key areas:\n")
	b.WriteString("1.  **Business Registration:** Explain the necessary steps and entities (e.g., RJSC).\n")
	b.WriteString("2.  **Tax & Compliance:** Outline the basic tax filing requirements and necessary licenses.\n")
	b.WriteString("3.  **Market Segmentation:** Suggest specific market segments to target within Bangladesh.\n")
	b.WriteString("4.  **Investor Landscape:** Mention types of potential investors or funding sources available in the local ecosystem.")
	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

// GenerationRequest is built fresh for every call. Idea carries the structured
// fields of an initial submission so providers that need them (the HTTP
// backend) never parse them back out of Prompt.
type GenerationRequest struct {
	Prompt   string
	Idea     *IdeaInput
	FollowUp bool
}

// NewInitialRequest builds the request for an idea form submission.
func NewInitialRequest(in IdeaInput) GenerationRequest {
	idea := in
	return GenerationRequest{Prompt: BuildRoadmapPrompt(in), Idea: &idea}
}

// NewFollowUpRequest builds the request for a follow-up question; the text is
// sent as-is.
func NewFollowUpRequest(text string) GenerationRequest {
	return GenerationRequest{Prompt: text, FollowUp: true}
}
