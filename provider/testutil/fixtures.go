package testutil

import "bizpilot/model"

// SampleIdea returns a fully populated idea form submission.
func SampleIdea() model.IdeaInput {
	return model.IdeaInput{
		Idea:     "Organic tea delivery",
		Category: "Food & Beverage",
		Audience: "Urban professionals in Dhaka",
	}
}

// SampleRoadmap is a short markdown roadmap as the backend would return it.
const SampleRoadmap = `## Business Registration
Register a sole proprietorship with RJSC.

## Tax & Compliance
Obtain a trade license and TIN.`
