package service

import (
	"time"

	"github.com/article-ingest-api/internal/models"
)

// outrankArticles is the fixed internal article set ingested by the
// bulk-sync endpoint until Outrank webhook deliveries go live.
var outrankArticles = []models.OutrankArticle{
	{
		ID:    "65bb72af-1eb7-423d-98aa-8c3dbb27f423",
		Title: "Create an Effective Design Document Template",
		ContentMarkdown: "A design document template is your secret weapon for a successful project. " +
			"Think of it as a standardized, reusable framework that your team fills out before " +
			"a single line of code gets written. This establishes a single source of truth " +
			"that aligns the entire team.",
		ContentHTML: `<article>
  <h1>Create an Effective Design Document Template</h1>
  <p>A design document template is your secret weapon for a successful project. Think of it as a standardized, reusable framework that your team fills out before a single line of code gets written.</p>
  <h2>Why You Need a Design Document Template</h2>
  <p>Without proper documentation, projects often suffer from scope creep, miscommunication, and technical debt.</p>
  <h2>Conclusion</h2>
  <p>Investing time in creating and maintaining design documents pays dividends throughout the project lifecycle.</p>
</article>`,
		MetaDescription: "Learn how to create an effective design document template that streamlines projects and prevents scope creep.",
		CreatedAt:       time.Date(2024, 11, 4, 9, 0, 0, 0, time.UTC),
		ImageURL:        "https://cdn.outrank.so/design-document-template.jpg",
		Slug:            "create-effective-design-document-template",
		Tags:            []string{"project-management", "documentation", "team-collaboration"},
	},
	{
		ID:    "77654073-e79c-424e-b2df-fc17607c9a79",
		Title: "Build a Powerful AI Prompt Library for Your Team",
		ContentMarkdown: "Building an AI prompt library is one of the smartest investments your team can make. " +
			"Having a centralized collection of proven prompts can dramatically improve " +
			"consistency, quality, and productivity.",
		ContentHTML: `<article>
  <h1>Build a Powerful AI Prompt Library for Your Team</h1>
  <p>Building an AI prompt library is one of the smartest investments your team can make. A centralized collection of proven prompts dramatically improves consistency, quality, and productivity.</p>
  <h2>What is an AI Prompt Library?</h2>
  <p>A curated collection of tested and optimized prompts designed for specific tasks and use cases.</p>
  <h2>Getting Started</h2>
  <p>Start small with your most common use cases and expand as you see the benefits.</p>
</article>`,
		MetaDescription: "Learn how to build and manage a powerful AI prompt library that improves team consistency and productivity.",
		CreatedAt:       time.Date(2024, 11, 4, 9, 0, 0, 0, time.UTC),
		ImageURL:        "https://cdn.outrank.so/ai-prompt-library.jpg",
		Slug:            "build-powerful-ai-prompt-library-team",
		Tags:            []string{"artificial-intelligence", "prompt-engineering", "team-productivity"},
	},
}
