package site

import "folio-cli/internal/palette"

// Default returns the built-in page.
func Default() Content {
	return Content{
		Brand:   "northwind.dev",
		Tagline: "AI-accelerated product delivery",
		Hero: Hero{
			Eyebrow:  "Independent engineering studio",
			Headline: "Ship production AI features in days, not quarters.",
			Lede:     "Senior product engineering with copilots in the loop: discovery, build, and rollout in one tight cycle.",
		},
		Sections: []Section{
			{
				ID:    SectionHero,
				Title: "Overview",
				Body: "Small team, short cycles, measurable outcomes.\n\n" +
					"Every engagement starts with a **5-day build sprint** that ends in something running in production.",
			},
			{
				ID:    SectionProjects,
				Title: "Selected Work",
				Body:  "A few shipped projects and product demos. Hover a card to tilt it.",
			},
			{
				ID:    SectionStack,
				Title: "Tooling Stack",
				Body: "- **Copilots** pair on every change, humans own every merge\n" +
					"- **Evaluation harnesses** gate prompt and model updates\n" +
					"- **Edge inference** keeps latency predictable worldwide\n" +
					"- **Autonomous regression agents** run the suite on every deploy",
			},
			{
				ID:    SectionActivity,
				Title: "Activity Log",
				Body:  "Recent delivery events. Press `r` to refresh.",
			},
			{
				ID:    SectionContact,
				Title: "Request a Build Sprint",
				Body:  "Tell me where to reach you and I'll send a sprint outline.",
			},
		},
		Metrics: []Metric{
			{Label: "Products shipped", Target: "48", Suffix: "+"},
			{Label: "Avg. reply window", Target: "6", Suffix: "h"},
			{Label: "Latency trimmed", Target: "34", Suffix: "%"},
			{Label: "Client rating", Target: "4.9", Suffix: "/5"},
		},
		Events: []Event{
			{Status: "shipped", Message: "AI-assisted feature flags rolled out to 28 markets", Time: "2h ago"},
			{Status: "synced", Message: "Prompt tuning cycle trimmed response latency by 34%", Time: "5h ago"},
			{Status: "deployed", Message: "Realtime inference edge worker replicated globally", Time: "1d ago"},
			{Status: "trained", Message: "Domain-specific copilots augmented with fresh datasets", Time: "2d ago"},
			{Status: "automated", Message: "Regression suite orchestrated via autonomous agent", Time: "2d ago"},
		},
		Projects: []Project{
			{Title: "Signal Desk", Summary: "Support triage copilot that drafts replies and routes escalations.", Tags: []string{"LLM", "Go", "Postgres"}},
			{Title: "Atlas Rollouts", Summary: "Feature-flag control plane with AI-written rollout plans per market.", Tags: []string{"Edge", "Flags"}},
			{Title: "Ledger Lens", Summary: "Reconciliation assistant that explains every mismatch it finds.", Tags: []string{"Finance", "Evals"}},
		},
		Actions: []palette.Action{
			{Title: "Request a Build Sprint", Description: "Kickstart a 5-day AI-accelerated delivery cycle", Destination: "#contact"},
			{Title: "Explore Selected Work", Description: "Dive into shipped projects and product demos", Destination: "#projects"},
			{Title: "View Tooling Stack", Description: "See how AI copilots and automation integrate into delivery", Destination: "#stack"},
			{Title: "Open GitHub", Description: "Browse open-source experiments and prototypes", Destination: "https://github.com", External: true},
		},
		Contact: ContactCopy{
			Heading:     "Start a sprint",
			Prompt:      "you@company.com",
			ReplyWindow: "6 hours",
		},
	}
}
