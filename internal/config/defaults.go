package config

// Default locations and names.
const (
	DefaultDocsDir   = "."
	DefaultOutputDir = "public/presentation-pdfs"
	DefaultBaseURL   = "http://localhost:3002/presentation-pdfs"
	DefaultPipeline  = "cards"
	DefaultSubtitle  = "Beacon Wellbeing Platform"
)

// DefaultConfig returns the built-in page tables: the pandoc-backed "print"
// pipeline and the in-process "cards" pipeline, both writing into
// DefaultOutputDir.
func DefaultConfig() *Config {
	return &Config{
		DocsDir:   DefaultDocsDir,
		OutputDir: DefaultOutputDir,
		BaseURL:   DefaultBaseURL,
		Footer: FooterConfig{
			Company:   "Beacon Effect",
			Contact:   "hello@beaconeffect.com.au | www.beaconeffect.com.au",
			Copyright: "© 2025 Beacon Effect. All rights reserved.",
		},
		Pipelines: []PipelineConfig{
			printPipeline(),
			cardsPipeline(),
		},
	}
}

func printPipeline() PipelineConfig {
	return PipelineConfig{
		Name:            "print",
		Converter:       "pandoc",
		Template:        "print",
		DefaultSubtitle: DefaultSubtitle,
		Banner:          "🎨 Converting Beacon documents to modern marketing style...",
		Done:            "✅ All documents converted to modern marketing style!",
		Heroes: map[string]Hero{
			"Beacon Wellbeing Survey Overview":    {"Early Detection for Workplace Wellbeing", "A validated psychosocial pulse survey for proactive risk management"},
			"Beacon Platform Summary":             {"Complete Wellbeing Platform", "From survey to insights—everything you need in one place"},
			"Beacon Client Proposal":              {"Partner with Beacon", "Transform workplace wellbeing with evidence-based insights"},
			"Beacon Survey Questions":             {"Survey Methodology", "Evidence-based questions designed for actionable insights"},
			"Google Slides Setup Guide":           {"Presentation Resources", "Create compelling client presentations with Beacon branding"},
			"Beacon Dashboard & Insights Summary": {"Executive Intelligence Dashboard", "Transform data into action with real-time wellbeing insights"},
			"Beacon Email Templates":              {"Communication Templates", "Ready-to-use email templates for client engagement"},
		},
		Pages: []PageConfig{
			{Source: "WELLBEING_SURVEY_OVERVIEW.md", Output: "Beacon-Survey-Overview.html", Title: "Beacon Wellbeing Survey Overview"},
			{Source: "BEACON_CLIENT_SUMMARY.md", Output: "Beacon-Platform-Summary.html", Title: "Beacon Platform Summary"},
			{Source: "BEACON_CLIENT_PROPOSAL.md", Output: "Beacon-Client-Proposal.html", Title: "Beacon Client Proposal"},
			{Source: "SURVEY_QUESTIONS.md", Output: "Beacon-Survey-Questions.html", Title: "Beacon Survey Questions"},
			{Source: "GOOGLE_SLIDES_SETUP.md", Output: "Beacon-Google-Slides-Setup.html", Title: "Google Slides Setup Guide"},
			{Source: "DASHBOARD_INSIGHTS_SUMMARY.md", Output: "Beacon-Dashboard-Insights.html", Title: "Beacon Dashboard & Insights Summary"},
			{Source: "EMAIL_TEMPLATES.md", Output: "Beacon-Email-Templates.html", Title: "Beacon Email Templates", Optional: true},
		},
		View: []string{
			"Beacon-Survey-Overview.html",
			"Beacon-Platform-Summary.html",
			"Beacon-Client-Proposal.html",
			"Beacon-Dashboard-Insights.html",
		},
	}
}

func cardsPipeline() PipelineConfig {
	return PipelineConfig{
		Name:            "cards",
		Converter:       "cards",
		Template:        "cards",
		DefaultSubtitle: DefaultSubtitle,
		Banner:          "🎨 Generating marketing pages with slate-dominant styling...",
		Done:            "✅ All marketing pages generated!",
		Footer: &FooterConfig{
			Company:   "Beacon Effect",
			Contact:   "hello@beaconeffect.com.au | 1300 BEACON (232 266) | www.beaconeffect.com.au",
			Copyright: "© 2025 Beacon Effect. All rights reserved.",
		},
		// The card pages use the hero title as the document title.
		Pages: []PageConfig{
			{
				Source: "DASHBOARD_INSIGHTS_SUMMARY.md", Output: "Beacon-Dashboard-Insights.html",
				Title: "Executive Intelligence Dashboard", HeroSubtitle: "Transform data into action with real-time wellbeing insights",
			},
			{
				Source: "BEACON_CLIENT_SUMMARY.md", Output: "Beacon-Platform-Summary.html",
				Title: "Complete Wellbeing Platform", HeroSubtitle: "From survey to insights—everything you need in one place",
			},
			{
				Source: "BEACON_CLIENT_PROPOSAL.md", Output: "Beacon-Client-Proposal.html",
				Title: "Partner with Beacon", HeroSubtitle: "Transform workplace wellbeing with evidence-based insights",
			},
			{
				Source: "EMAIL_TEMPLATES.md", Output: "Beacon-Email-Templates.html",
				Title: "Communication Templates", HeroSubtitle: "Ready-to-use email templates for client engagement",
			},
		},
		View: []string{
			"Beacon-Dashboard-Insights.html",
			"Beacon-Platform-Summary.html",
			"Beacon-Client-Proposal.html",
			"Beacon-Email-Templates.html",
		},
	}
}
