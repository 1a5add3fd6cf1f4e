// Package catalog holds the seed signpost definitions. The catalog is
// deliberately closed: the mapper may only link events to signposts defined
// here, so a hallucinated milestone can never enter the index.
package catalog

import "github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"

// Default returns the seed signpost catalog. Seeding is idempotent, keyed by
// code; existing rows keep their Current values.
func Default() []domain.Signpost {
	return []domain.Signpost{
		{
			Code:        "CAP-01",
			Name:        "Verified software engineering benchmark",
			Description: "Resolution rate on held-out real-world repository issues, verified by test suites.",
			Category:    domain.CategoryCapabilities,
			Baseline:    0.04,
			Target:      0.95,
			Unit:        "fraction resolved",
		},
		{
			Code:        "CAP-02",
			Name:        "Expert-level scientific question answering",
			Description: "Accuracy on graduate-level, search-proof science questions.",
			Category:    domain.CategoryCapabilities,
			Baseline:    0.30,
			Target:      0.95,
			Unit:        "accuracy",
		},
		{
			Code:        "CAP-03",
			Name:        "Competition mathematics",
			Description: "Score on olympiad-level mathematics under contest conditions.",
			Category:    domain.CategoryCapabilities,
			Baseline:    0.05,
			Target:      1.0,
			Unit:        "fraction of full marks",
		},
		{
			Code:        "AGT-01",
			Name:        "Long-horizon autonomous task completion",
			Description: "Length of tasks, measured in human-expert hours, completed autonomously at 50% reliability.",
			Category:    domain.CategoryAgents,
			Baseline:    0.1,
			Target:      160,
			Unit:        "hours",
		},
		{
			Code:        "AGT-02",
			Name:        "Autonomous web operation",
			Description: "Success rate across multi-step tasks on real websites.",
			Category:    domain.CategoryAgents,
			Baseline:    0.14,
			Target:      0.90,
			Unit:        "success rate",
		},
		{
			Code:        "AGT-03",
			Name:        "Computer-use task completion",
			Description: "Success rate on open-ended desktop application workflows.",
			Category:    domain.CategoryAgents,
			Baseline:    0.08,
			Target:      0.85,
			Unit:        "success rate",
		},
		{
			Code:        "INP-01",
			Name:        "Frontier training compute",
			Description: "Largest disclosed training run, in floating point operations.",
			Category:    domain.CategoryInputs,
			Baseline:    1e25,
			Target:      1e28,
			Unit:        "FLOP",
		},
		{
			Code:        "INP-02",
			Name:        "Frontier lab capital expenditure",
			Description: "Annualized infrastructure spending commitments across frontier labs.",
			Category:    domain.CategoryInputs,
			Baseline:    50,
			Target:      1000,
			Unit:        "billion USD/year",
		},
		{
			Code:        "INP-03",
			Name:        "Algorithmic efficiency gains",
			Description: "Effective compute multiplier from algorithmic progress relative to the baseline year.",
			Category:    domain.CategoryInputs,
			Baseline:    1,
			Target:      1000,
			Unit:        "multiplier",
		},
		{
			Code:        "SEC-01",
			Name:        "Frontier weight security certification",
			Description: "Share of frontier labs meeting the highest published weight-security standard.",
			Category:    domain.CategorySecurity,
			Baseline:    0,
			Target:      1,
			Unit:        "fraction of labs",
		},
		{
			Code:        "SEC-02",
			Name:        "Binding international evaluation regime",
			Description: "Fraction of frontier training runs covered by binding third-party pre-deployment evaluation.",
			Category:    domain.CategorySecurity,
			Baseline:    0,
			Target:      1,
			Unit:        "fraction of runs",
		},
		{
			Code:        "SEC-03",
			Name:        "Interpretability coverage",
			Description: "Share of deployed frontier-model behaviors attributable by audited interpretability methods.",
			Category:    domain.CategorySecurity,
			Baseline:    0.01,
			Target:      0.8,
			Unit:        "fraction of behaviors",
		},
	}
}
