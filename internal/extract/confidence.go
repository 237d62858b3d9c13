package extract

// Confidence maps a finished extraction result and its processing metadata to
// an advisory quality estimate in [0,1]. Deterministic; additive terms:
//
//	+0.5 when anything at all was found
//	+0.1 per tool, capped at 0.3
//	+up to 0.2 scaled by the fraction of tools carrying a description
//	+0.02 per contributing file, capped at 0.1
//	x0.7 when the server's processing recorded an error
//
// The description term is additionally scaled by the fraction of tools whose
// names resolved to literals, so best-effort fallback names drag the score
// down instead of passing as documented extractions.
//
// The score never gates whether a result is stored.
func Confidence(result *Result, filesContributed int, hadError bool) float64 {
	confidence := 0.0

	if !result.Empty() {
		confidence += 0.5
	}

	toolCount := len(result.Tools)
	if toolCount > 0 {
		bonus := float64(toolCount) * 0.1
		if bonus > 0.3 {
			bonus = 0.3
		}
		confidence += bonus

		described := 0
		resolved := 0
		for _, t := range result.Tools {
			if t.Description != "" {
				described++
			}
			if t.NameResolved {
				resolved++
			}
		}
		descriptionRatio := float64(described) / float64(toolCount)
		resolvedRatio := float64(resolved) / float64(toolCount)
		confidence += descriptionRatio * resolvedRatio * 0.2
	}

	if filesContributed > 1 {
		bonus := float64(filesContributed) * 0.02
		if bonus > 0.1 {
			bonus = 0.1
		}
		confidence += bonus
	}

	if hadError {
		confidence *= 0.7
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0.0 {
		confidence = 0.0
	}
	return confidence
}
