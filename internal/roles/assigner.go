package roles

import (
	"context"
	"sync"

	"github.com/medscribe/scribe-flow/internal/transcript"
)

// confidence tiers for the duplicate-role tie-break. Heuristic scores sit
// above these so a marker-backed assignment always wins over a service one.
const (
	confPositional = 0
	confClassifier = 1
	confHeuristic  = 10 // base; actual = confHeuristic + score
)

// Assign produces the speaker -> role mapping for one job. Total over all
// speakers present: heuristics first, then one classification call per
// unresolved speaker (issued concurrently), then the positional fallback.
// A classification failure demotes that one speaker to Other and the job
// carries on.
func (a *implAssigner) Assign(ctx context.Context, turns []transcript.Turn) map[string]transcript.Role {
	profiles := buildProfiles(turns)
	if len(profiles) == 0 {
		return map[string]transcript.Role{}
	}

	mapping := make(map[string]transcript.Role, len(profiles))
	confidences := make(map[string]int, len(profiles))

	var unresolved []*SpeakerProfile
	for _, p := range profiles {
		if role, score, ok := classifyHeuristic(p); ok {
			mapping[p.Speaker] = role
			confidences[p.Speaker] = confHeuristic + score
			a.logger.Debug(ctx, "Heuristic assigned %s -> %s (score %d)", p.Speaker, role, score)
		} else {
			unresolved = append(unresolved, p)
		}
	}

	if len(unresolved) > 0 {
		if a.classifier != nil {
			a.classifyConcurrently(ctx, unresolved, mapping, confidences)
		} else {
			for _, p := range profiles {
				if _, ok := mapping[p.Speaker]; !ok {
					mapping[p.Speaker] = positionalFallback(indexOf(profiles, p))
					confidences[p.Speaker] = confPositional
				}
			}
		}
	}

	a.dedupeRoles(ctx, profiles, mapping, confidences)
	return mapping
}

// classifyConcurrently issues one classification call per unresolved
// speaker. The calls are independent, so they run in parallel and join
// before assignment continues; turn order is never affected.
func (a *implAssigner) classifyConcurrently(
	ctx context.Context,
	unresolved []*SpeakerProfile,
	mapping map[string]transcript.Role,
	confidences map[string]int,
) {
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, p := range unresolved {
		wg.Add(1)
		go func(p *SpeakerProfile) {
			defer wg.Done()

			role, err := a.classifier.Classify(ctx, p.Excerpt())
			if err != nil {
				a.logger.Warn(ctx, "Classification failed for %s, labeling Other: %v", p.Speaker, err)
				role = transcript.RoleOther
			}

			mu.Lock()
			mapping[p.Speaker] = role
			if err == nil && role != transcript.RoleOther {
				confidences[p.Speaker] = confClassifier
			} else {
				confidences[p.Speaker] = confPositional
			}
			mu.Unlock()
		}(p)
	}

	wg.Wait()
}

// dedupeRoles resolves duplicate high-confidence roles: when two speakers
// both land on doctor (or patient, or nurse) in a multi-speaker
// conversation, the lower-confidence one demotes to Other rather than
// presenting two equally authoritative voices.
func (a *implAssigner) dedupeRoles(
	ctx context.Context,
	profiles []*SpeakerProfile,
	mapping map[string]transcript.Role,
	confidences map[string]int,
) {
	if len(profiles) < 2 {
		return
	}

	for _, role := range []transcript.Role{transcript.RoleDoctor, transcript.RolePatient, transcript.RoleNurse} {
		var holders []string
		for _, p := range profiles {
			if mapping[p.Speaker] == role {
				holders = append(holders, p.Speaker)
			}
		}
		if len(holders) < 2 {
			continue
		}

		keep := holders[0]
		for _, sp := range holders[1:] {
			if confidences[sp] > confidences[keep] {
				keep = sp
			}
		}
		for _, sp := range holders {
			if sp != keep {
				a.logger.Info(ctx, "Duplicate %s: demoting %s to Other (kept %s)", role, sp, keep)
				mapping[sp] = transcript.RoleOther
			}
		}
	}
}

func indexOf(profiles []*SpeakerProfile, p *SpeakerProfile) int {
	for i, q := range profiles {
		if q == p {
			return i
		}
	}
	return 0
}
