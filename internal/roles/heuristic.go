package roles

import (
	"strings"

	"github.com/medscribe/scribe-flow/internal/transcript"
)

// Marker phrases characteristic of each clinical role. Self-introductions
// weigh more than vocabulary markers.
var (
	doctorIntros = []string{
		"i'm dr", "i'm doctor", "i am dr", "i am doctor", "this is dr",
	}
	doctorMarkers = []string{
		"i'll check", "we'll run", "let me examine", "rule out",
		"i'll prescribe", "what brings you in", "any allergies",
		"your bp", "order some tests", "follow up in",
	}
	patientMarkers = []string{
		"i'm feeling", "i feel", "i've been having", "my ", "it hurts",
		"dizzy", "fever", "since ", "for the past", "the pain",
	}
	nurseIntros = []string{
		"i'm the nurse", "i'm your nurse", "i am the nurse",
	}
	nurseMarkers = []string{
		"your vitals", "blood pressure is", "temperature is",
		"the doctor will see you", "the doctor will be",
		"step on the scale", "roll up your sleeve",
	}
)

const (
	introWeight = 3
	// minHeuristicScore is the confidence floor below which a speaker goes
	// to the classifier instead.
	minHeuristicScore = 2
)

// heuristicScores counts marker hits per role for one speaker.
func heuristicScores(p *SpeakerProfile) map[transcript.Role]int {
	scores := make(map[transcript.Role]int)

	count := func(markers []string, role transcript.Role, weight int) {
		for _, m := range markers {
			if strings.Contains(p.lowerText, m) {
				scores[role] += weight
			}
		}
	}

	count(doctorIntros, transcript.RoleDoctor, introWeight)
	count(doctorMarkers, transcript.RoleDoctor, 1)
	count(nurseIntros, transcript.RoleNurse, introWeight)
	count(nurseMarkers, transcript.RoleNurse, 1)
	count(patientMarkers, transcript.RolePatient, 1)

	// Question/answer asymmetry: a speaker who mostly asks leans doctor.
	if p.turns >= 2 && p.questions*2 > p.turns {
		scores[transcript.RoleDoctor]++
	}

	return scores
}

// classifyHeuristic returns the role and its confidence score when the
// markers point one way with enough margin, or ok=false otherwise.
func classifyHeuristic(p *SpeakerProfile) (transcript.Role, int, bool) {
	scores := heuristicScores(p)

	var best, secondBest int
	var bestRole transcript.Role
	for _, role := range []transcript.Role{transcript.RoleDoctor, transcript.RolePatient, transcript.RoleNurse} {
		s := scores[role]
		if s > best {
			secondBest = best
			best = s
			bestRole = role
		} else if s > secondBest {
			secondBest = s
		}
	}

	if best < minHeuristicScore || best == secondBest {
		return transcript.RoleOther, 0, false
	}
	return bestRole, best, true
}

// positionalFallback mirrors how clinical recordings are usually started:
// the clinician speaks first, the patient answers, anyone else is Other.
func positionalFallback(i int) transcript.Role {
	switch i {
	case 0:
		return transcript.RoleDoctor
	case 1:
		return transcript.RolePatient
	default:
		return transcript.RoleOther
	}
}
