// internal/app/features/onboarding/steps.go
package onboarding

import "cheermate/internal/domain/models"

// totalSteps covers credentials, identity, and one step per personality
// category.
const totalSteps = 2 + models.SelectionCount

// Category is one personality question of the wizard. The codes are part of
// the registration payload and must stay stable.
type Category struct {
	Code    string
	Title   string
	Options []string
}

// categories in wizard order; the 1-based position doubles as the selection
// rank.
var categories = [models.SelectionCount]Category{
	{
		Code:    "ENERGY",
		Title:   "모임에서 나는 어떤 편인가요?",
		Options: []string{"활발한", "조용한", "차분한", "적극적인"},
	},
	{
		Code:    "WARMTH",
		Title:   "사람을 대할 때 나는?",
		Options: []string{"친근한", "진지한", "다정한", "신중한"},
	},
	{
		Code:    "HUMOR",
		Title:   "대화할 때 나는?",
		Options: []string{"유머러스한", "재치있는", "담백한", "진중한"},
	},
	{
		Code:    "DILIGENCE",
		Title:   "일을 맡으면 나는?",
		Options: []string{"책임감 있는", "성실한", "꼼꼼한", "자유로운"},
	},
	{
		Code:    "THINKING",
		Title:   "생각하는 방식은?",
		Options: []string{"창의적인", "논리적인", "현실적인", "감성적인"},
	},
}

// stepSegments addresses every step by a stable URL segment.
var stepSegments = []string{
	"email-password",
	"name-gender",
	"personality-1",
	"personality-2",
	"personality-3",
	"personality-4",
	"personality-5",
}

// stepNumber maps a URL segment to its 1-based step, or 0 when unknown.
func stepNumber(segment string) int {
	for i, s := range stepSegments {
		if s == segment {
			return i + 1
		}
	}
	return 0
}

// categoryFor returns the category behind a personality step (steps 3..7)
// plus its 1-based rank.
func categoryFor(step int) (Category, int) {
	rank := step - 2
	return categories[rank-1], rank
}

func segmentFor(step int) string {
	return stepSegments[step-1]
}
