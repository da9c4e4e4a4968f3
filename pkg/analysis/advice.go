package analysis

// adviceBundles are rotated deterministically per username so repeat
// runs for the same account give the same advice.
var adviceBundles = [][]string{
	{
		"Post 3–4x/week consistently.",
		"Reply to comments in first hour.",
		"Use fewer but relevant hashtags.",
	},
	{
		"Try Reels with a strong hook.",
		"Ask a question in caption.",
		"Collaborate with similar creators.",
	},
	{
		"Focus on your top 2 content pillars.",
		"Test two posting times.",
		"Double down on best format.",
	},
}

// Advice returns the advice bundle for a username. The bundle index is
// the sum of the username's bytes modulo the bundle count.
func Advice(username string) []string {
	sum := 0
	for _, b := range []byte(username) {
		sum += int(b)
	}
	bundle := adviceBundles[sum%len(adviceBundles)]
	out := make([]string, len(bundle))
	copy(out, bundle)
	return out
}
