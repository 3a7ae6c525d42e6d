package conversation

// DefaultSuggestions are the predefined questions offered under the conversation.
var DefaultSuggestions = []string{
	"Who is Savina Atai?",
	"What is face yoga?",
	"Where does face yoga come from?",
}

// Suggestions is a fixed, ordered set of suggested-question labels.
type Suggestions []string

// Pick returns the submit event for the i-th suggestion (0-based).
// ok is false when i is out of range.
func (s Suggestions) Pick(i int) (Submit, bool) {
	if i < 0 || i >= len(s) {
		return Submit{}, false
	}
	return Submit{Text: s[i]}, true
}
