package domain

import "strings"

// ReactionContent is one of the emoji reactions GitHub accepts on an issue.
type ReactionContent string

const (
	ReactionUnknown    ReactionContent = ""
	ReactionThumbsUp   ReactionContent = "THUMBS_UP"
	ReactionThumbsDown ReactionContent = "THUMBS_DOWN"
	ReactionLaugh      ReactionContent = "LAUGH"
	ReactionHooray     ReactionContent = "HOORAY"
	ReactionConfused   ReactionContent = "CONFUSED"
	ReactionHeart      ReactionContent = "HEART"
	ReactionRocket     ReactionContent = "ROCKET"
	ReactionEyes       ReactionContent = "EYES"
)

var reactionEmoji = map[ReactionContent]string{
	ReactionThumbsUp:   "👍",
	ReactionThumbsDown: "👎",
	ReactionLaugh:      "😄",
	ReactionHooray:     "🎉",
	ReactionConfused:   "😕",
	ReactionHeart:      "❤️",
	ReactionRocket:     "🚀",
	ReactionEyes:       "👀",
}

// orderedReactions lists reactions in the order GitHub displays them.
var orderedReactions = []ReactionContent{
	ReactionThumbsUp,
	ReactionThumbsDown,
	ReactionLaugh,
	ReactionHooray,
	ReactionConfused,
	ReactionHeart,
	ReactionRocket,
	ReactionEyes,
}

// ParseReactionContent normalises and validates a reaction name.
// Accepts "hooray", " HOORAY ", and "thumbs-up" style spellings.
func ParseReactionContent(raw string) (ReactionContent, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	content := ReactionContent(normalized)
	if content == ReactionUnknown {
		return ReactionUnknown, invalidReactionError("blank")
	}
	if err := content.Validate(); err != nil {
		return ReactionUnknown, invalidReactionError(raw)
	}
	return content, nil
}

// Validate ensures the content is a reaction GitHub understands.
func (r ReactionContent) Validate() error {
	if _, ok := reactionEmoji[r]; !ok {
		return invalidReactionError(string(r))
	}
	return nil
}

// IsKnown reports whether the content is part of the supported reaction set.
func (r ReactionContent) IsKnown() bool {
	_, ok := reactionEmoji[r]
	return ok
}

// Emoji returns the glyph for the reaction, or the raw name for unknown values.
func (r ReactionContent) Emoji() string {
	if glyph, ok := reactionEmoji[r]; ok {
		return glyph
	}
	return string(r)
}

// AllReactions returns the supported reactions in display order.
func AllReactions() []ReactionContent {
	return append([]ReactionContent(nil), orderedReactions...)
}

// Next returns the reaction following r in display order, wrapping around.
func (r ReactionContent) Next() ReactionContent {
	for i, c := range orderedReactions {
		if c == r {
			return orderedReactions[(i+1)%len(orderedReactions)]
		}
	}
	return ReactionHooray
}
