package activity

// Summarize collapses a snapshot into the animation and label to display.
// The label is measured against width minus the animation glyph. An empty
// snapshot yields (AnimationNone, nil).
func Summarize(snap Snapshot, width int, theme Theme, phrases Phrases) (Animation, *Label) {
	acts := snap.Unique()
	if len(acts) == 0 {
		return AnimationNone, nil
	}

	anim, text := compose(acts, phrases)
	return anim, NewLabel(text, width-GlyphWidth, theme.Text)
}

func compose(acts []ParticipantActivity, phrases Phrases) (Animation, string) {
	first := acts[0]
	count := len(acts)

	if count == 1 {
		anim := AnimationFor(first.Kind)
		if first.Participant.Direct {
			return anim, phrases.Phrase(userPhrase(first.Kind), 1)
		}
		return anim, first.Participant.Name
	}

	// Uniform typing is not treated as homogeneous; it goes through the
	// name list / generic count branch below.
	if homogeneous(acts) {
		return AnimationFor(first.Kind), phrases.Phrase(multiPhrase(first.Kind), count)
	}

	if count > 2 {
		return AnimationText, phrases.Phrase(KeyMultiTyping, count)
	}
	sep := phrases.Phrase(KeyNameSeparator, count)
	return AnimationText, acts[0].Participant.Name + sep + acts[1].Participant.Name
}

func homogeneous(acts []ParticipantActivity) bool {
	kind := acts[0].Kind
	if kind == TypingText {
		return false
	}
	for _, a := range acts[1:] {
		if a.Kind != kind {
			return false
		}
	}
	return true
}
