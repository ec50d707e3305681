package activity

// Kind is what a participant is currently doing in a chat.
type Kind string

const (
	TypingText            Kind = "typing_text"
	RecordingVoice        Kind = "recording_voice"
	RecordingInstantVideo Kind = "recording_instant_video"
	UploadingFile         Kind = "uploading_file"
	UploadingPhoto        Kind = "uploading_photo"
	UploadingVideo        Kind = "uploading_video"
	Other                 Kind = "other"
)

// Kinds lists every known kind, Other last.
var Kinds = []Kind{
	TypingText,
	RecordingVoice,
	RecordingInstantVideo,
	UploadingFile,
	UploadingPhoto,
	UploadingVideo,
	Other,
}

// ParseKind returns the Kind named by s. Unknown or empty names map to Other.
func ParseKind(s string) Kind {
	for _, k := range Kinds {
		if string(k) == s {
			return k
		}
	}
	return Other
}

// Animation selects which looping animation plays next to the status label.
type Animation int

const (
	AnimationNone Animation = iota
	AnimationText
	AnimationUploading
	AnimationRecording
)

func (a Animation) String() string {
	switch a {
	case AnimationText:
		return "text"
	case AnimationUploading:
		return "uploading"
	case AnimationRecording:
		return "recording"
	default:
		return "none"
	}
}

// AnimationFor maps an activity kind to its animation.
func AnimationFor(k Kind) Animation {
	switch k {
	case RecordingVoice, RecordingInstantVideo:
		return AnimationRecording
	case UploadingFile, UploadingPhoto, UploadingVideo:
		return AnimationUploading
	default:
		return AnimationText
	}
}

// Participant identifies who is active. ID is used for deduplication.
// Direct is true when the conversation is one-to-one rather than a group.
type Participant struct {
	ID     string
	Name   string
	Direct bool
}

// ParticipantActivity pairs a participant with what they are doing.
type ParticipantActivity struct {
	Participant Participant
	Kind        Kind
}

// Snapshot is the complete set of active participants for one chat.
// A snapshot supersedes any previous snapshot for the same chat.
type Snapshot struct {
	ChatID     string
	Activities []ParticipantActivity
}

// Empty reports whether nobody is active.
func (s Snapshot) Empty() bool {
	return len(s.Activities) == 0
}

// Unique returns the activities with duplicate participant IDs removed.
// The first occurrence of each participant wins and order is preserved.
func (s Snapshot) Unique() []ParticipantActivity {
	if len(s.Activities) < 2 {
		return s.Activities
	}
	seen := make(map[string]struct{}, len(s.Activities))
	out := make([]ParticipantActivity, 0, len(s.Activities))
	for _, a := range s.Activities {
		if _, ok := seen[a.Participant.ID]; ok {
			continue
		}
		seen[a.Participant.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}
