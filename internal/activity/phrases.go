package activity

// PhraseKey names a localized phrase.
type PhraseKey string

// Phrases used when exactly one participant is active in a one-to-one chat.
const (
	KeyUserTyping         PhraseKey = "activity.user.typing"
	KeyUserRecordingAudio PhraseKey = "activity.user.recording_audio"
	KeyUserRecordingVideo PhraseKey = "activity.user.recording_video"
	KeyUserSendingFile    PhraseKey = "activity.user.sending_file"
	KeyUserSendingPhoto   PhraseKey = "activity.user.sending_photo"
	KeyUserSendingVideo   PhraseKey = "activity.user.sending_video"
)

// Count-parameterized phrases used when several participants are active.
const (
	KeyMultiTyping         PhraseKey = "activity.multi.typing"
	KeyMultiRecordingAudio PhraseKey = "activity.multi.recording_audio"
	KeyMultiRecordingVideo PhraseKey = "activity.multi.recording_video"
	KeyMultiSendingFile    PhraseKey = "activity.multi.sending_file"
	KeyMultiSendingPhoto   PhraseKey = "activity.multi.sending_photo"
	KeyMultiSendingVideo   PhraseKey = "activity.multi.sending_video"
)

// KeyNameSeparator joins two display names ("Ana, Bruno").
const KeyNameSeparator PhraseKey = "activity.names.separator"

// Keys lists every phrase the summarizer may ask for.
var Keys = []PhraseKey{
	KeyUserTyping,
	KeyUserRecordingAudio,
	KeyUserRecordingVideo,
	KeyUserSendingFile,
	KeyUserSendingPhoto,
	KeyUserSendingVideo,
	KeyMultiTyping,
	KeyMultiRecordingAudio,
	KeyMultiRecordingVideo,
	KeyMultiSendingFile,
	KeyMultiSendingPhoto,
	KeyMultiSendingVideo,
	KeyNameSeparator,
}

// Phrases resolves a phrase key to localized text. count selects the plural
// form and is ignored by phrases that take no count.
type Phrases interface {
	Phrase(key PhraseKey, count int) string
}

func userPhrase(k Kind) PhraseKey {
	switch k {
	case RecordingVoice:
		return KeyUserRecordingAudio
	case RecordingInstantVideo:
		return KeyUserRecordingVideo
	case UploadingFile:
		return KeyUserSendingFile
	case UploadingPhoto:
		return KeyUserSendingPhoto
	case UploadingVideo:
		return KeyUserSendingVideo
	default:
		return KeyUserTyping
	}
}

func multiPhrase(k Kind) PhraseKey {
	switch k {
	case RecordingVoice:
		return KeyMultiRecordingAudio
	case RecordingInstantVideo:
		return KeyMultiRecordingVideo
	case UploadingFile:
		return KeyMultiSendingFile
	case UploadingPhoto:
		return KeyMultiSendingPhoto
	case UploadingVideo:
		return KeyMultiSendingVideo
	default:
		// Several participants all doing something unrecognized still get
		// a counted label rather than an empty one.
		return KeyMultiTyping
	}
}
