package drafty

// Tag names an inline style or an entity type.
type Tag string

// Inline style tags.
const (
	TagStrong     Tag = "ST"
	TagEmphasized Tag = "EM"
	TagDeleted    Tag = "DL"
	TagCode       Tag = "CO"
	TagLineBreak  Tag = "BR"
	TagHidden     Tag = "HD"
	TagFormRow    Tag = "RW"
	TagForm       Tag = "FM"
	TagQuote      Tag = "QQ"
)

// Entity type tags.
const (
	TagLink       Tag = "LN"
	TagMention    Tag = "MN"
	TagHashtag    Tag = "HT"
	TagImage      Tag = "IM"
	TagAudio      Tag = "AU"
	TagVideo      Tag = "VD"
	TagAttachment Tag = "EX"
	TagButton     Tag = "BN"
	TagVideoCall  Tag = "VC"
)

// Void reports whether the tag may legitimately cover zero characters.
func (t Tag) Void() bool {
	return t == TagLineBreak || t == TagAttachment || t == TagHidden
}

// isEntity reports whether the tag names an entity type rather than an inline style.
func (t Tag) isEntity() bool {
	switch t {
	case TagLink, TagMention, TagHashtag, TagImage, TagAudio, TagVideo, TagAttachment, TagButton, TagVideoCall:
		return true
	}
	return false
}

// weight orders spans that share the same range: heavier spans become parents.
func (t Tag) weight() int {
	if t == TagQuote {
		return 1
	}
	return 0
}

// Form response attachments carry one of these MIME types.
const (
	MimeFormResponse = "text/x-drafty-fr"
	MimeJSON         = "application/json"
)

// IsFormResponseType reports whether mime identifies a form response payload.
func IsFormResponseType(mime any) bool {
	s, ok := mime.(string)
	return ok && (s == MimeFormResponse || s == MimeJSON)
}
