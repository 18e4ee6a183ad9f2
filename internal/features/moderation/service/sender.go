package service

import (
	"context"

	"school-report-bot/internal/platform/telegram"
)

// Sender is the outbound transport boundary. *telegram.Client satisfies it;
// tests substitute a fake.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb *telegram.ReplyKeyboardMarkup) error
	SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error
	SendVideo(ctx context.Context, chatID int64, fileID, caption string) error
	SendDocument(ctx context.Context, chatID int64, fileID, caption string) error
}

type attachmentKind int

const (
	attachmentPhoto attachmentKind = iota
	attachmentVideo
	attachmentDocument
)

// Attachment is a single media reference extracted from an inbound message.
type Attachment struct {
	kind   attachmentKind
	FileID string
}

// AttachmentOf picks the message's forwardable attachment, photo first,
// then video, then document. For photos the largest size is used.
func AttachmentOf(msg *telegram.Message) *Attachment {
	switch {
	case len(msg.Photo) > 0:
		return &Attachment{kind: attachmentPhoto, FileID: msg.Photo[len(msg.Photo)-1].FileID}
	case msg.Video != nil:
		return &Attachment{kind: attachmentVideo, FileID: msg.Video.FileID}
	case msg.Document != nil:
		return &Attachment{kind: attachmentDocument, FileID: msg.Document.FileID}
	default:
		return nil
	}
}

// send delivers the attachment with the given caption via the matching
// transport call.
func (a *Attachment) send(ctx context.Context, s Sender, chatID int64, caption string) error {
	switch a.kind {
	case attachmentVideo:
		return s.SendVideo(ctx, chatID, a.FileID, caption)
	case attachmentDocument:
		return s.SendDocument(ctx, chatID, a.FileID, caption)
	default:
		return s.SendPhoto(ctx, chatID, a.FileID, caption)
	}
}

// placeholder returns the empty-body caption placeholder for the
// attachment kind.
func (a *Attachment) placeholder() string {
	switch a.kind {
	case attachmentVideo:
		return placeholderVideoNoCaption
	case attachmentDocument:
		return placeholderDocNoCaption
	default:
		return placeholderNoText
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
