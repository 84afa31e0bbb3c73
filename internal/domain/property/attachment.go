package property

import (
	"encoding/base64"
	"strings"

	"github.com/attcrm/backend/internal/domain/shared"
)

// Attachment is a document embedded in a unit record, such as a passport scan
// or a signed contract. Data holds the base64 payload without a data-URL prefix.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size *int64 `json:"size"`
	Data string `json:"data"`
}

// AttachmentInput is an uploaded file as sent by the client
type AttachmentInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size *int64 `json:"size"`
	Data string `json:"data"`
}

// mergeAttachment replaces current outright. An explicit null clears the file,
// an omitted field keeps it, and an object with neither name nor data counts
// as omitted.
func mergeAttachment(current *Attachment, in shared.Optional[*AttachmentInput]) (*Attachment, error) {
	if !in.Set {
		return current, nil
	}
	if in.Value == nil {
		return nil, nil
	}
	return in.Value.normalize(current)
}

func (in *AttachmentInput) normalize(current *Attachment) (*Attachment, error) {
	name := strings.TrimSpace(in.Name)
	mime := strings.TrimSpace(in.Type)
	data := strings.TrimSpace(in.Data)

	if name == "" && data == "" {
		return current, nil
	}

	if header, payload, ok := splitDataURL(data); ok {
		data = payload
		if mime == "" {
			mime = header
		}
	}
	if data != "" {
		if _, err := base64.StdEncoding.DecodeString(data); err != nil {
			return nil, ErrAttachmentNotEncoded
		}
	}

	var size *int64
	if in.Size != nil {
		s := *in.Size
		size = &s
	}

	return &Attachment{
		Name: name,
		Type: mime,
		Size: size,
		Data: data,
	}, nil
}

// splitDataURL splits "data:<mime>;base64,<payload>"
func splitDataURL(s string) (mime, payload string, ok bool) {
	rest, found := strings.CutPrefix(s, "data:")
	if !found {
		return "", "", false
	}
	header, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", "", false
	}
	return mime, payload, true
}

func (a *Attachment) clone() *Attachment {
	if a == nil {
		return nil
	}
	c := *a
	if a.Size != nil {
		s := *a.Size
		c.Size = &s
	}
	return &c
}
