package service

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/boleta-api/internal/models"
)

// Status tags glued onto the serialized payload. The tag is checked only
// at position 0 of the content string, so payload text can never be
// misread as a status. PENDING has no tag.
const (
	tagConfirmed = "CONFIRMED"
	tagRejected  = "REJECTED"
)

// ContentCodec translates between the certificate content string and the
// (status, payload) pair.
type ContentCodec struct {
	logger *zap.Logger
}

// NewContentCodec builds a codec.
func NewContentCodec(logger *zap.Logger) *ContentCodec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentCodec{logger: logger}
}

// Decode strips at most one leading status tag and parses the remainder
// as JSON. A parse failure yields an empty payload and a logged warning;
// it is never surfaced to the editor, who continues with a blank rubric.
func (c *ContentCodec) Decode(content string) (models.CertificateStatus, *models.BoletaPayload) {
	status := models.StatusPending
	rest := content
	if strings.HasPrefix(rest, tagConfirmed) {
		status = models.StatusConfirmed
		rest = rest[len(tagConfirmed):]
	} else if strings.HasPrefix(rest, tagRejected) {
		status = models.StatusRejected
		rest = rest[len(tagRejected):]
	}

	payload := &models.BoletaPayload{}
	if strings.TrimSpace(rest) == "" {
		return status, payload
	}
	if err := json.Unmarshal([]byte(rest), payload); err != nil {
		c.logger.Warn("boleta content is not valid JSON, editing continues with a blank payload",
			zap.Error(err),
			zap.Int("content_length", len(content)),
		)
		return status, &models.BoletaPayload{}
	}
	return status, payload
}

// Encode serializes the payload and prepends the tag for CONFIRMED or
// REJECTED. The payload always follows the tag immediately.
func (c *ContentCodec) Encode(status models.CertificateStatus, payload *models.BoletaPayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	switch status {
	case models.StatusConfirmed:
		return tagConfirmed + string(raw), nil
	case models.StatusRejected:
		return tagRejected + string(raw), nil
	default:
		return string(raw), nil
	}
}
