package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/model"
)

// Insert stores a caption row for an object key. Duplicate keys fail: object
// keys are never reused, so a duplicate means a programming error upstream.
func (c *Client) Insert(ctx context.Context, objectKey, message string, at time.Time) error {
	row := model.FileMessage{
		ObjectKey: objectKey,
		Message:   message,
		CreatedAt: at,
	}

	if err := c.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert caption for %s: %w", objectKey, err)
	}

	return nil
}

// MessageFor returns the caption for one object key, empty when absent.
func (c *Client) MessageFor(ctx context.Context, objectKey string) (string, error) {
	var row model.FileMessage

	err := c.WithContext(ctx).Where("object_key = ?", objectKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("load caption for %s: %w", objectKey, err)
	}

	return row.Message, nil
}

// AllMessages returns every caption keyed by object key, for joining against
// a blob listing.
func (c *Client) AllMessages(ctx context.Context) (map[string]string, error) {
	var rows []model.FileMessage

	if err := c.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load captions: %w", err)
	}

	messages := make(map[string]string, len(rows))
	for _, row := range rows {
		messages[row.ObjectKey] = row.Message
	}

	return messages, nil
}
