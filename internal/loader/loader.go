package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ecowatch/notice-api/internal/model"
	apperrors "github.com/ecowatch/notice-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// Loader parses and validates the scraped feed document and the
// optional saved user-preferences overlay. Validation is strict: a
// malformed record fails the whole load with an error naming the record
// and field, no partial coercion.
type Loader struct {
	validate *validator.Validate
}

func New() *Loader {
	return &Loader{validate: validator.New()}
}

// LoadFeed reads and parses the feed file.
func (l *Loader) LoadFeed(path string) (*model.Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()
	return l.ParseFeed(f)
}

// ParseFeed decodes a feed document. Older scraper output named the
// record array "policies"; both names are accepted, "notifications"
// wins when both are present.
func (l *Loader) ParseFeed(r io.Reader) (*model.Feed, error) {
	var feed model.Feed
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if len(feed.Notifications) == 0 && len(feed.Policies) > 0 {
		feed.Notifications = feed.Policies
	}
	feed.Policies = nil

	for i := range feed.Notifications {
		n := &feed.Notifications[i]
		if n.ID == "" {
			// Records scraped before ids were stable arrive without one.
			n.ID = uuid.New().String()
		}
		if n.Tags == nil {
			n.Tags = []string{}
		}
		if n.Keywords == nil {
			n.Keywords = []string{}
		}
		if err := l.validateRecord(n); err != nil {
			return nil, err
		}
	}
	return &feed, nil
}

func (l *Loader) validateRecord(n *model.Notification) error {
	if err := l.validate.Struct(n); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return apperrors.Validation(n.ID, errs[0].Field(), fmt.Sprintf("failed %q", errs[0].Tag()))
		}
		return fmt.Errorf("validate record %q: %w", n.ID, err)
	}
	if !n.Category.Valid() {
		return apperrors.Validation(n.ID, "category", fmt.Sprintf("unknown category %q", n.Category))
	}
	if _, err := time.Parse(dateLayout, n.PublishDate); err != nil {
		return apperrors.Validation(n.ID, "publishDate", fmt.Sprintf("not a calendar date: %q", n.PublishDate))
	}
	if n.Deadline != "" {
		if _, err := time.Parse(dateLayout, n.Deadline); err != nil {
			return apperrors.Validation(n.ID, "deadline", fmt.Sprintf("not a calendar date: %q", n.Deadline))
		}
	}
	return nil
}

// LoadPreferences reads a saved user-state overlay. A missing file is
// not an error; the dashboard simply starts with pristine records.
func (l *Loader) LoadPreferences(path string) (*model.Preferences, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open preferences: %w", err)
	}
	defer f.Close()

	var prefs model.Preferences
	if err := json.NewDecoder(f).Decode(&prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &prefs, nil
}

// ApplyPreferences merges the overlay onto matching records in place.
// Overlay values win for the user-authored fields: favorites are set,
// notes replaced, tags appended without duplicating ones already on the
// record. Ids naming no record are ignored.
func ApplyPreferences(records []model.Notification, prefs *model.Preferences) {
	if prefs == nil {
		return
	}
	favorites := make(map[string]bool, len(prefs.FavoriteIDs))
	for _, id := range prefs.FavoriteIDs {
		favorites[id] = true
	}
	for i := range records {
		n := &records[i]
		if favorites[n.ID] {
			n.IsFavorited = true
		}
		if note, ok := prefs.Notes[n.ID]; ok {
			n.Notes = note
		}
		for _, tag := range prefs.Tags[n.ID] {
			if tag != "" && !n.HasTag(tag) {
				n.Tags = append(n.Tags, tag)
			}
		}
	}
}
