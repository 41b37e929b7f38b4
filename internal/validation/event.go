// Package validation checks and normalizes event and booking payloads.
// Every function is pure: on failure the input is left untouched and a
// domain.ValidationErrors listing every violation is returned.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"eventcatalog/internal/domain"
	"eventcatalog/internal/slug"
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxOverviewLength    = 500
)

const dateLayout = "2006-01-02"

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9]) (AM|PM)$`)
)

// ValidateEvent validates in and returns the normalized event. ID, slug and
// timestamps are left for the caller to assign.
func ValidateEvent(in domain.EventInput) (*domain.Event, error) {
	var errs domain.ValidationErrors

	title := requiredText(&errs, "title", in.Title, MaxTitleLength)
	if title != "" && slug.Derive(title) == "" {
		errs.Add("title", "must contain at least one letter or digit")
	}
	description := requiredText(&errs, "description", in.Description, MaxDescriptionLength)
	overview := requiredText(&errs, "overview", in.Overview, MaxOverviewLength)
	image := requiredText(&errs, "image", in.Image, 0)
	venue := requiredText(&errs, "venue", in.Venue, 0)
	location := requiredText(&errs, "location", in.Location, 0)
	audience := requiredText(&errs, "audience", in.Audience, 0)
	organizer := requiredText(&errs, "organizer", in.Organizer, 0)

	date, err := NormalizeDate(in.Date)
	if err != nil {
		errs.Add("date", err.Error())
	}
	tm, err := NormalizeTime(in.Time)
	if err != nil {
		errs.Add("time", err.Error())
	}

	mode, ok := domain.ParseEventMode(strings.TrimSpace(in.Mode))
	if !ok {
		if strings.TrimSpace(in.Mode) == "" {
			errs.Add("mode", "is required")
		} else {
			errs.Add("mode", "must be either online, offline, or hybrid")
		}
	}

	agenda := nonEmptyItems(in.Agenda, false)
	if len(agenda) == 0 {
		errs.Add("agenda", "must contain at least one item")
	}
	tags := nonEmptyItems(in.Tags, true)
	if len(tags) == 0 {
		errs.Add("tags", "must contain at least one item")
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return &domain.Event{
		Title:       title,
		Description: description,
		Overview:    overview,
		Image:       image,
		Venue:       venue,
		Location:    location,
		Date:        date,
		Time:        tm,
		Mode:        mode,
		Audience:    audience,
		Agenda:      agenda,
		Organizer:   organizer,
		Tags:        tags,
	}, nil
}

// NormalizeDate checks that s is a YYYY-MM-DD calendar date and returns it in that form.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("is required")
	}
	if !datePattern.MatchString(s) {
		return "", fmt.Errorf("must be in ISO format (YYYY-MM-DD)")
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("is not a valid calendar date")
	}
	return d.Format(dateLayout), nil
}

// NormalizeTime checks that s is a 12-hour HH:MM AM|PM time and returns it with a two-digit hour.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("is required")
	}
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("must be in format HH:MM AM/PM")
	}
	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return hour + ":" + m[2] + " " + m[3], nil
}

func requiredText(errs *domain.ValidationErrors, field, value string, max int) string {
	v := strings.TrimSpace(value)
	if v == "" {
		errs.Add(field, "is required")
		return ""
	}
	if max > 0 && utf8.RuneCountInString(v) > max {
		errs.Add(field, fmt.Sprintf("cannot exceed %d characters", max))
		return ""
	}
	return v
}

// nonEmptyItems trims every item and drops the empty ones. With dedupe set,
// later repeats of an item are dropped as well.
func nonEmptyItems(items []string, dedupe bool) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if dedupe {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}
