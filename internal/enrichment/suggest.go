package enrichment

import (
	"context"
	"regexp"
	"strings"

	"github.com/fitcrm/fitcrm/internal/models"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Suggest fetches a batch and distills it into the display set for the
// detail view: items with a name, picked uniformly without replacement,
// descriptions stripped of markup and truncated. Any failure or an empty
// usable batch flips the set to unavailable instead of erroring.
func (c *Client) Suggest(ctx context.Context) models.SuggestionSet {
	batch, err := c.FetchBatch(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Exercise fetch failed")
		return models.SuggestionSet{Unavailable: true}
	}

	usable := make([]models.Exercise, 0, len(batch))
	for _, ex := range batch {
		if strings.TrimSpace(ex.Name) != "" {
			usable = append(usable, ex)
		}
	}
	if len(usable) == 0 {
		c.logger.Warn("Exercise batch had no usable items")
		return models.SuggestionSet{Unavailable: true}
	}

	picks := c.pickRandom(usable, c.pickCount)

	items := make([]models.Suggestion, 0, len(picks))
	for _, ex := range picks {
		desc, truncated := c.truncate(stripHTML(ex.Description))
		items = append(items, models.Suggestion{
			Name:        ex.Name,
			Description: desc,
			Truncated:   truncated,
		})
	}

	return models.SuggestionSet{Items: items}
}

// pickRandom selects up to n items uniformly without replacement.
func (c *Client) pickRandom(pool []models.Exercise, n int) []models.Exercise {
	remaining := make([]models.Exercise, len(pool))
	copy(remaining, pool)

	out := make([]models.Exercise, 0, n)
	for len(out) < n && len(remaining) > 0 {
		i := c.intn(len(remaining))
		out = append(out, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return out
}

// truncate limits a description to the display length, appending an
// ellipsis when anything was cut. Rune-safe.
func (c *Client) truncate(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) <= c.truncateAt {
		return s, false
	}
	return string(runes[:c.truncateAt]) + "…", true
}

// stripHTML drops markup tags from provider descriptions.
func stripHTML(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}
