package admin

import (
	"net/url"
	"strconv"
	"time"

	"github.com/go-faster/errors"
)

var errBadRequest = errors.New("bad request")

type filterOption struct {
	Label  string
	URL    string
	Active bool
}

type filterGroup struct {
	Name    string
	Options []filterOption
}

type choice struct {
	Label string
	Value string
}

var (
	yesNoChoices = []choice{
		{Label: "All"},
		{Label: "Yes", Value: "true"},
		{Label: "No", Value: "false"},
	}
	periodChoices = []choice{
		{Label: "Any date"},
		{Label: "Today", Value: "today"},
		{Label: "Past 7 days", Value: "week"},
		{Label: "This month", Value: "month"},
		{Label: "This year", Value: "year"},
	}
)

// newFilterGroup links every choice to the current query with param set to
// the choice value. An empty value removes the parameter.
func newFilterGroup(name, param string, query url.Values, choices []choice) filterGroup {
	current := query.Get(param)
	g := filterGroup{Name: name, Options: make([]filterOption, 0, len(choices))}
	for _, c := range choices {
		q := url.Values{}
		for k, v := range query {
			if k != "saved" {
				q[k] = v
			}
		}
		if c.Value == "" {
			q.Del(param)
		} else {
			q.Set(param, c.Value)
		}
		link := "?"
		if enc := q.Encode(); enc != "" {
			link += enc
		}
		g.Options = append(g.Options, filterOption{
			Label:  c.Label,
			URL:    link,
			Active: c.Value == current,
		})
	}
	return g
}

// parseBool reads a yes/no filter. The parameter being absent yields nil.
func parseBool(query url.Values, param string) (*bool, error) {
	v := query.Get(param)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.Wrapf(errBadRequest, "%s=%q", param, v)
	}
	return &b, nil
}

// parsePeriod returns the start of the named period containing now. The
// parameter being absent yields the zero time.
func parsePeriod(query url.Values, param string, now time.Time) (time.Time, error) {
	v := query.Get(param)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch v {
	case "":
		return time.Time{}, nil
	case "today":
		return today, nil
	case "week":
		return today.AddDate(0, 0, -7), nil
	case "month":
		return today.AddDate(0, 0, 1-today.Day()), nil
	case "year":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, errors.Wrapf(errBadRequest, "%s=%q", param, v)
	}
}

// parseID parses a positive record id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(errBadRequest, "invalid id %q", s)
	}
	return id, nil
}
