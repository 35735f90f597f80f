package fetcher

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	model "todo-list.com/todo-list/internal/models"
)

const feedSchemaURL = "todo-feed.schema.json"

const feedSchemaJSON = `{
	"type": "object",
	"required": ["todos", "total"],
	"properties": {
		"todos": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "todo", "completed"],
				"properties": {
					"id": {"type": "integer", "minimum": -32768, "maximum": 32767},
					"todo": {"type": "string", "minLength": 1},
					"completed": {"type": "boolean"},
					"description": {"type": ["string", "null"]},
					"creation_date": {"type": ["string", "null"]}
				}
			}
		},
		"total": {"type": "integer", "minimum": 0}
	}
}`

var feedSchema = jsonschema.MustCompileString(feedSchemaURL, feedSchemaJSON)

// dateLayouts are tried in order for creation_date values.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/06",
}

type feedPage struct {
	Todos []feedTodo  `json:"todos"`
	Total json.Number `json:"total"`
}

// Numbers are decoded as json.Number so integral floats such as 3.0,
// which the schema accepts as integers, still map onto int fields.
type feedTodo struct {
	ID           json.Number `json:"id"`
	Todo         string      `json:"todo"`
	Completed    bool        `json:"completed"`
	Description  *string     `json:"description"`
	CreationDate *string     `json:"creation_date"`
}

// decodePage validates body against the feed schema and maps it to tasks.
func decodePage(body []byte) ([]model.Task, int, error) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, 0, fmt.Errorf("decode feed: %w", err)
	}

	if err := feedSchema.Validate(doc); err != nil {
		return nil, 0, fmt.Errorf("feed does not match schema: %w", err)
	}

	var page feedPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, 0, fmt.Errorf("decode feed: %w", err)
	}

	total, err := wholeNumber(page.Total, 0, math.MaxInt32)
	if err != nil {
		return nil, 0, fmt.Errorf("feed total: %w", err)
	}

	tasks := make([]model.Task, 0, len(page.Todos))
	for _, item := range page.Todos {
		task, err := item.toTask()
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}

	return tasks, int(total), nil
}

func (f feedTodo) toTask() (model.Task, error) {
	id, err := wholeNumber(f.ID, math.MinInt16, math.MaxInt16)
	if err != nil {
		return model.Task{}, fmt.Errorf("task id: %w", err)
	}

	task := model.Task{
		ID:              int16(id),
		Title:           f.Todo,
		DescriptionText: f.Description,
		IsCompleted:     f.Completed,
	}

	if f.CreationDate != nil {
		date, err := ParseDate(*f.CreationDate)
		if err != nil {
			return model.Task{}, fmt.Errorf("task %d: %w", id, err)
		}
		task.CreationDate = date
	}

	return task, nil
}

func wholeNumber(n json.Number, lo, hi int64) (int64, error) {
	if i, err := n.Int64(); err == nil {
		if i < lo || i > hi {
			return 0, fmt.Errorf("%s out of range", n)
		}
		return i, nil
	}

	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < float64(lo) || f > float64(hi) {
		return 0, fmt.Errorf("%q is not an integer in range", n.String())
	}
	return int64(f), nil
}

// ParseDate accepts RFC 3339, a bare date, or the dd/MM/yy display
// format. An empty string is an unset date, not an error.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}

	return nil, fmt.Errorf("unrecognised date %q", s)
}
