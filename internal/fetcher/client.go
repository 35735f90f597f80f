package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	apperrors "todo-list.com/todo-list/internal/errors"
	model "todo-list.com/todo-list/internal/models"
)

// maxFeedBytes bounds a single page read from the remote feed.
const maxFeedBytes = 8 << 20

// Client fetches the seed task feed over HTTP. With a positive page size
// it walks the feed with limit/skip until the reported total is reached.
type Client struct {
	http     *http.Client
	feedURL  string
	pageSize int
	logger   *log.Logger
}

func NewClient(feedURL string, timeout time.Duration, pageSize int, logger *log.Logger) *Client {
	return &Client{
		http:     &http.Client{Timeout: timeout},
		feedURL:  feedURL,
		pageSize: pageSize,
		logger:   logger,
	}
}

func (c *Client) FetchAll(ctx context.Context) (*model.TaskBatch, error) {
	if c.pageSize <= 0 {
		tasks, total, err := c.fetchPage(ctx, nil)
		if err != nil {
			return nil, err
		}
		return &model.TaskBatch{Tasks: tasks, Total: total}, nil
	}

	var (
		all   []model.Task
		total int
	)

	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(c.pageSize))
		query.Set("skip", strconv.Itoa(len(all)))

		tasks, pageTotal, err := c.fetchPage(ctx, query)
		if err != nil {
			return nil, err
		}

		total = pageTotal
		all = append(all, tasks...)

		c.logger.Debug("fetched feed page", "tasks", len(tasks), "collected", len(all), "total", total)

		if len(tasks) == 0 || len(all) >= total {
			break
		}
	}

	return &model.TaskBatch{Tasks: all, Total: total}, nil
}

func (c *Client) fetchPage(ctx context.Context, query url.Values) ([]model.Task, int, error) {
	target, err := url.Parse(c.feedURL)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid feed url: %v", apperrors.ErrFetchFailed, err)
	}

	if query != nil {
		q := target.Query()
		for k, v := range query {
			q[k] = v
		}
		target.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("%w: unexpected status %d", apperrors.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read body: %v", apperrors.ErrFetchFailed, err)
	}

	tasks, total, err := decodePage(body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
	}

	return tasks, total, nil
}
