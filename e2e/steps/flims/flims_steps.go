package flims

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string, body []byte) error
	PUT(path string, body []byte) error
	StatusCode() int
	DecodeBody(v any) error
	Remember(key string, n int)
	Recall(key string) (int, bool)
}

type flim struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

const countKey = "flim_count"

// RegisterSteps registers flim collection step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &flimSteps{tc: tc}

	ctx.Step(`^I remember how many flims exist$`, steps.rememberCount)
	ctx.Step(`^I create a flim titled "([^"]*)" described as "([^"]*)"$`, steps.createFlim)
	ctx.Step(`^I update flim (\d+) with title "([^"]*)" and description "([^"]*)"$`, steps.updateFlim)

	ctx.Step(`^the flim list should have grown by (\d+)$`, steps.listGrewBy)
	ctx.Step(`^the last flim should have title "([^"]*)" and description "([^"]*)"$`, steps.lastFlimShouldBe)
	ctx.Step(`^flim (\d+) should have title "([^"]*)" and description "([^"]*)"$`, steps.flimShouldBe)
}

type flimSteps struct {
	tc TestContext
}

func (s *flimSteps) list() ([]flim, error) {
	var flims []flim
	if err := s.tc.DecodeBody(&flims); err != nil {
		return nil, err
	}
	return flims, nil
}

func (s *flimSteps) rememberCount(ctx context.Context) error {
	if err := s.tc.GET("/flims"); err != nil {
		return err
	}
	flims, err := s.list()
	if err != nil {
		return err
	}
	s.tc.Remember(countKey, len(flims))
	return nil
}

func (s *flimSteps) createFlim(ctx context.Context, title, description string) error {
	body, err := json.Marshal(map[string]string{"title": title, "description": description})
	if err != nil {
		return err
	}
	return s.tc.POST("/flims", body)
}

func (s *flimSteps) updateFlim(ctx context.Context, id int, title, description string) error {
	body, err := json.Marshal(map[string]any{"id": id, "title": title, "description": description})
	if err != nil {
		return err
	}
	return s.tc.PUT("/flims", body)
}

func (s *flimSteps) listGrewBy(ctx context.Context, n int) error {
	before, ok := s.tc.Recall(countKey)
	if !ok {
		return fmt.Errorf("flim count was not remembered")
	}
	flims, err := s.list()
	if err != nil {
		return err
	}
	if len(flims) != before+n {
		return fmt.Errorf("expected %d flims, got %d", before+n, len(flims))
	}
	return nil
}

func (s *flimSteps) lastFlimShouldBe(ctx context.Context, title, description string) error {
	flims, err := s.list()
	if err != nil {
		return err
	}
	if len(flims) == 0 {
		return fmt.Errorf("flim list is empty")
	}
	last := flims[len(flims)-1]
	if last.ID != len(flims) {
		return fmt.Errorf("expected last id %d, got %d", len(flims), last.ID)
	}
	if last.Title != title || last.Description != description {
		return fmt.Errorf("expected %q/%q, got %q/%q", title, description, last.Title, last.Description)
	}
	return nil
}

func (s *flimSteps) flimShouldBe(ctx context.Context, id int, title, description string) error {
	flims, err := s.list()
	if err != nil {
		return err
	}
	for _, f := range flims {
		if f.ID == id {
			if f.Title != title || f.Description != description {
				return fmt.Errorf("flim %d: expected %q/%q, got %q/%q", id, title, description, f.Title, f.Description)
			}
			return nil
		}
	}
	return fmt.Errorf("flim %d not in response", id)
}
