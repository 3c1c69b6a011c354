package model

import "time"

// Item is a single work entry. Items form a strict containment hierarchy
// (Product > Epic > Task > Subtask, with Subtask self-nesting); Milestone
// sits outside the ladder and may attach anywhere.
type Item struct {
	ID     uint64  `json:"id"`
	Title  string  `json:"title"`
	Kind   Kind    `json:"kind"`
	Status Status  `json:"status"`
	Parent *uint64 `json:"parent,omitempty"`

	Summary      string   `json:"summary,omitempty"`
	Description  string   `json:"description,omitempty"`
	UserStory    string   `json:"userStory,omitempty"`
	Requirements string   `json:"requirements,omitempty"`
	IssueLink    string   `json:"issueLink,omitempty"`
	PRLink       string   `json:"prLink,omitempty"`
	Artifacts    []string `json:"artifacts,omitempty"`

	Project string   `json:"project,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Due     Date     `json:"due,omitempty"`

	Priority     Priority     `json:"priority,omitempty"`
	Urgency      Urgency      `json:"urgency,omitempty"`
	ProcessStage ProcessStage `json:"processStage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Template is a named bundle of optional defaults applied at item creation.
// It never carries id/parent: those are decided per item.
type Template struct {
	Name                string       `json:"name"`
	TitleTemplate       string       `json:"titleTemplate,omitempty"`
	DescriptionTemplate string       `json:"descriptionTemplate,omitempty"`
	Project             string       `json:"project,omitempty"`
	Tags                []string     `json:"tags,omitempty"`
	Kind                Kind         `json:"kind,omitempty"`
	Status              Status       `json:"status,omitempty"`
	Priority            Priority     `json:"priority,omitempty"`
	Urgency             Urgency      `json:"urgency,omitempty"`
	ProcessStage        ProcessStage `json:"processStage,omitempty"`
}

// HasTag reports whether the item carries the (already normalized) tag.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
