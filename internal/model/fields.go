package model

import (
	"fmt"
	"sort"
	"strings"
)

type Kind string

const (
	KindProduct   Kind = "product"
	KindEpic      Kind = "epic"
	KindTask      Kind = "task"
	KindSubtask   Kind = "subtask"
	KindMilestone Kind = "milestone"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

type Priority string

const (
	PriorityMustHave   Priority = "must-have"
	PriorityNiceToHave Priority = "nice-to-have"
	PriorityCutFirst   Priority = "cut-first"
)

type Urgency string

const (
	UrgencyUrgentImportant       Urgency = "urgent-important"
	UrgencyUrgentNotImportant    Urgency = "urgent-not-important"
	UrgencyNotUrgentImportant    Urgency = "not-urgent-important"
	UrgencyNotUrgentNotImportant Urgency = "not-urgent-not-important"
)

type ProcessStage string

const (
	StageIdeation       ProcessStage = "ideation"
	StageDesign         ProcessStage = "design"
	StagePrototyping    ProcessStage = "prototyping"
	StageImplementation ProcessStage = "implementation"
	StageTesting        ProcessStage = "testing"
	StageRefinement     ProcessStage = "refinement"
	StageRelease        ProcessStage = "release"
)

// ladder is the fixed containment order. Milestone is deliberately absent:
// it attaches anywhere and cannot be promoted or demoted.
var ladder = []Kind{KindProduct, KindEpic, KindTask, KindSubtask}

// ValidChild reports whether child may nest directly under parent.
// Milestones are exempt and nest under any kind.
func ValidChild(parent, child Kind) bool {
	if child == KindMilestone {
		return true
	}
	switch {
	case parent == KindProduct && child == KindEpic:
		return true
	case parent == KindEpic && child == KindTask:
		return true
	case parent == KindTask && child == KindSubtask:
		return true
	case parent == KindSubtask && child == KindSubtask:
		return true
	}
	return false
}

// Above returns the kind one level up the ladder. Subtask promotes to Task.
func (k Kind) Above() (Kind, bool) {
	for i, l := range ladder {
		if l == k && i > 0 {
			return ladder[i-1], true
		}
	}
	return "", false
}

// Below returns the kind one level down the ladder. A Subtask demotes to a
// Subtask (it re-nests under another Subtask instead of changing kind).
func (k Kind) Below() (Kind, bool) {
	switch k {
	case KindSubtask:
		return KindSubtask, true
	case KindMilestone:
		return "", false
	}
	for i, l := range ladder {
		if l == k && i < len(ladder)-1 {
			return ladder[i+1], true
		}
	}
	return "", false
}

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindProduct:
		return KindProduct, nil
	case KindEpic:
		return KindEpic, nil
	case KindTask:
		return KindTask, nil
	case KindSubtask:
		return KindSubtask, nil
	case KindMilestone:
		return KindMilestone, nil
	}
	return "", fmt.Errorf("invalid kind: %q (expected product|epic|task|subtask|milestone)", s)
}

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusDone:
		return StatusDone, nil
	}
	return "", fmt.Errorf("invalid status: %q (expected open|in-progress|done)", s)
}

func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityMustHave:
		return PriorityMustHave, nil
	case PriorityNiceToHave:
		return PriorityNiceToHave, nil
	case PriorityCutFirst:
		return PriorityCutFirst, nil
	}
	return "", fmt.Errorf("invalid priority: %q (expected must-have|nice-to-have|cut-first)", s)
}

func ParseUrgency(s string) (Urgency, error) {
	switch Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case UrgencyUrgentImportant:
		return UrgencyUrgentImportant, nil
	case UrgencyUrgentNotImportant:
		return UrgencyUrgentNotImportant, nil
	case UrgencyNotUrgentImportant:
		return UrgencyNotUrgentImportant, nil
	case UrgencyNotUrgentNotImportant:
		return UrgencyNotUrgentNotImportant, nil
	}
	return "", fmt.Errorf("invalid urgency: %q", s)
}

func ParseProcessStage(s string) (ProcessStage, error) {
	switch ProcessStage(strings.ToLower(strings.TrimSpace(s))) {
	case StageIdeation:
		return StageIdeation, nil
	case StageDesign:
		return StageDesign, nil
	case StagePrototyping:
		return StagePrototyping, nil
	case StageImplementation:
		return StageImplementation, nil
	case StageTesting:
		return StageTesting, nil
	case StageRefinement:
		return StageRefinement, nil
	case StageRelease:
		return StageRelease, nil
	}
	return "", fmt.Errorf("invalid process stage: %q", s)
}

// Label returns the human display form ("Product", "In Progress", ...).
func (k Kind) Label() string {
	switch k {
	case KindProduct:
		return "Product"
	case KindEpic:
		return "Epic"
	case KindTask:
		return "Task"
	case KindSubtask:
		return "Subtask"
	case KindMilestone:
		return "Milestone"
	}
	return string(k)
}

func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "InProgress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

func (p Priority) Label() string {
	switch p {
	case PriorityMustHave:
		return "Must Have"
	case PriorityNiceToHave:
		return "Nice to Have"
	case PriorityCutFirst:
		return "Cut First"
	case "":
		return "-"
	}
	return string(p)
}

func (u Urgency) Label() string {
	switch u {
	case UrgencyUrgentImportant:
		return "Urgent Important"
	case UrgencyUrgentNotImportant:
		return "Urgent Not Important"
	case UrgencyNotUrgentImportant:
		return "Not Urgent Important"
	case UrgencyNotUrgentNotImportant:
		return "Not Urgent Not Important"
	case "":
		return "-"
	}
	return string(u)
}

func (ps ProcessStage) Label() string {
	if ps == "" {
		return "-"
	}
	parts := strings.Split(string(ps), "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// NormalizeTag trims, lowercases, and replaces inner spaces with hyphens.
func NormalizeTag(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

// SplitTags splits comma-separated tag inputs, normalizes each entry, and
// returns a sorted, deduplicated set with empties dropped.
func SplitTags(inputs []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, raw := range inputs {
		for _, part := range strings.Split(raw, ",") {
			tag := NormalizeTag(part)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}
