package mutate

import (
	"errors"
	"strings"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

// CreateTemplate registers a named field bundle for later item creation.
func CreateTemplate(db *store.DB, t model.Template) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return errors.New("template name is required")
	}
	if _, ok := db.FindTemplate(t.Name); ok {
		return DuplicateNameError{Name: t.Name}
	}
	t.Tags = model.SplitTags(t.Tags)
	db.Templates = append(db.Templates, t)
	return nil
}

// SaveTemplate snapshots an existing item's optional fields into a new
// template. Identity fields (id, parent, timestamps) are never captured.
func SaveTemplate(db *store.DB, itemRef, name string) error {
	id, err := ResolveRef(db, itemRef)
	if err != nil {
		return err
	}
	it, _ := db.FindItem(id)
	return CreateTemplate(db, model.Template{
		Name:                name,
		TitleTemplate:       it.Title,
		DescriptionTemplate: it.Description,
		Project:             it.Project,
		Tags:                append([]string(nil), it.Tags...),
		Kind:                it.Kind,
		Status:              it.Status,
		Priority:            it.Priority,
		Urgency:             it.Urgency,
		ProcessStage:        it.ProcessStage,
	})
}

func DeleteTemplate(db *store.DB, name string) error {
	for i := range db.Templates {
		if db.Templates[i].Name == name {
			db.Templates = append(db.Templates[:i], db.Templates[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "template", Ref: name}
}

// ApplyTemplate fills unset fields of a draft item from the named template.
// Explicitly supplied fields always win; kind and status carry CLI defaults,
// so the caller states whether they were given explicitly.
func ApplyTemplate(db *store.DB, name string, it *model.Item, kindExplicit, statusExplicit bool) error {
	t, ok := db.FindTemplate(name)
	if !ok {
		return NotFoundError{Kind: "template", Ref: name}
	}

	if !kindExplicit && t.Kind != "" {
		it.Kind = t.Kind
	}
	if !statusExplicit && t.Status != "" {
		it.Status = t.Status
	}
	if it.Description == "" {
		it.Description = t.DescriptionTemplate
	}
	if it.Project == "" {
		it.Project = t.Project
	}
	if len(it.Tags) == 0 {
		it.Tags = append([]string(nil), t.Tags...)
	}
	if it.Priority == "" {
		it.Priority = t.Priority
	}
	if it.Urgency == "" {
		it.Urgency = t.Urgency
	}
	if it.ProcessStage == "" {
		it.ProcessStage = t.ProcessStage
	}
	return nil
}
