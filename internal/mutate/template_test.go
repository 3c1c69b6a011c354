package mutate

import (
	"errors"
	"testing"

	"pm-cli/internal/model"
)

func TestCreateTemplateRejectsDuplicates(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	if err := CreateTemplate(db, model.Template{Name: "bug"}); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	var de DuplicateNameError
	if err := CreateTemplate(db, model.Template{Name: "bug"}); !errors.As(err, &de) {
		t.Fatalf("want DuplicateNameError, got %v", err)
	}
	if err := CreateTemplate(db, model.Template{Name: "  "}); err == nil {
		t.Fatal("blank name should fail")
	}
}

func TestSaveTemplateSnapshotsItem(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	it, _ := db.FindItem(3)
	it.Project = "csv"
	it.Tags = []string{"parser"}
	it.Priority = model.PriorityMustHave

	if err := SaveTemplate(db, "3", "parser-task"); err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}
	tpl, ok := db.FindTemplate("parser-task")
	if !ok {
		t.Fatal("template missing")
	}
	if tpl.Project != "csv" || tpl.Priority != model.PriorityMustHave || tpl.Kind != model.KindTask {
		t.Fatalf("snapshot = %+v", tpl)
	}
	if len(tpl.Tags) != 1 || tpl.Tags[0] != "parser" {
		t.Fatalf("tags = %v", tpl.Tags)
	}
}

func TestApplyTemplateExplicitWins(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	if err := CreateTemplate(db, model.Template{
		Name:     "bug",
		Kind:     model.KindSubtask,
		Status:   model.StatusInProgress,
		Project:  "triage",
		Priority: model.PriorityMustHave,
		Tags:     []string{"bug"},
	}); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	// Kind given explicitly, project not.
	it := model.Item{Title: "crash on import", Kind: model.KindTask, Status: model.StatusOpen}
	if err := ApplyTemplate(db, "bug", &it, true, false); err != nil {
		t.Fatalf("ApplyTemplate: %v", err)
	}
	if it.Kind != model.KindTask {
		t.Fatalf("explicit kind overridden: %s", it.Kind)
	}
	if it.Status != model.StatusInProgress {
		t.Fatalf("defaulted status should come from the template, got %s", it.Status)
	}
	if it.Project != "triage" || it.Priority != model.PriorityMustHave {
		t.Fatalf("template fields not applied: %+v", it)
	}
	if len(it.Tags) != 1 || it.Tags[0] != "bug" {
		t.Fatalf("tags = %v", it.Tags)
	}
}

func TestApplyTemplateUnknown(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	it := model.Item{Title: "x"}
	var nf NotFoundError
	if err := ApplyTemplate(db, "nope", &it, false, false); !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestDeleteTemplate(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	if err := CreateTemplate(db, model.Template{Name: "bug"}); err != nil {
		t.Fatal(err)
	}
	if err := DeleteTemplate(db, "bug"); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
	var nf NotFoundError
	if err := DeleteTemplate(db, "bug"); !errors.As(err, &nf) {
		t.Fatalf("second delete should be NotFound, got %v", err)
	}
}
