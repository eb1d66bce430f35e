package mapping_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"wemtool/internal/mapping"
	"wemtool/internal/services"
	"wemtool/internal/testsupport"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wem_mapping.json")
	m := mapping.Mapping{"123456": "door_open", "2": "b"}

	if err := mapping.Save(context.Background(), path, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := "{\n  \"123456\": \"door_open\",\n  \"2\": \"b\"\n}\n"
	if got := testsupport.ReadText(t, path); got != want {
		t.Fatalf("unexpected file content %q", got)
	}

	loaded, err := mapping.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, m) {
		t.Fatalf("Load = %v, want %v", loaded, m)
	}
}

func TestSaveEmptyMappingWritesObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wem_mapping.json")
	if err := mapping.Save(context.Background(), path, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := testsupport.ReadText(t, path); got != "{}\n" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := mapping.Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	testsupport.WriteText(t, bad, `["not", "an", "object"]`)
	_, err = mapping.Load(bad)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	null := filepath.Join(dir, "null.json")
	testsupport.WriteText(t, null, "null")
	m, err := mapping.Load(null)
	if err != nil || m == nil || len(m) != 0 {
		t.Fatalf("expected empty mapping for null, got %v err=%v", m, err)
	}
}

func TestInvertInjective(t *testing.T) {
	m := mapping.Mapping{"1": "a", "2": "b"}
	inverse, collisions := m.Invert()
	if len(collisions) != 0 {
		t.Fatalf("unexpected collisions: %+v", collisions)
	}
	if !reflect.DeepEqual(inverse, mapping.Inverse{"a": "1", "b": "2"}) {
		t.Fatalf("unexpected inverse: %v", inverse)
	}
}

func TestInvertReportsCollisionsDeterministically(t *testing.T) {
	m := mapping.Mapping{"30": "shared", "10": "shared", "20": "shared", "5": "alone"}
	inverse, collisions := m.Invert()
	if inverse["shared"] != "10" {
		t.Fatalf("expected lexically smallest id kept, got %q", inverse["shared"])
	}
	if inverse["alone"] != "5" {
		t.Fatalf("unexpected inverse for alone: %q", inverse["alone"])
	}
	want := []mapping.Collision{{Name: "shared", Kept: "10", Dropped: []string{"20", "30"}}}
	if !reflect.DeepEqual(collisions, want) {
		t.Fatalf("collisions = %+v, want %+v", collisions, want)
	}
}
