package data

import (
	"errors"
	"testing"
)

func TestMatches(t *testing.T) {
	row := Row{"id": "1", "name": "alice", "city": "nairobi"}

	t.Run("NilTemplateMatchesEverything", func(t *testing.T) {
		if !Matches(row, nil) {
			t.Error("Expected nil template to match")
		}
	})

	t.Run("EmptyTemplateMatchesEverything", func(t *testing.T) {
		if !Matches(row, Template{}) {
			t.Error("Expected empty template to match")
		}
	})

	t.Run("FullMatch", func(t *testing.T) {
		if !Matches(row, Template{"name": "alice", "city": "nairobi"}) {
			t.Error("Expected template to match")
		}
	})

	t.Run("ValueMismatch", func(t *testing.T) {
		if Matches(row, Template{"name": "bob"}) {
			t.Error("Expected template not to match")
		}
	})

	t.Run("UnknownColumnMatchesNothing", func(t *testing.T) {
		if Matches(row, Template{"country": "kenya"}) {
			t.Error("Expected template naming an absent column not to match")
		}
	})
}

func TestProject(t *testing.T) {
	row := Row{"id": "1", "name": "alice", "city": "nairobi"}

	t.Run("NilFieldListReturnsAllColumns", func(t *testing.T) {
		projected, err := Project(row, nil)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(projected) != len(row) {
			t.Errorf("Expected %d columns, got %d", len(row), len(projected))
		}
		// Must be a copy, not the same map.
		projected["id"] = "mutated"
		if row["id"] != "1" {
			t.Error("Projection with nil fields must not alias the original row")
		}
	})

	t.Run("SubsetOfColumns", func(t *testing.T) {
		projected, err := Project(row, []string{"id", "name"})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(projected) != 2 {
			t.Errorf("Expected 2 columns, got %d", len(projected))
		}
		if projected["name"] != "alice" {
			t.Errorf("Expected name=alice, got %v", projected["name"])
		}
		if _, exists := projected["city"]; exists {
			t.Error("Did not expect column 'city'")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		fields := []string{"id", "name"}
		once, err := Project(row, fields)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		twice, err := Project(once, fields)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(once) != len(twice) {
			t.Fatalf("Expected identical projections, got %v and %v", once, twice)
		}
		for k, v := range once {
			if twice[k] != v {
				t.Errorf("Column %s: expected %v, got %v", k, v, twice[k])
			}
		}
	})

	t.Run("MissingFieldFails", func(t *testing.T) {
		_, err := Project(row, []string{"id", "country"})
		var fnf *FieldNotFoundError
		if !errors.As(err, &fnf) {
			t.Fatalf("Expected FieldNotFoundError, got: %v", err)
		}
		if fnf.Field != "country" {
			t.Errorf("Expected field 'country', got %q", fnf.Field)
		}
	})
}

func TestRowCopy(t *testing.T) {
	row := Row{"id": "1", "name": "alice"}
	cp := row.Copy()

	cp["name"] = "bob"
	if row["name"] != "alice" {
		t.Error("Copy must not alias the original row")
	}
}
