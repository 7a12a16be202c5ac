package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripdesk/internal/core/entity"
	"tripdesk/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Email *string `db:"email" json:"email"`
	Notes string  `db:"-" json:"notes"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "code", "name", "email",
	}
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}

	assert.NotContains(t, cols, "notes")
}

func TestExtractDBColumns_Pointer(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[mockCatalog](), ExtractDBColumns[*mockCatalog]())
}

func TestStructToMap(t *testing.T) {
	email := "anna@example.com"
	cat := mockCatalog{
		Catalog: entity.Catalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
			Code: "TEST",
			Name: "Test Name",
		},
		Email: &email,
		Notes: "not persisted",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, &email, m["email"])
	assert.NotContains(t, m, "notes")
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{
		Catalog: entity.Catalog{
			BaseEntity: entity.BaseEntity{ID: id.New(), Version: 1},
			Code:       "PTR",
			Name:       "Pointer",
		},
	}

	m := StructToMap(cat)
	assert.Equal(t, "PTR", m["code"])
	assert.Equal(t, 1, m["version"])
}
