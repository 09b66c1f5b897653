package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
)

type MockCatalog struct {
	entity.BaseCatalog
	Code   string `db:"code" json:"code"`
	Name   string `db:"name" json:"name"`
	Hidden string `db:"-" json:"hidden"`
	NoTag  string
}

func TestExtractDBColumns_EmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "created_at", "updated_at", "code", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}

	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expectedCols))
}

func TestStructToMap(t *testing.T) {
	cat := MockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code:   "TEST",
		Name:   "Test Name",
		Hidden: "should not appear",
		NoTag:  "neither should this",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])

	assert.NotContains(t, m, "-")
	for _, v := range m {
		assert.NotEqual(t, "should not appear", v)
		assert.NotEqual(t, "neither should this", v)
	}
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &MockCatalog{Code: "PTR"}

	m := StructToMap(cat)
	assert.Equal(t, "PTR", m["code"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("string"))
}
