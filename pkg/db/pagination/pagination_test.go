package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Pageable{Page: -3, Size: 0}.Normalize(20, 100)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, 20, p.Size)

	p = Pageable{Page: 2, Size: 500}.Normalize(20, 100)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 100, p.Size)

	p = Pageable{Page: 1, Size: 50}.Normalize(20, 100)
	assert.Equal(t, 50, p.Size)
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{"name": "name", "created_at": "created_at"}

	assert.Equal(t, "id asc", OrderClause("", allowed, "id asc"))
	assert.Equal(t, "name asc", OrderClause("name", allowed, "id asc"))
	assert.Equal(t, "name desc", OrderClause("name,desc", allowed, "id asc"))
	assert.Equal(t, "name asc", OrderClause(" name , asc ", allowed, "id asc"))
	assert.Equal(t, "created_at desc", OrderClause("created_at,DESC", allowed, "id asc"))

	// Unknown fields never reach the SQL string.
	assert.Equal(t, "id asc", OrderClause("password", allowed, "id asc"))
	assert.Equal(t, "id asc", OrderClause("name; DROP TABLE users", allowed, "id asc"))
}

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b"}, Pageable{Page: 0, Size: 2}, 5)
	assert.Equal(t, 2, len(page.Content))
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	page = NewPage[string](nil, Pageable{Page: 4, Size: 10}, 0)
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
	assert.Equal(t, 0, page.TotalPages)
}
