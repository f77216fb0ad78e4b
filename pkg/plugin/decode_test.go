package plugin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string    `db:"name"`
	Age  int       `db:"age"`
	Time time.Time `db:"time"`
}

type testRecord struct {
	ID     int64     `db:"id"`
	Person *person   `db:"person"`
	Tag    []string  `db:"tag"`
	Gender bool      `db:"gender"`
	Blob   []byte    `db:"blob"`
	Date   time.Time `db:"date"`
}

func TestDecodeRow(t *testing.T) {
	ts := time.Date(2024, time.March, 1, 10, 0, 0, 123000000, time.UTC)

	p := New()
	row := p.TransformRow(
		[]string{"id", "person", "tag", "gender", "blob", "date"},
		[]any{
			int64(1),
			`{"name":"test","age":2,"time":"2024-03-01T10:00:00.123Z"}`,
			`["tag1","tag2"]`,
			"true",
			[]byte{1, 2, 3},
			"2024-03-01T10:00:00.123Z",
		},
	)

	var rec testRecord
	require.NoError(t, DecodeRow(row, &rec))

	assert.Equal(t, int64(1), rec.ID)
	require.NotNil(t, rec.Person)
	assert.Equal(t, "test", rec.Person.Name)
	assert.Equal(t, 2, rec.Person.Age)
	assert.True(t, ts.Equal(rec.Person.Time))
	assert.Equal(t, []string{"tag1", "tag2"}, rec.Tag)
	assert.True(t, rec.Gender)
	assert.Equal(t, []byte{1, 2, 3}, rec.Blob)
	assert.True(t, ts.Equal(rec.Date))
}

func TestDecodeRow_NullColumn(t *testing.T) {
	var rec testRecord
	require.NoError(t, DecodeRow(Row{"id": int64(2), "person": nil}, &rec))
	assert.Equal(t, int64(2), rec.ID)
	assert.Nil(t, rec.Person)
}

func TestDecodeRow_TypeMismatch(t *testing.T) {
	var rec testRecord
	err := DecodeRow(Row{"gender": []any{"x"}}, &rec)
	assert.Error(t, err)
}

func TestDecodeRow_NonPointerDest(t *testing.T) {
	err := DecodeRow(Row{"id": int64(1)}, testRecord{})
	assert.Error(t, err)
}
