package apierror

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source Source
		want   string
	}{
		{
			name:   "body without pointer omits pointer",
			source: FromWholeBody(),
			want:   `{"source":"body"}`,
		},
		{
			name:   "body with pointer",
			source: FromBody("/a/b"),
			want:   `{"source":"body","pointer":"/a/b"}`,
		},
		{
			name:   "body with empty pointer keeps the member",
			source: FromBody(""),
			want:   `{"source":"body","pointer":""}`,
		},
		{
			name:   "header",
			source: FromHeader("Authorization"),
			want:   `{"source":"header","name":"Authorization"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := json.Marshal(tt.source)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
			assert.Equal(t, tt.want, string(data), "member order")
		})
	}
}

func TestSource_Kind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SourceBody, FromBody("/x").Kind())
	assert.Equal(t, SourceBody, FromWholeBody().Kind())
	assert.Equal(t, SourceHeader, FromHeader("Accept").Kind())
}

func TestParseSource(t *testing.T) {
	t.Parallel()

	src, err := ParseSource([]byte(`{"source":"body","pointer":"/age"}`))
	require.NoError(t, err)
	body, ok := src.(BodySource)
	require.True(t, ok, "got %T", src)
	require.NotNil(t, body.Pointer)
	assert.Equal(t, "/age", *body.Pointer)

	src, err = ParseSource([]byte(`{"source":"body"}`))
	require.NoError(t, err)
	assert.Equal(t, BodySource{}, src)

	src, err = ParseSource([]byte(`{"source":"header","name":"Authorization"}`))
	require.NoError(t, err)
	assert.Equal(t, HeaderSource{Name: "Authorization"}, src)

	_, err = ParseSource([]byte(`{"source":"query","name":"page"}`))
	require.ErrorIs(t, err, ErrUnknownSource)

	_, err = ParseSource([]byte(`{"name":"page"}`))
	require.ErrorIs(t, err, ErrMissingSource)

	_, err = ParseSource([]byte(`{"source":"header"}`))
	require.Error(t, err)
}

func TestPointer(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Pointer())
	assert.Equal(t, "/age", Pointer("age"))
	assert.Equal(t, "/address/lines/0", Pointer("address", "lines", "0"))
	assert.Equal(t, "/a~1b/m~0n", Pointer("a/b", "m~n"))
	assert.Equal(t, "/", Pointer(""))
}

func TestValidationErrors_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		errs ValidationErrors
		want string
	}{
		{
			name: "nil list",
			errs: ValidationErrors{},
			want: `{"errors":[]}`,
		},
		{
			name: "empty list",
			errs: ValidationErrors{Errors: []ValidationError{}},
			want: `{"errors":[]}`,
		},
		{
			name: "insertion order is kept",
			errs: ValidationErrors{Errors: []ValidationError{
				{Detail: "c", Source: FromBody("/c")},
				{Detail: "a", Source: FromHeader("A")},
				{Detail: "b", Source: FromWholeBody()},
			}},
			want: `{"errors":[` +
				`{"detail":"c","source":"body","pointer":"/c"},` +
				`{"detail":"a","source":"header","name":"A"},` +
				`{"detail":"b","source":"body"}]}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := json.Marshal(tt.errs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestValidationErrors_Add(t *testing.T) {
	t.Parallel()

	var errs ValidationErrors
	assert.Zero(t, errs.Len())

	errs.Add("first", FromBody("/first"))
	errs.Add("second", FromHeader("X-Second"))

	require.Equal(t, 2, errs.Len())
	assert.Equal(t, "first", errs.Errors[0].Detail)
	assert.Equal(t, "second", errs.Errors[1].Detail)
}

func TestValidationError_MissingSource(t *testing.T) {
	t.Parallel()

	_, err := json.Marshal(ValidationError{Detail: "nowhere"})
	require.ErrorIs(t, err, ErrMissingSource)
}

func TestValidationError_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var e ValidationError
	require.NoError(t, json.Unmarshal([]byte(`{"detail":"bad","source":"header","name":"Accept"}`), &e))
	assert.Equal(t, "bad", e.Detail)
	assert.Equal(t, HeaderSource{Name: "Accept"}, e.Source)

	err := json.Unmarshal([]byte(`{"detail":"bad","source":"cookie"}`), &e)
	require.ErrorIs(t, err, ErrUnknownSource)
}
