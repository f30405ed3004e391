package validate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keynote-mcp/internal/script"
)

func requireParamErr(t *testing.T, err error) *ParameterError {
	t.Helper()
	var pe *ParameterError
	require.True(t, errors.As(err, &pe), "expected ParameterError, got %v", err)
	return pe
}

func TestSlideNumber(t *testing.T) {
	n, err := Args{"slide_number": float64(3)}.SlideNumber("slide_number", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = Args{"slide_number": json.Number("7")}.SlideNumber("slide_number", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	bad := []any{nil, float64(0), float64(-1), 1.5, "2", true, []any{1}}
	for _, v := range bad {
		_, err := Args{"slide_number": v}.SlideNumber("slide_number", 0)
		pe := requireParamErr(t, err)
		assert.Equal(t, "slide_number", pe.Field, "value %v", v)
	}

	_, err = Args{}.SlideNumber("slide_number", 0)
	assert.EqualError(t, err, "invalid slide_number: is required")
}

func TestSlideNumber_UpperBound(t *testing.T) {
	_, err := Args{"n": float64(5)}.SlideNumber("n", 4)
	pe := requireParamErr(t, err)
	assert.Contains(t, pe.Reason, "exceeds the slide count 4")

	n, err := Args{"n": float64(4)}.SlideNumber("n", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestPosition(t *testing.T) {
	n, err := Args{}.Position("position")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = Args{"position": float64(2)}.Position("position")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = Args{"position": float64(-1)}.Position("position")
	requireParamErr(t, err)
}

func TestPlacement_AllOrNothing(t *testing.T) {
	p, err := Args{"x": float64(100), "y": float64(200)}.Placement()
	require.NoError(t, err)
	assert.Equal(t, script.Placement{X: 100, Y: 200, Set: true}, p)

	// one axis alone does not count, and does not leak its value
	p, err = Args{"x": float64(100)}.Placement()
	require.NoError(t, err)
	assert.Equal(t, script.Placement{}, p)

	p, err = Args{"y": float64(50)}.Placement()
	require.NoError(t, err)
	assert.Equal(t, script.Placement{}, p)

	p, err = Args{}.Placement()
	require.NoError(t, err)
	assert.False(t, p.Set)
}

func TestPlacement_Rejects(t *testing.T) {
	for _, args := range []Args{
		{"x": float64(-1), "y": float64(0)},
		{"x": float64(0), "y": "10"},
		{"x": float64(-5)},
	} {
		_, err := args.Placement()
		requireParamErr(t, err)
	}
}

func TestRequiredString(t *testing.T) {
	s, err := Args{"text": "  hello "}.RequiredString("text")
	require.NoError(t, err)
	assert.Equal(t, "  hello ", s)

	for _, v := range []any{nil, "", "   ", 12.0} {
		_, err := Args{"text": v}.RequiredString("text")
		requireParamErr(t, err)
	}
}

func TestPath(t *testing.T) {
	p, err := Args{"file_path": "  /tmp/deck.key\n"}.Path("file_path")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/deck.key", p)
}

func TestOptionalString(t *testing.T) {
	s, err := Args{}.OptionalString("doc_name", "")
	require.NoError(t, err)
	assert.Empty(t, s)

	s, err = Args{"font_name": ""}.OptionalString("font_name", "Monaco")
	require.NoError(t, err)
	assert.Equal(t, "Monaco", s)

	_, err = Args{"doc_name": 3.0}.OptionalString("doc_name", "")
	requireParamErr(t, err)
}

func TestEnum(t *testing.T) {
	s, err := Args{}.Enum("format", "png", "png", "jpg", "jpeg")
	require.NoError(t, err)
	assert.Equal(t, "png", s)

	s, err = Args{"format": "jpg"}.Enum("format", "png", "png", "jpg", "jpeg")
	require.NoError(t, err)
	assert.Equal(t, "jpg", s)

	_, err = Args{"format": "gif"}.Enum("format", "png", "png", "jpg", "jpeg")
	requireParamErr(t, err)
}

func TestStringList(t *testing.T) {
	items, err := Args{"items": []any{"a", "b"}}.StringList("items")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)

	items, err = Args{"items": []any{}}.StringList("items")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = Args{"items": []any{"a", 2.0}}.StringList("items")
	pe := requireParamErr(t, err)
	assert.Equal(t, "items[1]", pe.Field)

	_, err = Args{"items": "a"}.StringList("items")
	requireParamErr(t, err)
}

func TestPositiveNumberAndBool(t *testing.T) {
	f, err := Args{}.PositiveNumber("font_size", 36)
	require.NoError(t, err)
	assert.Equal(t, 36.0, f)

	_, err = Args{"font_size": 0.0}.PositiveNumber("font_size", 36)
	requireParamErr(t, err)

	b, err := Args{}.Bool("should_save", true)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = Args{"should_save": false}.Bool("should_save", true)
	require.NoError(t, err)
	assert.False(t, b)

	_, err = Args{"should_save": "no"}.Bool("should_save", true)
	requireParamErr(t, err)
}

func TestIntRange(t *testing.T) {
	n, err := Args{}.IntRange("per_page", 10, 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = Args{"per_page": 31.0}.IntRange("per_page", 10, 1, 30)
	requireParamErr(t, err)
}

func TestSchema(t *testing.T) {
	s, err := CompileSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"slide_number": map[string]any{"type": "integer"},
			"format":       map[string]any{"type": "string", "enum": []any{"png", "jpg"}},
		},
		"required": []any{"slide_number"},
	})
	require.NoError(t, err)

	assert.NoError(t, s.Validate(Args{"slide_number": float64(2)}))
	assert.NoError(t, s.Validate(Args{"slide_number": float64(2), "format": "jpg"}))

	err = s.Validate(nil)
	pe := requireParamErr(t, err)
	assert.Contains(t, pe.Reason, "slide_number")

	err = s.Validate(Args{"slide_number": "two"})
	requireParamErr(t, err)

	err = s.Validate(Args{"slide_number": 1.5})
	requireParamErr(t, err)

	err = s.Validate(Args{"slide_number": float64(1), "format": "gif"})
	requireParamErr(t, err)

	var nilSchema *Schema
	assert.NoError(t, nilSchema.Validate(Args{"anything": 1}))
}

func TestCompileSchema_Invalid(t *testing.T) {
	_, err := CompileSchema(map[string]any{"type": 12})
	assert.Error(t, err)
}
