package validator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aniame/pkg/jsonpath"
	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/tree"
	"github.com/aretw0/aniame/pkg/validator"
)

const personDictionary = `{
	"person": {
		"type": "object",
		"properties": {
			"name": {"type": "string", "required": true},
			"telephone": {"type": "number"},
			"email": {"type": "string", "required": true},
			"pets": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"name": {
							"type": "object",
							"required": true,
							"properties": {
								"first": {"type": "string", "required": true},
								"family": {"type": "string"}
							}
						},
						"race": {"type": "ref", "ref": "race"}
					}
				}
			}
		}
	},
	"race": {
		"type": "object",
		"properties": {
			"name": {"type": "string", "required": true},
			"classification": {"type": "number", "required": true}
		}
	},
	"string": {"type": "string"}
}`

func loadDictionary(t *testing.T, doc string) schema.Dictionary {
	t.Helper()
	dict, err := schema.UnmarshalDictionary([]byte(doc))
	require.NoError(t, err)
	return dict
}

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := tree.Decode([]byte(doc))
	require.NoError(t, err)
	return v
}

func pointers(t *testing.T, outcome *validator.Outcome, err error) []string {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, outcome)
	return outcome.Pointers()
}

func TestValidate_Person(t *testing.T) {
	dict := loadDictionary(t, personDictionary)
	ctx := context.Background()

	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "unknown attributes are rejected",
			data: `{"name": "Tim", "telephone": 123456, "email": "blue", "test": true}`,
			want: []string{"/test"},
		},
		{
			name: "optional attributes can be omitted",
			data: `{"name": "Tim", "email": "blue"}`,
			want: []string{},
		},
		{
			name: "required attributes cannot be omitted",
			data: `{"name": "true", "telephone": 534}`,
			want: []string{"/email"},
		},
		{
			name: "types are checked",
			data: `{"name": true, "telephone": "534", "email": "test"}`,
			want: []string{"/name", "/telephone"},
		},
		{
			name: "array items are validated",
			data: `{"name": "true", "telephone": 534, "email": "test", "pets": [{"name": {"first": "tom"}}, 3]}`,
			want: []string{"/pets/1"},
		},
		{
			name: "nested objects are validated",
			data: `{"name": "true", "email": "test", "pets": [{"name": {"first": "tom"}}, {"age": 3}]}`,
			want: []string{"/pets/1/name", "/pets/1/age"},
		},
		{
			name: "references are checked against their schema",
			data: `{"name": "true", "email": "test", "pets": [{"name": {"first": "blue"}, "race": {"name": "cocker", "classification": 3}}]}`,
			want: []string{},
		},
		{
			name: "defects inside references are reported",
			data: `{"name": "x", "email": "y", "pets": [{"name": {"first": "a"}, "race": {"classification": "high"}}]}`,
			want: []string{"/pets/0/race/name", "/pets/0/race/classification"},
		},
		{
			name: "non-object root",
			data: `[1, 2]`,
			want: []string{""},
		},
		{
			name: "null property is present but mistyped",
			data: `{"name": null, "email": "y"}`,
			want: []string{"/name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := validator.ValidateNamed(ctx, decode(t, tt.data), "person", validator.WithDictionary(dict))
			got := pointers(t, outcome, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) == 0, outcome.Success())
		})
	}
}

func TestValidate_NonObjectSchemas(t *testing.T) {
	dict := loadDictionary(t, personDictionary)
	ctx := context.Background()

	outcome, err := validator.ValidateNamed(ctx, "test", "string", validator.WithDictionary(dict))
	require.NoError(t, err)
	assert.True(t, outcome.Success())

	tests := []struct {
		d    schema.Descriptor
		ok   []any
		fail []any
	}{
		{schema.String(), []any{"", "x"}, []any{1, true, nil, []any{}, map[string]any{}}},
		{schema.Number(), []any{0, 1.5, int64(3), uint(2)}, []any{"1", false, nil}},
		{schema.Boolean(), []any{true, false}, []any{0, "true", nil}},
		{schema.Array(schema.Number()), []any{[]any{}, []any{1, 2}, []int{3}}, []any{map[string]any{}, "x", nil}},
		{schema.Object(), []any{map[string]any{}, tree.NewOrderedMap()}, []any{[]any{}, 1, nil}},
	}
	for _, tt := range tests {
		for _, v := range tt.ok {
			outcome, err := validator.Validate(ctx, v, tt.d)
			require.NoError(t, err)
			assert.True(t, outcome.Success(), "%s should accept %#v", tt.d.Kind(), v)
		}
		for _, v := range tt.fail {
			outcome, err := validator.Validate(ctx, v, tt.d)
			require.NoError(t, err)
			require.Len(t, outcome.Errors, 1, "%s should reject %#v", tt.d.Kind(), v)
			assert.Equal(t, validator.ReasonTypeMismatch, outcome.Errors[0].Reason)
			assert.Equal(t, tt.d.Kind(), outcome.Errors[0].Expected)
			assert.True(t, outcome.Errors[0].Path.IsRoot())
		}
	}
}

func TestValidate_UnknownPropertyRejection(t *testing.T) {
	d := schema.Object(schema.Prop("a", schema.Number()))
	outcome, err := validator.Validate(context.Background(), map[string]any{"a": 1, "b": 2}, d)
	require.NoError(t, err)
	require.Len(t, outcome.Errors, 1)
	assert.True(t, outcome.Errors[0].Path.Equal(jsonpath.Of("b")))
	assert.Equal(t, validator.ReasonUnknownProperty, outcome.Errors[0].Reason)
}

func TestValidate_RequiredEnforcement(t *testing.T) {
	d := schema.Object(schema.Prop("a", schema.Required(schema.String())))
	ctx := context.Background()

	outcome, err := validator.Validate(ctx, map[string]any{}, d)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"a"}}, outcome.Arrays())
	assert.Equal(t, validator.ReasonMissingRequired, outcome.Errors[0].Reason)

	outcome, err = validator.Validate(ctx, map[string]any{"a": "x"}, d)
	require.NoError(t, err)
	assert.True(t, outcome.Success())

	outcome, err = validator.Validate(ctx, map[string]any{}, d, validator.WithEnforceRequired(false))
	require.NoError(t, err)
	assert.True(t, outcome.Success())
}

func TestValidate_MultipleMissingRequired(t *testing.T) {
	d := schema.Object(
		schema.Prop("b", schema.Required(schema.String())),
		schema.Prop("a", schema.Required(schema.String())),
		schema.Prop("c", schema.String()),
	)
	outcome, err := validator.Validate(context.Background(), map[string]any{"c": "x"}, d)
	require.NoError(t, err)
	// Schema declaration order.
	assert.Equal(t, []string{"/b", "/a"}, outcome.Pointers())
}

func TestValidate_ArrayResetsRequired(t *testing.T) {
	d := schema.Object(
		schema.Prop("owner", schema.Object(schema.Prop("id", schema.Required(schema.Number())))),
		schema.Prop("items", schema.Array(schema.Object(
			schema.Prop("id", schema.Required(schema.Number())),
			schema.Prop("label", schema.String()),
		))),
	)
	data := decode(t, `{"owner": {}, "items": [{"label": "a"}, {"id": 2}, {"label": "c"}]}`)

	outcome, err := validator.Validate(context.Background(), data, d, validator.WithEnforceRequired(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"/items/0/id", "/items/2/id"}, outcome.Pointers())
}

func TestValidate_RefPropagatesEnforceRequired(t *testing.T) {
	dict := loadDictionary(t, personDictionary)
	d := schema.Object(schema.Prop("race", schema.Ref("race")))

	outcome, err := validator.Validate(context.Background(), decode(t, `{"race": {"name": "x"}}`), d,
		validator.WithDictionary(dict),
		validator.WithEnforceRequired(false),
	)
	require.NoError(t, err)
	assert.True(t, outcome.Success())

	outcome, err = validator.Validate(context.Background(), decode(t, `{"race": {"name": "x"}}`), d,
		validator.WithDictionary(dict),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"/race/classification"}, outcome.Pointers())
}

func TestValidate_ErrorOrderFollowsData(t *testing.T) {
	d := schema.Object(
		schema.Prop("a", schema.Number()),
		schema.Prop("b", schema.Number()),
		schema.Prop("req", schema.Required(schema.Number())),
	)
	data := decode(t, `{"zz": 1, "b": "x", "yy": 2, "a": "y"}`)

	outcome, err := validator.Validate(context.Background(), data, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"/req", "/zz", "/b", "/yy", "/a"}, outcome.Pointers())
}

func TestValidate_EndToEnd(t *testing.T) {
	dict := loadDictionary(t, `{"race": {"type": "object", "properties": {"name": {"type": "string", "required": true}}}}`)
	d, err := schema.Unmarshal([]byte(`{
		"type": "object",
		"properties": {
			"name": {"type": "string", "required": true},
			"pets": {"type": "array", "items": {"type": "object", "properties": {"race": {"type": "ref", "ref": "race"}}}}
		}
	}`), dict.Names())
	require.NoError(t, err)

	data := decode(t, `{"name": "Tim", "pets": [{"race": {"name": "Labrador"}}, {"race": {}}]}`)
	outcome, err := validator.Validate(context.Background(), data, d, validator.WithDictionary(dict))
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"pets", 1, "race", "name"}}, outcome.Arrays())
}

func TestValidate_Idempotent(t *testing.T) {
	dict := loadDictionary(t, personDictionary)
	data := decode(t, `{"name": 1, "pets": [{"race": {}}, {"name": {}}], "x": null}`)
	v := validator.New(validator.WithDictionary(dict))

	first, err := v.ValidateNamed(context.Background(), data, "person")
	require.NoError(t, err)
	second, err := v.ValidateNamed(context.Background(), data, "person")
	require.NoError(t, err)

	assert.NotEmpty(t, first.Errors)
	assert.Equal(t, first.Pointers(), second.Pointers())
}

func TestValidate_RefChecker(t *testing.T) {
	dict := loadDictionary(t, personDictionary)
	ctx := context.Background()

	// false for 5, defer otherwise
	check := func(_ context.Context, node any, ref string, _ schema.Dictionary) (validator.Verdict, error) {
		assert.Equal(t, "race", ref)
		if node == 5 {
			return validator.Invalid, nil
		}
		return validator.Defer, nil
	}

	outcome, err := validator.ValidateNamed(ctx,
		decode(t, `{"name": "a", "email": "b", "pets": [{"name": {"first": "x"}, "race": 5}]}`),
		"person", validator.WithDictionary(dict), validator.WithRefChecker(check))
	require.NoError(t, err)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "/pets/0/race", outcome.Errors[0].Path.Pointer())
	assert.Equal(t, validator.ReasonRefRejected, outcome.Errors[0].Reason)
	assert.Equal(t, "race", outcome.Errors[0].Ref)

	outcome, err = validator.ValidateNamed(ctx,
		decode(t, `{"name": "a", "email": "b", "pets": [{"name": {"first": "x"}, "race": {"name": "cocker", "classification": "test"}}]}`),
		"person", validator.WithDictionary(dict), validator.WithRefChecker(check))
	require.NoError(t, err)
	assert.Equal(t, []string{"/pets/0/race/classification"}, outcome.Pointers())
}

func TestValidate_RefCheckerValidSkipsStructure(t *testing.T) {
	dict := loadDictionary(t, personDictionary)
	check := func(_ context.Context, node any, _ string, _ schema.Dictionary) (validator.Verdict, error) {
		if node == 5 {
			return validator.Valid, nil
		}
		return validator.Invalid, nil
	}

	outcome, err := validator.ValidateNamed(context.Background(),
		decode(t, `{"name": "a", "email": "b", "pets": [{"name": {"first": "tom"}}, {"name": {"first": "blue"}, "race": 5}]}`),
		"person", validator.WithDictionary(dict), validator.WithRefChecker(check))
	require.NoError(t, err)
	assert.True(t, outcome.Success())
}

func TestValidate_ProgrammerErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown ref target", func(t *testing.T) {
		_, err := validator.Validate(ctx, map[string]any{}, schema.Ref("ghost"))
		assert.ErrorIs(t, err, schema.ErrUnknownSchema)
	})

	t.Run("unknown schema name", func(t *testing.T) {
		_, err := validator.ValidateNamed(ctx, 1, "ghost", validator.WithDictionary(schema.Dictionary{}))
		assert.ErrorIs(t, err, schema.ErrUnknownSchema)
	})

	t.Run("nil descriptor", func(t *testing.T) {
		_, err := validator.Validate(ctx, 1, nil)
		assert.ErrorIs(t, err, validator.ErrNilDescriptor)
	})

	t.Run("reference cycle", func(t *testing.T) {
		dict := schema.Dictionary{"a": schema.Ref("b"), "b": schema.Ref("a")}
		_, err := validator.ValidateNamed(ctx, 1, "a", validator.WithDictionary(dict))
		assert.ErrorIs(t, err, validator.ErrRefCycle)
	})

	t.Run("recursive schema over finite data", func(t *testing.T) {
		dict := schema.Dictionary{}
		require.NoError(t, dict.Define("node", map[string]any{
			"type": "object",
			"properties": map[string]any{
				"children": map[string]any{"type": "array", "items": map[string]any{"type": "ref", "ref": "node"}},
			},
		}))
		data := decode(t, `{"children": [{"children": []}, {"children": [{"bad": 1}]}]}`)
		outcome, err := validator.ValidateNamed(ctx, data, "node", validator.WithDictionary(dict))
		require.NoError(t, err)
		assert.Equal(t, []string{"/children/1/children/0/bad"}, outcome.Pointers())
	})

	t.Run("checker failure aborts", func(t *testing.T) {
		boom := errors.New("lookup failed")
		check := func(context.Context, any, string, schema.Dictionary) (validator.Verdict, error) {
			return validator.Invalid, boom
		}
		_, err := validator.Validate(ctx, 1, schema.Ref("x"), validator.WithRefChecker(check))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("unknown verdict", func(t *testing.T) {
		check := func(context.Context, any, string, schema.Dictionary) (validator.Verdict, error) {
			return validator.Verdict(42), nil
		}
		_, err := validator.Validate(ctx, 1, schema.Ref("x"), validator.WithRefChecker(check))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := validator.Validate(cctx, 1, schema.Number())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOutcome_Err(t *testing.T) {
	d := schema.Object(
		schema.Prop("a", schema.Required(schema.String())),
		schema.Prop("b", schema.Number()),
	)
	outcome, err := validator.Validate(context.Background(), map[string]any{"b": "x"}, d)
	require.NoError(t, err)

	verr := outcome.Err()
	require.Error(t, verr)
	errs := validator.ValidationErrors(verr)
	require.Len(t, errs, 2)
	assert.Equal(t, "/a: missing required property", errs[0].Error())
	assert.Equal(t, "/b: type mismatch (expected number)", errs[1].Error())
	assert.Contains(t, verr.Error(), "2 validation errors")

	ok, err := validator.Validate(context.Background(), map[string]any{"a": "x"}, d)
	require.NoError(t, err)
	assert.NoError(t, ok.Err())
	assert.Nil(t, validator.ValidationErrors(errors.New("other")))
}
