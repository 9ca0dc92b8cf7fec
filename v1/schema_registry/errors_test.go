package schema_registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKnownCodes(t *testing.T) {
	tests := []struct {
		code     int64
		kind     ErrorKind
		sentinel error
	}{
		{50001, KindBackendDatastore, ErrBackendDatastore},
		{50002, KindOperationTimeout, ErrOperationTimeout},
		{50003, KindRequestForward, ErrRequestForward},
		{42201, KindInvalidAvroSchema, ErrInvalidAvroSchema},
		{42202, KindInvalidVersion, ErrInvalidVersion},
		{42203, KindCompatibility, ErrCompatibility},
		{42205, KindImport, ErrImport},
		{40401, KindSubjectNotFound, ErrSubjectNotFound},
		{40402, KindVersionNotFound, ErrVersionNotFound},
		{40403, KindSchemaNotFound, ErrSchemaNotFound},
		{409, KindIncompatibleSchema, ErrIncompatibleSchema},
		{422, KindUnprocessableEntity, ErrUnprocessableEntity},
		{404, KindPathNotFound, ErrPathNotFound},
		{401, KindUnauthorized, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			body := map[string]any{"error_code": json.Number(strconv.FormatInt(tt.code, 10)), "message": "msg"}

			err := Classify(body, "", nil)
			require.Error(t, err)

			var regErr *Error
			require.True(t, errors.As(err, &regErr))
			assert.Equal(t, tt.kind, regErr.Kind)
			assert.Equal(t, tt.code, regErr.Code)
			assert.Equal(t, "msg", regErr.Message)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestClassifyUnknownCodesFallBackToClient(t *testing.T) {
	for _, code := range []int64{9999, 0, -9999, math.MaxInt64, math.MinInt64} {
		err := Classify(map[string]any{"error_code": json.Number(strconv.FormatInt(code, 10)), "message": "msg"}, "", nil)

		var regErr *Error
		require.True(t, errors.As(err, &regErr), "code %d", code)
		assert.Equal(t, KindClient, regErr.Kind)
		assert.Equal(t, code, regErr.Code)
		assert.Equal(t, "msg", regErr.Message)
		assert.ErrorIs(t, err, ErrClient)
	}
}

func TestClassifyAcceptsNumericRepresentations(t *testing.T) {
	for _, raw := range []any{float64(40401), 40401, int64(40401), "40401", json.Number("40401.0")} {
		err := Classify(map[string]any{"error_code": raw}, "", nil)
		assert.True(t, IsSubjectNotFoundError(err), "raw %#v", raw)
	}
}

func TestClassifyWithoutErrorCode(t *testing.T) {
	bodies := []any{
		nil,
		"string",
		[]any{json.Number("1"), json.Number("2")},
		map[string]any{},
		map[string]any{"message": "not an error", "id": json.Number("3")},
		map[string]any{"error_code": nil, "message": "null code"},
	}

	for _, body := range bodies {
		assert.NoError(t, Classify(body, "subjects", nil))
	}
}

func TestClassifyMissingMessage(t *testing.T) {
	err := Classify(map[string]any{"error_code": json.Number("40401")}, "", nil)

	var regErr *Error
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, "", regErr.Message)
}

func TestClassifyAppendsURIAndRequestBody(t *testing.T) {
	body := map[string]any{"error_code": json.Number("42201"), "message": "Invalid schema"}

	err := Classify(body, "subjects/test/versions", nil)
	var regErr *Error
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, "Invalid schema (subjects/test/versions)", regErr.Message)

	req, reqErr := http.NewRequest(http.MethodPost, "http://registry/subjects/test/versions", bytes.NewReader([]byte(`{"schema":"x"}`)))
	require.NoError(t, reqErr)

	err = Classify(body, "subjects/test/versions", req)
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, `Invalid schema (subjects/test/versions) with request body: {"schema":"x"}`, regErr.Message)

	// Without a uri the request is ignored.
	err = Classify(body, "", req)
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, "Invalid schema", regErr.Message)
}

func TestCodeClassifierAndClassifierFunc(t *testing.T) {
	body := map[string]any{"error_code": json.Number("40403")}

	assert.True(t, IsSchemaNotFoundError(CodeClassifier{}.Classify(body, "", nil)))

	called := false
	var classifier Classifier = ClassifierFunc(func(any, string, *http.Request) error {
		called = true
		return nil
	})
	assert.NoError(t, classifier.Classify(body, "", nil))
	assert.True(t, called)
}

func TestErrorFormattingAndHelpers(t *testing.T) {
	err := NewError(40402, "Version 3 not found.")
	assert.Equal(t, "schema registry error 40402 (VersionNotFound): Version 3 not found.", err.Error())

	wrapped := errors.Join(errors.New("context"), err)
	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindVersionNotFound, kind)
	assert.True(t, IsVersionNotFoundError(wrapped))
	assert.False(t, IsSubjectNotFoundError(wrapped))

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	assert.True(t, IsRetryableError(NewError(50002, "")))
	assert.False(t, IsRetryableError(NewError(40401, "")))
	assert.False(t, IsRetryableError(errors.New("plain")))

	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

func TestClassifySaturatesOutOfRangeCodes(t *testing.T) {
	tests := []struct {
		raw  any
		want int64
	}{
		{json.Number("99999999999999999999"), math.MaxInt64},
		{json.Number("-99999999999999999999"), math.MinInt64},
		{json.Number("1e400"), math.MaxInt64},
		{float64(1e20), math.MaxInt64},
		{float64(-1e20), math.MinInt64},
		{"99999999999999999999", math.MaxInt64},
		{"not a number", 0},
		{true, 0},
	}

	for _, tt := range tests {
		err := Classify(map[string]any{"error_code": tt.raw, "message": "msg"}, "", nil)

		var regErr *Error
		require.True(t, errors.As(err, &regErr), "raw %#v", tt.raw)
		assert.Equal(t, KindClient, regErr.Kind)
		assert.Equal(t, tt.want, regErr.Code, "raw %#v", tt.raw)
	}
}
