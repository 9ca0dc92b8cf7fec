package schema_registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
)

// Local errors, raised before or after a round-trip but never by the server.
var (
	// ErrInvalidArgument is returned when an argument fails validation. No
	// request is sent in that case.
	ErrInvalidArgument = errors.New("schema registry: invalid argument")

	// ErrMalformedResponse is returned when a response body is not valid JSON.
	ErrMalformedResponse = errors.New("schema registry: malformed response")
)

// ErrorKind identifies the class of an application-level registry error.
// The set is closed: unknown server codes map to KindClient.
type ErrorKind int

const (
	// KindClient is the fallback for codes without a dedicated kind.
	KindClient ErrorKind = iota
	KindBackendDatastore
	KindOperationTimeout
	KindRequestForward
	KindInvalidAvroSchema
	KindInvalidVersion
	KindCompatibility
	KindImport
	KindSubjectNotFound
	KindVersionNotFound
	KindSchemaNotFound
	KindIncompatibleSchema
	KindUnprocessableEntity
	KindPathNotFound
	KindUnauthorized
)

// Error codes returned by the registry in the "error_code" field.
const (
	CodeBackendDatastore    int64 = 50001
	CodeOperationTimeout    int64 = 50002
	CodeRequestForward      int64 = 50003
	CodeInvalidAvroSchema   int64 = 42201
	CodeInvalidVersion      int64 = 42202
	CodeCompatibility       int64 = 42203
	CodeImport              int64 = 42205
	CodeSubjectNotFound     int64 = 40401
	CodeVersionNotFound     int64 = 40402
	CodeSchemaNotFound      int64 = 40403
	CodeIncompatibleSchema  int64 = 409
	CodeUnprocessableEntity int64 = 422
	CodePathNotFound        int64 = 404
	CodeUnauthorized        int64 = 401
)

var codeKinds = map[int64]ErrorKind{
	CodeBackendDatastore:    KindBackendDatastore,
	CodeOperationTimeout:    KindOperationTimeout,
	CodeRequestForward:      KindRequestForward,
	CodeInvalidAvroSchema:   KindInvalidAvroSchema,
	CodeInvalidVersion:      KindInvalidVersion,
	CodeCompatibility:       KindCompatibility,
	CodeImport:              KindImport,
	CodeSubjectNotFound:     KindSubjectNotFound,
	CodeVersionNotFound:     KindVersionNotFound,
	CodeSchemaNotFound:      KindSchemaNotFound,
	CodeIncompatibleSchema:  KindIncompatibleSchema,
	CodeUnprocessableEntity: KindUnprocessableEntity,
	CodePathNotFound:        KindPathNotFound,
	CodeUnauthorized:        KindUnauthorized,
}

// Sentinels for each error kind. A *Error unwraps to the sentinel of its kind,
// so errors.Is(err, ErrSubjectNotFound) works on anything returned by Client.
var (
	ErrClient              = errors.New("schema registry: client error")
	ErrBackendDatastore    = errors.New("schema registry: backend datastore error")
	ErrOperationTimeout    = errors.New("schema registry: operation timed out")
	ErrRequestForward      = errors.New("schema registry: error forwarding request")
	ErrInvalidAvroSchema   = errors.New("schema registry: invalid avro schema")
	ErrInvalidVersion      = errors.New("schema registry: invalid version")
	ErrCompatibility       = errors.New("schema registry: invalid compatibility level")
	ErrImport              = errors.New("schema registry: import error")
	ErrSubjectNotFound     = errors.New("schema registry: subject not found")
	ErrVersionNotFound     = errors.New("schema registry: version not found")
	ErrSchemaNotFound      = errors.New("schema registry: schema not found")
	ErrIncompatibleSchema  = errors.New("schema registry: incompatible schema")
	ErrUnprocessableEntity = errors.New("schema registry: unprocessable entity")
	ErrPathNotFound        = errors.New("schema registry: path not found")
	ErrUnauthorized        = errors.New("schema registry: unauthorized")
)

var kindInfo = map[ErrorKind]struct {
	name     string
	sentinel error
}{
	KindClient:              {"Client", ErrClient},
	KindBackendDatastore:    {"BackendDatastore", ErrBackendDatastore},
	KindOperationTimeout:    {"OperationTimeout", ErrOperationTimeout},
	KindRequestForward:      {"RequestForward", ErrRequestForward},
	KindInvalidAvroSchema:   {"InvalidAvroSchema", ErrInvalidAvroSchema},
	KindInvalidVersion:      {"InvalidVersion", ErrInvalidVersion},
	KindCompatibility:       {"Compatibility", ErrCompatibility},
	KindImport:              {"Import", ErrImport},
	KindSubjectNotFound:     {"SubjectNotFound", ErrSubjectNotFound},
	KindVersionNotFound:     {"VersionNotFound", ErrVersionNotFound},
	KindSchemaNotFound:      {"SchemaNotFound", ErrSchemaNotFound},
	KindIncompatibleSchema:  {"IncompatibleSchema", ErrIncompatibleSchema},
	KindUnprocessableEntity: {"UnprocessableEntity", ErrUnprocessableEntity},
	KindPathNotFound:        {"PathNotFound", ErrPathNotFound},
	KindUnauthorized:        {"Unauthorized", ErrUnauthorized},
}

// String returns the kind name, e.g. "SubjectNotFound".
func (k ErrorKind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// IsRetryable reports whether errors of this kind are transient server-side
// conditions. The client never retries on its own.
func (k ErrorKind) IsRetryable() bool {
	switch k {
	case KindBackendDatastore, KindOperationTimeout, KindRequestForward:
		return true
	default:
		return false
	}
}

// Error is an application-level error reported by the registry.
type Error struct {
	Kind    ErrorKind
	Code    int64
	Message string
}

// NewError builds the typed error for a registry error code.
func NewError(code int64, message string) *Error {
	kind, ok := codeKinds[code]
	if !ok {
		kind = KindClient
	}
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return fmt.Sprintf("schema registry error %d (%s): %s", e.Code, e.Kind, e.Message)
}

// Unwrap returns the sentinel for e.Kind.
func (e *Error) Unwrap() error {
	return kindInfo[e.Kind].sentinel
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var regErr *Error
	if errors.As(err, &regErr) {
		return regErr.Kind, true
	}
	return KindClient, false
}

// IsSubjectNotFoundError checks if the error reports an unknown subject.
func IsSubjectNotFoundError(err error) bool {
	return errors.Is(err, ErrSubjectNotFound)
}

// IsVersionNotFoundError checks if the error reports an unknown version.
func IsVersionNotFoundError(err error) bool {
	return errors.Is(err, ErrVersionNotFound)
}

// IsSchemaNotFoundError checks if the error reports an unknown schema.
func IsSchemaNotFoundError(err error) bool {
	return errors.Is(err, ErrSchemaNotFound)
}

// IsRetryableError checks if the error is a transient registry error.
func IsRetryableError(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind.IsRetryable()
}

// CodeClassifier is the default Classifier. It maps the "error_code" field of
// a response body to a typed *Error.
type CodeClassifier struct{}

// Classify implements Classifier.
func (CodeClassifier) Classify(body any, uri string, req *http.Request) error {
	return Classify(body, uri, req)
}

// ClassifierFunc adapts an ordinary function to the Classifier interface.
type ClassifierFunc func(body any, uri string, req *http.Request) error

// Classify calls f(body, uri, req).
func (f ClassifierFunc) Classify(body any, uri string, req *http.Request) error {
	return f(body, uri, req)
}

// Classify inspects a decoded response body and returns the matching *Error
// when it carries an "error_code". Bodies that are not JSON objects, or that
// have no (or a null) "error_code", are not errors.
//
// A non-empty uri is appended to the message as " (<uri>)". When req is also
// given, its body follows as " with request body: <body>".
func Classify(body any, uri string, req *http.Request) error {
	fields, ok := body.(map[string]any)
	if !ok {
		return nil
	}

	rawCode, ok := fields["error_code"]
	if !ok || rawCode == nil {
		return nil
	}

	message, _ := fields["message"].(string)
	if uri != "" {
		message += " (" + uri + ")"
		if req != nil {
			message += " with request body: " + requestBody(req)
		}
	}

	return NewError(parseCode(rawCode), message)
}

// parseCode converts an "error_code" value to int64. Codes outside the int64
// range saturate at math.MinInt64 or math.MaxInt64; non-numeric codes are 0.
func parseCode(raw any) int64 {
	switch v := raw.(type) {
	case json.Number:
		return parseCodeText(string(v))
	case string:
		return parseCodeText(v)
	case float64:
		return saturateInt64(v)
	case int:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

func parseCodeText(text string) int64 {
	if code, err := strconv.ParseInt(text, 10, 64); err == nil {
		return code
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return saturateInt64(f)
	}
	return 0
}

func saturateInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// requestBody reads the body of req without consuming it.
func requestBody(req *http.Request) string {
	if req.GetBody == nil {
		return ""
	}
	rc, err := req.GetBody()
	if err != nil {
		return ""
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return ""
	}
	return string(data)
}
