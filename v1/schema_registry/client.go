package schema_registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Client is the default implementation of Registry. It translates each
// operation into a single Caller round-trip and interprets the response,
// recovering from the not-found errors that some operations treat as answers.
type Client struct {
	caller Caller
	logger Logger
}

var _ Registry = (*Client)(nil)

// NewAPIClient creates a Client on top of any Caller.
func NewAPIClient(caller Caller) *Client {
	return &Client{caller: caller}
}

// NewClient creates a Client talking to cfg.URL through an *http.Client with
// cfg.Timeout (DefaultTimeout when zero).
//
// Example:
//
//	registry, err := schema_registry.NewClient(schema_registry.Config{
//	    URL: "http://localhost:8081",
//	})
//	if err != nil {
//	    return err
//	}
//	versions, err := registry.ListVersions(ctx, "orders-value")
func NewClient(cfg Config) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	transport, err := NewHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, CodeClassifier{})
	if err != nil {
		return nil, err
	}

	return NewAPIClient(transport).WithLogger(cfg.Logger), nil
}

// WithLogger attaches a logger used to report recovered errors and returns
// the same instance.
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// ListSubjects returns the registered subject names. includeDeleted must be
// "", "true" or "false"; any other value fails before a request is sent.
func (c *Client) ListSubjects(ctx context.Context, includeDeleted string) ([]string, error) {
	var query url.Values
	switch includeDeleted {
	case "":
	case "true", "false":
		query = url.Values{"deleted": {includeDeleted}}
	default:
		return nil, fmt.Errorf("%w: includeDeleted must be \"true\" or \"false\", got %q", ErrInvalidArgument, includeDeleted)
	}

	var subjects []string
	if err := c.call(ctx, http.MethodGet, "subjects", nil, query, &subjects); err != nil {
		return nil, err
	}
	if subjects == nil {
		subjects = []string{}
	}
	return subjects, nil
}

// ListVersions returns the version numbers registered under subject.
func (c *Client) ListVersions(ctx context.Context, subject string) ([]int, error) {
	var versions []int
	if err := c.call(ctx, http.MethodGet, subjectPath(subject)+"/versions", nil, nil, &versions); err != nil {
		return nil, err
	}
	if versions == nil {
		versions = []int{}
	}
	return versions, nil
}

// GetSchema retrieves a version record. An empty version means latest.
func (c *Client) GetSchema(ctx context.Context, subject, version string) (*SchemaVersion, error) {
	result := &SchemaVersion{}
	if err := c.call(ctx, http.MethodGet, versionPath(subject, version), nil, nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSchemaDefinition retrieves only the schema of a version, either a
// primitive type name or a structured definition.
func (c *Client) GetSchemaDefinition(ctx context.Context, subject, version string) (SchemaDefinition, error) {
	raw, err := c.caller.Call(ctx, http.MethodGet, versionPath(subject, version)+"/schema", nil, nil)
	if err != nil {
		return nil, err
	}
	return SchemaDefinition(bytes.TrimSpace(raw)), nil
}

// DeleteVersion deletes a version of subject and returns its number when the
// registry reports one.
func (c *Client) DeleteVersion(ctx context.Context, subject, version string) (int, bool, error) {
	var deleted *int
	if err := c.call(ctx, http.MethodDelete, versionPath(subject, version), nil, nil, &deleted); err != nil {
		return 0, false, err
	}
	if deleted == nil {
		return 0, false, nil
	}
	return *deleted, true, nil
}

// GetSchemaByID retrieves a schema from the registry by its global ID.
func (c *Client) GetSchemaByID(ctx context.Context, id int) (string, error) {
	var result struct {
		Schema string `json:"schema"`
	}
	if err := c.call(ctx, http.MethodGet, "schemas/ids/"+strconv.Itoa(id), nil, nil, &result); err != nil {
		return "", err
	}
	return result.Schema, nil
}

// RegisterVersion normalizes schema and registers it under subject. The
// registry usually answers with the assigned id only; Subject is always set
// on the returned record.
func (c *Client) RegisterVersion(ctx context.Context, subject, schema string) (*SchemaVersion, error) {
	body, err := schemaBody(schema)
	if err != nil {
		return nil, err
	}

	result := &SchemaVersion{}
	if err := c.call(ctx, http.MethodPost, subjectPath(subject)+"/versions", body, nil, result); err != nil {
		return nil, err
	}
	if result.Subject == "" {
		result.Subject = subject
	}
	return result, nil
}

// CheckCompatibility reports whether schema may be registered against the
// given version of subject. A missing subject, or a missing latest version,
// counts as compatible; a missing explicit version is an error.
func (c *Client) CheckCompatibility(ctx context.Context, subject, schema, version string) (bool, error) {
	body, err := schemaBody(schema)
	if err != nil {
		return false, err
	}

	version = versionOrLatest(version)
	var result any
	err = c.call(ctx, http.MethodPost, "compatibility/"+versionPath(subject, version), body, nil, &result)
	switch {
	case err == nil:
	case IsVersionNotFoundError(err) && version != VersionLatest:
		return false, err
	case IsSubjectNotFoundError(err), IsVersionNotFoundError(err):
		c.logDebug(ctx, "nothing to check compatibility against", err, subject)
		return true, nil
	default:
		return false, err
	}

	fields, ok := result.(map[string]any)
	if !ok {
		return false, nil
	}
	compatible, _ := fields["is_compatible"].(bool)
	return compatible, nil
}

// GetSubjectCompatibility returns the level configured for subject, falling
// back to the global default when the subject has no level of its own.
func (c *Client) GetSubjectCompatibility(ctx context.Context, subject string) (CompatibilityLevel, error) {
	var result compatibilityResponse
	err := c.call(ctx, http.MethodGet, "config/"+url.PathEscape(subject), nil, nil, &result)
	if IsSubjectNotFoundError(err) {
		c.logDebug(ctx, "subject has no compatibility level, using default", err, subject)
		return c.GetDefaultCompatibility(ctx)
	}
	if err != nil {
		return "", err
	}
	return result.CompatibilityLevel, nil
}

// SetSubjectCompatibility sets the compatibility level of subject. An empty
// level means FULL.
func (c *Client) SetSubjectCompatibility(ctx context.Context, subject string, level CompatibilityLevel) (bool, error) {
	if err := c.call(ctx, http.MethodPut, "config/"+url.PathEscape(subject), levelBody(level), nil, nil); err != nil {
		return false, err
	}
	return true, nil
}

// GetDefaultCompatibility returns the global compatibility level.
func (c *Client) GetDefaultCompatibility(ctx context.Context) (CompatibilityLevel, error) {
	var result compatibilityResponse
	if err := c.call(ctx, http.MethodGet, "config", nil, nil, &result); err != nil {
		return "", err
	}
	return result.CompatibilityLevel, nil
}

// SetDefaultCompatibility sets the global compatibility level. An empty
// level means FULL.
func (c *Client) SetDefaultCompatibility(ctx context.Context, level CompatibilityLevel) (bool, error) {
	if err := c.call(ctx, http.MethodPut, "config", levelBody(level), nil, nil); err != nil {
		return false, err
	}
	return true, nil
}

// GetVersionForSchema returns the version under which schema is registered
// for subject. An unknown subject or schema is reported as (0, false, nil).
func (c *Client) GetVersionForSchema(ctx context.Context, subject, schema string) (int, bool, error) {
	body, err := schemaBody(schema)
	if err != nil {
		return 0, false, err
	}

	var result struct {
		Version *int `json:"version"`
	}
	err = c.call(ctx, http.MethodPost, subjectPath(subject), body, nil, &result)
	if IsSubjectNotFoundError(err) || IsSchemaNotFoundError(err) {
		c.logDebug(ctx, "schema is not registered", err, subject)
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if result.Version == nil {
		return 0, false, nil
	}
	return *result.Version, true, nil
}

// IsSchemaRegistered checks if schema is already registered under subject.
func (c *Client) IsSchemaRegistered(ctx context.Context, subject, schema string) (bool, error) {
	_, found, err := c.GetVersionForSchema(ctx, subject, schema)
	return found, err
}

// DeleteSubject deletes subject and returns the versions it held.
func (c *Client) DeleteSubject(ctx context.Context, subject string) ([]int, error) {
	var versions []int
	if err := c.call(ctx, http.MethodDelete, subjectPath(subject), nil, nil, &versions); err != nil {
		return nil, err
	}
	if versions == nil {
		versions = []int{}
	}
	return versions, nil
}

// GetLatestVersion returns the last element of the version list as sent by
// the registry, which lists versions in registration order.
func (c *Client) GetLatestVersion(ctx context.Context, subject string) (int, bool, error) {
	versions, err := c.ListVersions(ctx, subject)
	if err != nil {
		return 0, false, err
	}
	if len(versions) == 0 {
		return 0, false, nil
	}
	return versions[len(versions)-1], true, nil
}

// SetImportMode sends mode to the registry. The result is true only when the
// registry answers with exactly {"mode": mode}.
func (c *Client) SetImportMode(ctx context.Context, mode Mode) (bool, error) {
	var result any
	if err := c.call(ctx, http.MethodPut, "mode/", map[string]any{"mode": string(mode)}, nil, &result); err != nil {
		return false, err
	}

	fields, ok := result.(map[string]any)
	if !ok || len(fields) != 1 {
		return false, nil
	}
	echoed, ok := fields["mode"].(string)
	return ok && echoed == string(mode), nil
}

// GetMode returns the global registry mode.
func (c *Client) GetMode(ctx context.Context) (Mode, error) {
	var result struct {
		Mode Mode `json:"mode"`
	}
	if err := c.call(ctx, http.MethodGet, "mode", nil, nil, &result); err != nil {
		return "", err
	}
	return result.Mode, nil
}

type compatibilityResponse struct {
	CompatibilityLevel CompatibilityLevel `json:"compatibilityLevel"`
}

// call runs a request and decodes the response into out. A nil out discards
// the response; a JSON null leaves out untouched.
func (c *Client) call(ctx context.Context, method, uri string, body map[string]any, query url.Values, out any) error {
	raw, err := c.caller.Call(ctx, method, uri, body, query)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: unexpected response for %s %s: %v", ErrMalformedResponse, method, uri, err)
	}
	return nil
}

func (c *Client) logDebug(ctx context.Context, msg string, err error, subject string) {
	if c.logger != nil {
		c.logger.DebugWithContext(ctx, msg, err, map[string]interface{}{"subject": subject})
	}
}

func subjectPath(subject string) string {
	return "subjects/" + url.PathEscape(subject)
}

func versionPath(subject, version string) string {
	return subjectPath(subject) + "/versions/" + url.PathEscape(versionOrLatest(version))
}

func versionOrLatest(version string) string {
	if version == "" {
		return VersionLatest
	}
	return version
}

func levelBody(level CompatibilityLevel) map[string]any {
	if level == "" {
		level = LevelFull
	}
	return map[string]any{"compatibility": string(level)}
}

func schemaBody(schema string) (map[string]any, error) {
	normalized, err := normalizeSchema(schema)
	if err != nil {
		return nil, err
	}
	return map[string]any{"schema": normalized}, nil
}
